package catalog

import (
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// 图书目录领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrStudentBookNotFound 教材不存在
	ErrStudentBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "教材不存在")

	// ErrInvalidPrice 价格必须大于0
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0")

	// ErrInvalidStock 库存不能为负数
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")

	// ErrInvalidClassLevel 班级不合法
	ErrInvalidClassLevel = apperrors.New(apperrors.ErrCodeInvalidParams, "班级应为1-12")

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")
)
