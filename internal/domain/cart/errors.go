package cart

import (
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// 购物车领域错误定义
var (
	// ErrCartNotFound 购物车不存在
	ErrCartNotFound = apperrors.New(apperrors.ErrCodeCartNotFound, "购物车不存在")

	// ErrItemNotFound 行项不存在
	ErrItemNotFound = apperrors.New(apperrors.ErrCodeNotFound, "购物车中没有此商品")

	// ErrInvalidQuantity 数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrInvalidItem 行项必须指向一个商品
	ErrInvalidItem = apperrors.New(apperrors.ErrCodeInvalidParams, "商品标识缺失")

	// ErrEmptyCart 购物车为空（结算时）
	ErrEmptyCart = apperrors.New(apperrors.ErrCodeEmptyCart, "购物车为空，无法结算")
)
