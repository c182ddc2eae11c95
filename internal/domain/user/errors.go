package user

import (
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.New(apperrors.ErrCodeUserNotFound, "用户不存在")

	// ErrEmailDuplicate 邮箱已被注册
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "邮箱已被注册")

	// ErrInvalidRole 角色不合法
	ErrInvalidRole = apperrors.New(apperrors.ErrCodeInvalidParams, "角色只能是admin、student或customer")

	// ErrInvalidClassLevel 班级不合法
	ErrInvalidClassLevel = apperrors.New(apperrors.ErrCodeInvalidParams, "班级应为1-12")
)
