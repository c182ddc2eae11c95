package ebook

import (
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// 电子书领域错误定义
// 三种拒绝原因必须可区分，前端据此提示"去购买"/"班级不符"/"无权访问"
var (
	// ErrEBookNotFound 电子书不存在
	ErrEBookNotFound = apperrors.New(apperrors.ErrCodeEBookNotFound, "电子书不存在")

	// ErrPurchaseRequired 需要先购买关联图书
	ErrPurchaseRequired = apperrors.New(apperrors.ErrCodeAccessDenied, "购买关联图书后可解锁此电子书")

	// ErrClassMismatch 班级不匹配
	ErrClassMismatch = apperrors.New(apperrors.ErrCodeAccessDenied, "此电子书仅对指定班级的学生开放")

	// ErrNoAccess 无权访问（未解锁且不满足任何解锁条件）
	ErrNoAccess = apperrors.New(apperrors.ErrCodeAccessDenied, "无权访问此电子书")

	// ErrNotUnlocked 尚未解锁（下载前必须已有授权记录）
	ErrNotUnlocked = apperrors.New(apperrors.ErrCodeAccessDenied, "请先解锁此电子书")

	// ErrInvalidUnlockMethod 解锁方式不合法
	ErrInvalidUnlockMethod = apperrors.New(apperrors.ErrCodeInvalidParams, "解锁方式只能是purchase、class或free")
)
