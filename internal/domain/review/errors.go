package review

import (
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// 评价领域错误定义
var (
	// ErrReviewNotFound 评价不存在
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "评价不存在")

	// ErrDuplicateReview 重复评价
	ErrDuplicateReview = apperrors.New(apperrors.ErrCodeDuplicateEntry, "已评价过此商品")

	// ErrInvalidRating 评分不合法
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "评分应为1-5")

	// ErrInvalidTarget 评价目标缺失
	ErrInvalidTarget = apperrors.New(apperrors.ErrCodeInvalidParams, "评价目标商品缺失")

	// ErrNotOwner 无权操作他人评价
	ErrNotOwner = apperrors.New(apperrors.ErrCodeForbidden, "无权操作此评价")
)
