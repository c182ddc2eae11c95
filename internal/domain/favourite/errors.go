package favourite

import (
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// 收藏领域错误定义
var (
	// ErrFavouriteNotFound 收藏记录不存在
	ErrFavouriteNotFound = apperrors.New(apperrors.ErrCodeNotFound, "收藏记录不存在")

	// ErrDuplicateFavourite 重复收藏
	ErrDuplicateFavourite = apperrors.New(apperrors.ErrCodeDuplicateEntry, "已收藏此商品")

	// ErrInvalidTarget 收藏目标缺失
	ErrInvalidTarget = apperrors.New(apperrors.ErrCodeInvalidParams, "收藏目标商品缺失")

	// ErrNotOwner 无权操作他人收藏
	ErrNotOwner = apperrors.New(apperrors.ErrCodeForbidden, "无权操作此收藏")
)
