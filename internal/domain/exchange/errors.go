package exchange

import (
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// 二手交换领域错误定义
var (
	// ErrListingNotFound 挂牌不存在
	ErrListingNotFound = apperrors.New(apperrors.ErrCodeListingNotFound, "挂牌不存在")

	// ErrMessageNotFound 留言不存在
	ErrMessageNotFound = apperrors.New(apperrors.ErrCodeNotFound, "留言不存在")

	// ErrNotSeller 仅卖家可操作
	ErrNotSeller = apperrors.New(apperrors.ErrCodeForbidden, "仅卖家可操作此挂牌")

	// ErrOwnListing 不能对自己的挂牌执行此操作
	ErrOwnListing = apperrors.New(apperrors.ErrCodeBusinessError, "不能对自己的挂牌执行此操作")

	// ErrListingNotActive 挂牌已不在售
	ErrListingNotActive = apperrors.New(apperrors.ErrCodeInvalidStatus, "挂牌已不在售")

	// ErrInvalidBuyer 买家不合法
	ErrInvalidBuyer = apperrors.New(apperrors.ErrCodeInvalidParams, "买家不合法")

	// ErrInvalidCondition 书况不合法
	ErrInvalidCondition = apperrors.New(apperrors.ErrCodeInvalidParams, "书况只能是new、like-new、good或fair")

	// ErrInvalidPrice 价格不合法
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格不能为负数")

	// ErrEmptyTitle 标题为空
	ErrEmptyTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "标题不能为空")

	// ErrEmptyMessage 留言内容为空
	ErrEmptyMessage = apperrors.New(apperrors.ErrCodeInvalidParams, "留言内容不能为空")

	// ErrSelfMessage 不能给自己留言
	ErrSelfMessage = apperrors.New(apperrors.ErrCodeBusinessError, "不能给自己发留言")

	// ErrMessageNotAllowed 无留言权限（既非卖家也未表达兴趣）
	ErrMessageNotAllowed = apperrors.New(apperrors.ErrCodeForbidden, "先对挂牌表达兴趣才能留言")
)
