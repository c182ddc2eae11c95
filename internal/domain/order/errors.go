package order

import (
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrInvalidStatusTransition 非法的状态转换
	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeInvalidStatus, "订单状态不允许此操作")

	// ErrAlreadyPaid 订单已支付
	ErrAlreadyPaid = apperrors.New(apperrors.ErrCodeInvalidStatus, "订单已支付")

	// ErrNotOwner 无权操作他人订单
	ErrNotOwner = apperrors.New(apperrors.ErrCodeForbidden, "无权操作此订单")

	// ErrInvalidSignature 支付签名校验失败
	ErrInvalidSignature = apperrors.New(apperrors.ErrCodeBusinessError, "支付签名校验失败")

	// ErrInvalidPaymentMethod 支付方式不支持
	ErrInvalidPaymentMethod = apperrors.New(apperrors.ErrCodeInvalidParams, "支付方式只支持Razorpay或COD")
)
