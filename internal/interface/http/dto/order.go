package dto

// ShippingAddressRequest 收货地址
type ShippingAddressRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Pincode string `json:"pincode" binding:"required"`
}

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	PaymentMethod string                 `json:"payment_method" binding:"required,oneof=Razorpay COD"`
	Address       ShippingAddressRequest `json:"address" binding:"required"`
}

// PayOrderRequest 支付确认请求（网关回传三元组）
type PayOrderRequest struct {
	GatewayOrderID string `json:"razorpay_order_id" binding:"required"`
	PaymentID      string `json:"razorpay_payment_id" binding:"required"`
	Signature      string `json:"razorpay_signature" binding:"required"`
}

// UpdateOrderStatusRequest 订单状态推进请求（管理员）
type UpdateOrderStatusRequest struct {
	Status     string `json:"status" binding:"required,oneof=Pending Processing Shipped Delivered Cancelled"`
	TrackingNo string `json:"tracking_no"`
}
