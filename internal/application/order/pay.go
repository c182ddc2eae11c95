package order

import (
	"context"

	"github.com/navyap013/bookhub/internal/domain/order"
	"github.com/navyap013/bookhub/internal/infrastructure/payment"
)

// PayOrderUseCase 支付确认用例
// 前端完成收银台支付后，带着网关回传的三元组
// (gateway_order_id, payment_id, signature)回调此用例
type PayOrderUseCase struct {
	orderRepo order.Repository
	gateway   payment.Gateway
}

// NewPayOrderUseCase 创建支付确认用例
func NewPayOrderUseCase(orderRepo order.Repository, gateway payment.Gateway) *PayOrderUseCase {
	return &PayOrderUseCase{orderRepo: orderRepo, gateway: gateway}
}

// PayOrderRequest 支付确认请求DTO
type PayOrderRequest struct {
	UserID         uint
	OrderID        uint
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

// Execute 执行支付确认
// 业务规则：
// 1. 只有订单所有者能确认支付
// 2. 签名必须通过HMAC校验，防止伪造已支付状态
// 3. 重复支付确认返回错误（MarkPaid内部守卫）
// 4. 支付成功后订单进入Processing
func (uc *PayOrderUseCase) Execute(ctx context.Context, req PayOrderRequest) (*OrderDTO, error) {
	o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(req.UserID) {
		return nil, order.ErrNotOwner
	}

	if !uc.gateway.VerifySignature(req.GatewayOrderID, req.PaymentID, req.Signature) {
		return nil, order.ErrInvalidSignature
	}

	if err := o.MarkPaid(order.PaymentResult{
		PaymentID: req.PaymentID,
		OrderID:   req.GatewayOrderID,
		Signature: req.Signature,
		Status:    "captured",
	}); err != nil {
		return nil, err
	}

	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	dto := ToOrderDTO(o)
	return &dto, nil
}
