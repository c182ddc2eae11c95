package order

import (
	"context"

	"github.com/navyap013/bookhub/internal/domain/order"
)

// UpdateStatusUseCase 订单状态推进用例（管理员）
// 状态机：Pending → Processing → Shipped → Delivered，
// Cancelled可从任何未送达状态进入
type UpdateStatusUseCase struct {
	orderRepo order.Repository
}

// NewUpdateStatusUseCase 创建状态推进用例
func NewUpdateStatusUseCase(orderRepo order.Repository) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{orderRepo: orderRepo}
}

// UpdateStatusRequest 状态推进请求DTO
type UpdateStatusRequest struct {
	OrderID    uint
	Status     string
	TrackingNo string // 发货/送达时填写
}

// Execute 执行状态推进
// 推进到Delivered走MarkDelivered（同时记录送达时间与运单号），
// 其它目标状态走通用状态机校验
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, req UpdateStatusRequest) (*OrderDTO, error) {
	o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	target := order.Status(req.Status)
	switch target {
	case order.StatusDelivered:
		if err := o.MarkDelivered(req.TrackingNo); err != nil {
			return nil, err
		}
	case order.StatusShipped:
		if err := o.TransitionTo(target); err != nil {
			return nil, err
		}
		if req.TrackingNo != "" {
			o.TrackingNo = req.TrackingNo
		}
	default:
		if err := o.TransitionTo(target); err != nil {
			return nil, err
		}
	}

	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	dto := ToOrderDTO(o)
	return &dto, nil
}

// CancelOrderUseCase 取消订单用例
// 买家本人或管理员可取消未送达的订单
type CancelOrderUseCase struct {
	orderRepo order.Repository
}

// NewCancelOrderUseCase 创建取消订单用例
func NewCancelOrderUseCase(orderRepo order.Repository) *CancelOrderUseCase {
	return &CancelOrderUseCase{orderRepo: orderRepo}
}

// Execute 执行取消
func (uc *CancelOrderUseCase) Execute(ctx context.Context, orderID, userID uint, isAdmin bool) (*OrderDTO, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !o.IsOwnedBy(userID) {
		return nil, order.ErrNotOwner
	}

	if err := o.Cancel(); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	dto := ToOrderDTO(o)
	return &dto, nil
}
