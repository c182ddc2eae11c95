package order

import (
	"context"

	"github.com/navyap013/bookhub/internal/domain/order"
)

// ListMyOrdersUseCase 我的订单列表用例
type ListMyOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListMyOrdersUseCase 创建我的订单用例
func NewListMyOrdersUseCase(orderRepo order.Repository) *ListMyOrdersUseCase {
	return &ListMyOrdersUseCase{orderRepo: orderRepo}
}

// ListOrdersResponse 订单列表响应DTO
type ListOrdersResponse struct {
	Orders   []OrderDTO `json:"orders"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// Execute 查询当前用户订单（按创建时间倒序）
func (uc *ListMyOrdersUseCase) Execute(ctx context.Context, userID uint, page, pageSize int) (*ListOrdersResponse, error) {
	page, pageSize = normalizePage(page, pageSize)
	orders, total, err := uc.orderRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &ListOrdersResponse{
		Orders:   ToOrderDTOs(orders),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetOrderUseCase 订单详情用例
type GetOrderUseCase struct {
	orderRepo order.Repository
}

// NewGetOrderUseCase 创建订单详情用例
func NewGetOrderUseCase(orderRepo order.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo}
}

// Execute 查询订单详情
// 普通用户只能看自己的订单，管理员不受限制
func (uc *GetOrderUseCase) Execute(ctx context.Context, orderID, userID uint, isAdmin bool) (*OrderDTO, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !o.IsOwnedBy(userID) {
		return nil, order.ErrNotOwner
	}
	dto := ToOrderDTO(o)
	return &dto, nil
}

// ListAllOrdersUseCase 订单列表用例（管理员）
type ListAllOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListAllOrdersUseCase 创建管理端订单列表用例
func NewListAllOrdersUseCase(orderRepo order.Repository) *ListAllOrdersUseCase {
	return &ListAllOrdersUseCase{orderRepo: orderRepo}
}

// Execute 查询全部订单，可按状态过滤
func (uc *ListAllOrdersUseCase) Execute(ctx context.Context, status string, page, pageSize int) (*ListOrdersResponse, error) {
	page, pageSize = normalizePage(page, pageSize)
	orders, total, err := uc.orderRepo.List(ctx, order.Status(status), page, pageSize)
	if err != nil {
		return nil, err
	}
	return &ListOrdersResponse{
		Orders:   ToOrderDTOs(orders),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
