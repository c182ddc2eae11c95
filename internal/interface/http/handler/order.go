package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/navyap013/bookhub/internal/application/order"
	"github.com/navyap013/bookhub/internal/interface/http/dto"
	"github.com/navyap013/bookhub/internal/interface/http/middleware"
	"github.com/navyap013/bookhub/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	checkoutUseCase     *apporder.CheckoutUseCase
	payOrderUseCase     *apporder.PayOrderUseCase
	listMyOrdersUseCase *apporder.ListMyOrdersUseCase
	getOrderUseCase     *apporder.GetOrderUseCase
	cancelOrderUseCase  *apporder.CancelOrderUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	checkoutUseCase *apporder.CheckoutUseCase,
	payOrderUseCase *apporder.PayOrderUseCase,
	listMyOrdersUseCase *apporder.ListMyOrdersUseCase,
	getOrderUseCase *apporder.GetOrderUseCase,
	cancelOrderUseCase *apporder.CancelOrderUseCase,
) *OrderHandler {
	return &OrderHandler{
		checkoutUseCase:     checkoutUseCase,
		payOrderUseCase:     payOrderUseCase,
		listMyOrdersUseCase: listMyOrdersUseCase,
		getOrderUseCase:     getOrderUseCase,
		cancelOrderUseCase:  cancelOrderUseCase,
	}
}

// Checkout 结算下单
// @Summary      结算下单
// @Description  购物车转订单：建单、扣库存、清空购物车在同一事务内；在线支付返回支付会话
// @Tags         订单
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.CheckoutRequest true "支付方式与收货地址"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{} "空购物车/库存不足"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.checkoutUseCase.Execute(c.Request.Context(), apporder.CheckoutRequest{
		UserID:        middleware.MustGetUserID(c),
		PaymentMethod: req.PaymentMethod,
		Address: apporder.AddressDTO{
			Name:    req.Address.Name,
			Phone:   req.Address.Phone,
			Address: req.Address.Address,
			City:    req.Address.City,
			State:   req.Address.State,
			Pincode: req.Address.Pincode,
		},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := gin.H{"order": result.Order}
	if result.PaymentSession != nil {
		payload["payment_session"] = result.PaymentSession
	}
	response.Created(c, payload)
}

// PayOrder 支付确认
// @Summary      支付确认
// @Description  校验网关签名后将订单标记为已支付并进入Processing
// @Tags         订单
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "订单ID"
// @Param        request body dto.PayOrderRequest true "网关回传三元组"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{} "签名不合法/重复支付"
// @Router       /api/v1/orders/{id}/pay [post]
func (h *OrderHandler) PayOrder(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}
	var req dto.PayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	order, err := h.payOrderUseCase.Execute(c.Request.Context(), apporder.PayOrderRequest{
		UserID:         middleware.MustGetUserID(c),
		OrderID:        orderID,
		GatewayOrderID: req.GatewayOrderID,
		PaymentID:      req.PaymentID,
		Signature:      req.Signature,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// ListMyOrders 我的订单
// @Summary      我的订单列表
// @Tags         订单
// @Security     BearerAuth
// @Produce      json
// @Param        page query int false "页码"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/orders [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	result, err := h.listMyOrdersUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, "orders", result.Orders, len(result.Orders), result.Total, result.Page, result.PageSize)
}

// GetOrder 订单详情
// @Summary      订单详情
// @Tags         订单
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "订单ID"
// @Success      200 {object} map[string]interface{}
// @Failure      403 {object} map[string]interface{} "非本人订单"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	order, err := h.getOrderUseCase.Execute(c.Request.Context(), orderID, middleware.MustGetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// CancelOrder 取消订单
// @Summary      取消订单
// @Tags         订单
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "订单ID"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{} "已送达订单不可取消"
// @Router       /api/v1/orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	order, err := h.cancelOrderUseCase.Execute(c.Request.Context(), orderID, middleware.MustGetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}
