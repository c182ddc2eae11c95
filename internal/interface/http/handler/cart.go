package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/navyap013/bookhub/internal/application/cart"
	"github.com/navyap013/bookhub/internal/interface/http/dto"
	"github.com/navyap013/bookhub/internal/interface/http/middleware"
	"github.com/navyap013/bookhub/pkg/response"
)

// CartHandler 购物车HTTP处理器
type CartHandler struct {
	manageCartUseCase *appcart.ManageCartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(manageCartUseCase *appcart.ManageCartUseCase) *CartHandler {
	return &CartHandler{manageCartUseCase: manageCartUseCase}
}

// GetCart 查询购物车
// @Summary      查询购物车
// @Tags         购物车
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.manageCartUseCase.Get(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"cart": cart})
}

// AddItem 加入商品
// @Summary      加入商品
// @Description  同一商品重复加入时数量合并
// @Tags         购物车
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.AddCartItemRequest true "商品与数量"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{} "库存不足/商品不合法"
// @Router       /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	cart, err := h.manageCartUseCase.AddItem(c.Request.Context(), middleware.MustGetUserID(c), appcart.AddItemRequest{
		BookID:        req.BookID,
		StudentBookID: req.StudentBookID,
		Quantity:      req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"cart": cart})
}

// UpdateItem 修改数量
// @Summary      修改行项数量
// @Description  数量<=0等价于删除该行
// @Tags         购物车
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "行项ID"
// @Param        request body dto.UpdateCartItemRequest true "数量"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	cart, err := h.manageCartUseCase.UpdateQuantity(c.Request.Context(), middleware.MustGetUserID(c), itemID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"cart": cart})
}

// RemoveItem 删除行项
// @Summary      删除行项
// @Tags         购物车
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "行项ID"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	cart, err := h.manageCartUseCase.RemoveItem(c.Request.Context(), middleware.MustGetUserID(c), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"cart": cart})
}

// ClearCart 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.manageCartUseCase.Clear(c.Request.Context(), middleware.MustGetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "购物车已清空"})
}
