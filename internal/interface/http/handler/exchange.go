package handler

import (
	"github.com/gin-gonic/gin"

	appexchange "github.com/navyap013/bookhub/internal/application/exchange"
	"github.com/navyap013/bookhub/internal/interface/http/dto"
	"github.com/navyap013/bookhub/internal/interface/http/middleware"
	"github.com/navyap013/bookhub/pkg/response"
)

// ExchangeHandler 二手书交换HTTP处理器
type ExchangeHandler struct {
	listListingsUseCase  *appexchange.ListListingsUseCase
	getListingUseCase    *appexchange.GetListingUseCase
	manageListingUseCase *appexchange.ManageListingUseCase
	interestUseCase      *appexchange.InterestUseCase
	markSoldUseCase      *appexchange.MarkSoldUseCase
	messagingUseCase     *appexchange.MessagingUseCase
}

// NewExchangeHandler 创建交换处理器
func NewExchangeHandler(
	listListingsUseCase *appexchange.ListListingsUseCase,
	getListingUseCase *appexchange.GetListingUseCase,
	manageListingUseCase *appexchange.ManageListingUseCase,
	interestUseCase *appexchange.InterestUseCase,
	markSoldUseCase *appexchange.MarkSoldUseCase,
	messagingUseCase *appexchange.MessagingUseCase,
) *ExchangeHandler {
	return &ExchangeHandler{
		listListingsUseCase:  listListingsUseCase,
		getListingUseCase:    getListingUseCase,
		manageListingUseCase: manageListingUseCase,
		interestUseCase:      interestUseCase,
		markSoldUseCase:      markSoldUseCase,
		messagingUseCase:     messagingUseCase,
	}
}

// ListListings 挂牌列表
// @Summary      二手书挂牌列表
// @Tags         交换
// @Produce      json
// @Param        category query string false "分类"
// @Param        condition query string false "书况" Enums(new, like-new, good, fair)
// @Param        keyword query string false "关键词"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/exchange/listings [get]
func (h *ExchangeHandler) ListListings(c *gin.Context) {
	var q dto.ListListingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.listListingsUseCase.Execute(c.Request.Context(), appexchange.ListListingsRequest{
		Status:     q.Status,
		Category:   q.Category,
		ClassLevel: q.ClassLevel,
		Condition:  q.Condition,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		Keyword:    q.Keyword,
		Page:       q.Page,
		PageSize:   q.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, "listings", result.Listings, len(result.Listings), result.Total, result.Page, result.PageSize)
}

// GetListing 挂牌详情
// @Summary      挂牌详情
// @Description  访问即累计浏览次数；感兴趣名单仅卖家可见
// @Tags         交换
// @Produce      json
// @Param        id path int true "挂牌ID"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/exchange/listings/{id} [get]
func (h *ExchangeHandler) GetListing(c *gin.Context) {
	listingID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	listing, err := h.getListingUseCase.Execute(c.Request.Context(), listingID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"listing": listing})
}

// CreateListing 创建挂牌
// @Summary      创建挂牌
// @Tags         交换
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.SaveListingRequest true "挂牌信息"
// @Success      201 {object} map[string]interface{}
// @Router       /api/v1/exchange/listings [post]
func (h *ExchangeHandler) CreateListing(c *gin.Context) {
	var req dto.SaveListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	listing, err := h.manageListingUseCase.Create(c.Request.Context(),
		middleware.MustGetUserID(c), middleware.GetUserName(c), toSaveListingRequest(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"listing": listing})
}

// UpdateListing 更新挂牌
// @Summary      更新挂牌（仅卖家，仅在售）
// @Tags         交换
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "挂牌ID"
// @Param        request body dto.SaveListingRequest true "挂牌信息"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/exchange/listings/{id} [put]
func (h *ExchangeHandler) UpdateListing(c *gin.Context) {
	listingID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}
	var req dto.SaveListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	listing, err := h.manageListingUseCase.Update(c.Request.Context(), listingID,
		middleware.MustGetUserID(c), toSaveListingRequest(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"listing": listing})
}

// RemoveListing 下架挂牌
// @Summary      下架挂牌（仅卖家）
// @Tags         交换
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "挂牌ID"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/exchange/listings/{id} [delete]
func (h *ExchangeHandler) RemoveListing(c *gin.Context) {
	listingID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.manageListingUseCase.Remove(c.Request.Context(), listingID, middleware.MustGetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "挂牌已下架"})
}

// MyListings 我的挂牌
// @Summary      我的挂牌列表
// @Tags         交换
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/exchange/my-listings [get]
func (h *ExchangeHandler) MyListings(c *gin.Context) {
	listings, err := h.manageListingUseCase.MyListings(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"listings": listings, "count": len(listings)})
}

// ToggleInterest 兴趣开关
// @Summary      对挂牌表达/取消兴趣
// @Tags         交换
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "挂牌ID"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{} "自己的挂牌/已售出"
// @Router       /api/v1/exchange/listings/{id}/interest [post]
func (h *ExchangeHandler) ToggleInterest(c *gin.Context) {
	listingID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	result, err := h.interestUseCase.Execute(c.Request.Context(), listingID, middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"interested": result.Interested})
}

// MarkSold 标记售出
// @Summary      标记售出（仅卖家，买家须在感兴趣名单内）
// @Tags         交换
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "挂牌ID"
// @Param        request body dto.MarkSoldRequest true "买家"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/exchange/listings/{id}/sold [post]
func (h *ExchangeHandler) MarkSold(c *gin.Context) {
	listingID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}
	var req dto.MarkSoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	listing, err := h.markSoldUseCase.Execute(c.Request.Context(), listingID, middleware.MustGetUserID(c), req.BuyerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"listing": listing})
}

// SendMessage 发送留言
// @Summary      挂牌留言
// @Description  卖家只能联系感兴趣用户；买家需先表达兴趣且只能联系卖家
// @Tags         交换
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "挂牌ID"
// @Param        request body dto.SendMessageRequest true "留言内容"
// @Success      201 {object} map[string]interface{}
// @Failure      403 {object} map[string]interface{} "不满足留言条件"
// @Router       /api/v1/exchange/listings/{id}/messages [post]
func (h *ExchangeHandler) SendMessage(c *gin.Context) {
	listingID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	msg, err := h.messagingUseCase.Send(c.Request.Context(), listingID, middleware.MustGetUserID(c), req.ReceiverID, req.Body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": msg})
}

// GetConversation 查看会话
// @Summary      与某用户在某挂牌下的会话
// @Description  查看时对方发来的留言自动标记已读
// @Tags         交换
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "挂牌ID"
// @Param        user_id path int true "对方用户ID"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/exchange/listings/{id}/messages/{user_id} [get]
func (h *ExchangeHandler) GetConversation(c *gin.Context) {
	listingID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}
	otherID, err := parseIDParam(c, "user_id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	messages, err := h.messagingUseCase.Conversation(c.Request.Context(), listingID, middleware.MustGetUserID(c), otherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"messages": messages, "count": len(messages)})
}

// UnreadCount 未读留言数
// @Summary      未读留言总数
// @Tags         交换
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/exchange/messages/unread [get]
func (h *ExchangeHandler) UnreadCount(c *gin.Context) {
	count, err := h.messagingUseCase.UnreadCount(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"unread": count})
}

func toSaveListingRequest(req dto.SaveListingRequest) appexchange.SaveListingRequest {
	return appexchange.SaveListingRequest{
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		ClassLevel:  req.ClassLevel,
		Condition:   req.Condition,
		Price:       req.Price,
		Description: req.Description,
		Images:      req.Images,
	}
}
