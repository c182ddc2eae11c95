package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/navyap013/bookhub/internal/application/catalog"
	appebook "github.com/navyap013/bookhub/internal/application/ebook"
	apporder "github.com/navyap013/bookhub/internal/application/order"
	"github.com/navyap013/bookhub/internal/interface/http/dto"
	"github.com/navyap013/bookhub/pkg/response"
)

// AdminHandler 管理端HTTP处理器
// 商品/教材/电子书维护与订单运营，路由统一挂RequireAdmin
type AdminHandler struct {
	adminBookUseCase        *appcatalog.AdminBookUseCase
	adminStudentBookUseCase *appcatalog.AdminStudentBookUseCase
	adminEBookUseCase       *appebook.AdminEBookUseCase
	listAllOrdersUseCase    *apporder.ListAllOrdersUseCase
	updateStatusUseCase     *apporder.UpdateStatusUseCase
}

// NewAdminHandler 创建管理端处理器
func NewAdminHandler(
	adminBookUseCase *appcatalog.AdminBookUseCase,
	adminStudentBookUseCase *appcatalog.AdminStudentBookUseCase,
	adminEBookUseCase *appebook.AdminEBookUseCase,
	listAllOrdersUseCase *apporder.ListAllOrdersUseCase,
	updateStatusUseCase *apporder.UpdateStatusUseCase,
) *AdminHandler {
	return &AdminHandler{
		adminBookUseCase:        adminBookUseCase,
		adminStudentBookUseCase: adminStudentBookUseCase,
		adminEBookUseCase:       adminEBookUseCase,
		listAllOrdersUseCase:    listAllOrdersUseCase,
		updateStatusUseCase:     updateStatusUseCase,
	}
}

// CreateBook 创建图书
// @Summary      创建图书
// @Tags         管理端
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.SaveBookRequest true "图书信息"
// @Success      201 {object} map[string]interface{}
// @Router       /api/v1/admin/books [post]
func (h *AdminHandler) CreateBook(c *gin.Context) {
	var req dto.SaveBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	book, err := h.adminBookUseCase.Create(c.Request.Context(), toSaveBookRequest(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"book": book})
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Tags         管理端
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.SaveBookRequest true "图书信息"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/admin/books/{id} [put]
func (h *AdminHandler) UpdateBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}
	var req dto.SaveBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	book, err := h.adminBookUseCase.Update(c.Request.Context(), id, toSaveBookRequest(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"book": book})
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         管理端
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/admin/books/{id} [delete]
func (h *AdminHandler) DeleteBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}
	if err := h.adminBookUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "图书已删除"})
}

// CreateStudentBook 创建教材
// @Summary      创建教材
// @Tags         管理端
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.SaveStudentBookRequest true "教材信息"
// @Success      201 {object} map[string]interface{}
// @Router       /api/v1/admin/student-books [post]
func (h *AdminHandler) CreateStudentBook(c *gin.Context) {
	var req dto.SaveStudentBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	book, err := h.adminStudentBookUseCase.Create(c.Request.Context(), toSaveStudentBookRequest(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"book": book})
}

// UpdateStudentBook 更新教材
// @Summary      更新教材
// @Tags         管理端
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "教材ID"
// @Param        request body dto.SaveStudentBookRequest true "教材信息"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/admin/student-books/{id} [put]
func (h *AdminHandler) UpdateStudentBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}
	var req dto.SaveStudentBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	book, err := h.adminStudentBookUseCase.Update(c.Request.Context(), id, toSaveStudentBookRequest(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"book": book})
}

// DeleteStudentBook 删除教材
// @Summary      删除教材
// @Tags         管理端
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "教材ID"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/admin/student-books/{id} [delete]
func (h *AdminHandler) DeleteStudentBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}
	if err := h.adminStudentBookUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "教材已删除"})
}

// CreateEBook 创建电子书
// @Summary      创建电子书
// @Tags         管理端
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.SaveEBookRequest true "电子书信息"
// @Success      201 {object} map[string]interface{}
// @Router       /api/v1/admin/ebooks [post]
func (h *AdminHandler) CreateEBook(c *gin.Context) {
	var req dto.SaveEBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	ebook, err := h.adminEBookUseCase.Create(c.Request.Context(), toSaveEBookRequest(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"ebook": ebook})
}

// UpdateEBook 更新电子书
// @Summary      更新电子书
// @Tags         管理端
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "电子书ID"
// @Param        request body dto.SaveEBookRequest true "电子书信息"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/admin/ebooks/{id} [put]
func (h *AdminHandler) UpdateEBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}
	var req dto.SaveEBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	ebook, err := h.adminEBookUseCase.Update(c.Request.Context(), id, toSaveEBookRequest(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"ebook": ebook})
}

// DeleteEBook 删除电子书
// @Summary      删除电子书（级联删除授权记录）
// @Tags         管理端
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "电子书ID"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/admin/ebooks/{id} [delete]
func (h *AdminHandler) DeleteEBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}
	if err := h.adminEBookUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "电子书已删除"})
}

// ListAllOrders 全部订单
// @Summary      全部订单列表，可按状态过滤
// @Tags         管理端
// @Security     BearerAuth
// @Produce      json
// @Param        status query string false "订单状态" Enums(Pending, Processing, Shipped, Delivered, Cancelled)
// @Param        page query int false "页码"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/admin/orders [get]
func (h *AdminHandler) ListAllOrders(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	result, err := h.listAllOrdersUseCase.Execute(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, "orders", result.Orders, len(result.Orders), result.Total, result.Page, result.PageSize)
}

// UpdateOrderStatus 推进订单状态
// @Summary      推进订单状态
// @Description  状态机：Pending→Processing→Shipped→Delivered，Cancelled可从未送达状态进入
// @Tags         管理端
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{} "非法状态跳转"
// @Router       /api/v1/admin/orders/{id}/status [put]
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	order, err := h.updateStatusUseCase.Execute(c.Request.Context(), apporder.UpdateStatusRequest{
		OrderID:    id,
		Status:     req.Status,
		TrackingNo: req.TrackingNo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

func toSaveBookRequest(req dto.SaveBookRequest) appcatalog.SaveBookRequest {
	originalPrice := req.OriginalPrice
	if originalPrice == 0 {
		originalPrice = req.Price
	}
	return appcatalog.SaveBookRequest{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Category:      req.Category,
		Language:      req.Language,
		Price:         req.Price,
		OriginalPrice: originalPrice,
		Stock:         req.Stock,
		CoverURL:      req.CoverURL,
		Featured:      req.Featured,
		Trending:      req.Trending,
		RecentlyAdded: req.RecentlyAdded,
	}
}

func toSaveStudentBookRequest(req dto.SaveStudentBookRequest) appcatalog.SaveStudentBookRequest {
	originalPrice := req.OriginalPrice
	if originalPrice == 0 {
		originalPrice = req.Price
	}
	return appcatalog.SaveStudentBookRequest{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Subject:       req.Subject,
		ClassLevel:    req.ClassLevel,
		Language:      req.Language,
		Price:         req.Price,
		OriginalPrice: originalPrice,
		Stock:         req.Stock,
		CoverURL:      req.CoverURL,
		Featured:      req.Featured,
	}
}

func toSaveEBookRequest(req dto.SaveEBookRequest) appebook.SaveEBookRequest {
	return appebook.SaveEBookRequest{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		BookID:        req.BookID,
		StudentBookID: req.StudentBookID,
		ClassLevel:    req.ClassLevel,
		FileURL:       req.FileURL,
		FileSize:      req.FileSize,
		Format:        req.Format,
		UnlockMethod:  req.UnlockMethod,
		IsFree:        req.IsFree,
		Price:         req.Price,
		CoverURL:      req.CoverURL,
	}
}
