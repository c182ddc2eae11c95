package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appcatalog "github.com/navyap013/bookhub/internal/application/catalog"
	appsearch "github.com/navyap013/bookhub/internal/application/search"
	"github.com/navyap013/bookhub/internal/interface/http/dto"
	"github.com/navyap013/bookhub/internal/interface/http/middleware"
	"github.com/navyap013/bookhub/pkg/response"
)

// CatalogHandler 商品目录HTTP处理器（图书+教材，公开接口）
type CatalogHandler struct {
	listBooksUseCase        *appcatalog.ListBooksUseCase
	getBookUseCase          *appcatalog.GetBookUseCase
	curatedBooksUseCase     *appcatalog.CuratedBooksUseCase
	listStudentBooksUseCase *appcatalog.ListStudentBooksUseCase
	getStudentBookUseCase   *appcatalog.GetStudentBookUseCase
	logSearchUseCase        *appsearch.LogSearchUseCase
}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler(
	listBooksUseCase *appcatalog.ListBooksUseCase,
	getBookUseCase *appcatalog.GetBookUseCase,
	curatedBooksUseCase *appcatalog.CuratedBooksUseCase,
	listStudentBooksUseCase *appcatalog.ListStudentBooksUseCase,
	getStudentBookUseCase *appcatalog.GetStudentBookUseCase,
	logSearchUseCase *appsearch.LogSearchUseCase,
) *CatalogHandler {
	return &CatalogHandler{
		listBooksUseCase:        listBooksUseCase,
		getBookUseCase:          getBookUseCase,
		curatedBooksUseCase:     curatedBooksUseCase,
		listStudentBooksUseCase: listStudentBooksUseCase,
		getStudentBookUseCase:   getStudentBookUseCase,
		logSearchUseCase:        logSearchUseCase,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  支持分类/作者/语言/价格区间/评分区间过滤与关键词搜索
// @Tags         目录
// @Produce      json
// @Param        category query string false "分类"
// @Param        keyword query string false "关键词（标题/作者）"
// @Param        sort query string false "排序" Enums(price-low, price-high, rating, newest)
// @Param        page query int false "页码"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/books [get]
func (h *CatalogHandler) ListBooks(c *gin.Context) {
	var q dto.ListBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appcatalog.ListBooksRequest{
		Category:  q.Category,
		Author:    q.Author,
		Language:  q.Language,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		MinRating: q.MinRating,
		MaxRating: q.MaxRating,
		Featured:  q.Featured,
		Trending:  q.Trending,
		Recent:    q.Recent,
		Keyword:   q.Keyword,
		SortBy:    q.SortBy,
		Page:      q.Page,
		PageSize:  q.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 带关键词的查询计入搜索埋点（匿名用户userID为0）
	if q.Keyword != "" {
		h.logSearchUseCase.Execute(c.Request.Context(), middleware.GetUserID(c), q.Keyword, int(result.Total))
	}

	response.SuccessWithPage(c, "books", result.Books, len(result.Books), result.Total, result.Page, result.PageSize)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         目录
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/v1/books/{id} [get]
func (h *CatalogHandler) GetBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	book, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"book": book})
}

// CuratedBooks 首页运营位
// @Summary      首页运营位（精选/热门/新上架）
// @Tags         目录
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/books/curated [get]
func (h *CatalogHandler) CuratedBooks(c *gin.Context) {
	result, err := h.curatedBooksUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"featured": result.Featured,
		"trending": result.Trending,
		"recent":   result.Recent,
	})
}

// ListStudentBooks 教材列表
// @Summary      教材列表
// @Tags         目录
// @Produce      json
// @Param        class query int false "班级 1-12"
// @Param        subject query string false "科目"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/student-books [get]
func (h *CatalogHandler) ListStudentBooks(c *gin.Context) {
	var q dto.ListStudentBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.listStudentBooksUseCase.Execute(c.Request.Context(), appcatalog.ListStudentBooksRequest{
		ClassLevel: q.ClassLevel,
		Subject:    q.Subject,
		Keyword:    q.Keyword,
		SortBy:     q.SortBy,
		Page:       q.Page,
		PageSize:   q.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if q.Keyword != "" {
		h.logSearchUseCase.Execute(c.Request.Context(), middleware.GetUserID(c), q.Keyword, int(result.Total))
	}

	response.SuccessWithPage(c, "books", result.Books, len(result.Books), result.Total, result.Page, result.PageSize)
}

// GetStudentBook 教材详情
// @Summary      教材详情
// @Tags         目录
// @Produce      json
// @Param        id path int true "教材ID"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/student-books/{id} [get]
func (h *CatalogHandler) GetStudentBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	book, err := h.getStudentBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"book": book})
}

// parseIDParam 解析路径中的uint参数
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseUintQuery 解析查询串中的uint参数，缺失或非法返回0
func parseUintQuery(c *gin.Context, name string) uint {
	v, _ := strconv.ParseUint(c.Query(name), 10, 32)
	return uint(v)
}

// parsePageQuery 解析分页查询参数
func parsePageQuery(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, pageSize
}
