package handler

import (
	"github.com/gin-gonic/gin"

	appebook "github.com/navyap013/bookhub/internal/application/ebook"
	"github.com/navyap013/bookhub/internal/interface/http/middleware"
	"github.com/navyap013/bookhub/pkg/response"
)

// EBookHandler 电子书HTTP处理器
type EBookHandler struct {
	listEBooksUseCase  *appebook.ListEBooksUseCase
	checkAccessUseCase *appebook.CheckAccessUseCase
	unlockUseCase      *appebook.UnlockUseCase
	downloadUseCase    *appebook.DownloadUseCase
	libraryUseCase     *appebook.LibraryUseCase
}

// NewEBookHandler 创建电子书处理器
func NewEBookHandler(
	listEBooksUseCase *appebook.ListEBooksUseCase,
	checkAccessUseCase *appebook.CheckAccessUseCase,
	unlockUseCase *appebook.UnlockUseCase,
	downloadUseCase *appebook.DownloadUseCase,
	libraryUseCase *appebook.LibraryUseCase,
) *EBookHandler {
	return &EBookHandler{
		listEBooksUseCase:  listEBooksUseCase,
		checkAccessUseCase: checkAccessUseCase,
		unlockUseCase:      unlockUseCase,
		downloadUseCase:    downloadUseCase,
		libraryUseCase:     libraryUseCase,
	}
}

// ListEBooks 电子书列表
// @Summary      电子书列表
// @Tags         电子书
// @Produce      json
// @Param        page query int false "页码"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/ebooks [get]
func (h *EBookHandler) ListEBooks(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	result, err := h.listEBooksUseCase.Execute(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, "ebooks", result.EBooks, len(result.EBooks), result.Total, result.Page, result.PageSize)
}

// CheckAccess 访问检查
// @Summary      电子书访问检查
// @Description  返回是否可读及拒绝原因（purchase_required/class_mismatch/no_access）
// @Tags         电子书
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "电子书ID"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/ebooks/{id}/access [get]
func (h *EBookHandler) CheckAccess(c *gin.Context) {
	ebookID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	status, err := h.checkAccessUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), ebookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"ebook":      status.EBook,
		"has_access": status.HasAccess,
		"method":     status.Method,
		"reason":     status.Reason,
	})
}

// Unlock 解锁电子书
// @Summary      解锁电子书
// @Description  按purchase/class/free规则解锁并写入粘性授权
// @Tags         电子书
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "电子书ID"
// @Success      200 {object} map[string]interface{}
// @Failure      403 {object} map[string]interface{} "需购买/班级不符/无权限"
// @Router       /api/v1/ebooks/{id}/unlock [post]
func (h *EBookHandler) Unlock(c *gin.Context) {
	ebookID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	result, err := h.unlockUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), ebookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"access": result})
}

// Download 下载电子书
// @Summary      下载电子书
// @Description  需先解锁，返回文件地址并累计下载次数
// @Tags         电子书
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "电子书ID"
// @Success      200 {object} map[string]interface{}
// @Failure      403 {object} map[string]interface{} "尚未解锁"
// @Router       /api/v1/ebooks/{id}/download [get]
func (h *EBookHandler) Download(c *gin.Context) {
	ebookID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	result, err := h.downloadUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), ebookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"file_url": result.FileURL})
}

// Library 我的书架
// @Summary      我的书架
// @Description  已解锁的全部电子书
// @Tags         电子书
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/ebooks/library [get]
func (h *EBookHandler) Library(c *gin.Context) {
	entries, err := h.libraryUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"library": entries, "count": len(entries)})
}
