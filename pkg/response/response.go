package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// 统一响应结构
// 设计说明：
// 1. 所有响应都带success布尔字段，前端以此判断成败
// 2. 失败时返回message（用户友好提示）和error（业务错误码）
// 3. 成功时业务数据直接平铺在payload里（如{"success":true,"cart":{...}}），
//    与前端约定保持一致，不再额外包一层data

// Success 成功响应（200）
// payload的key由调用方指定，例如response.Success(c, gin.H{"book": book})
func Success(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Created 创建成功响应（201）
func Created(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusCreated, body)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	err := cartService.AddItem(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	c.JSON(appErr.HTTPStatus(), gin.H{
		"success": false,
		"message": appErr.Message,
		"error":   appErr.Code,
	})
}

// BadRequest 参数错误响应（400）
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
		"error":   apperrors.ErrCodeInvalidParams,
	})
}

// =========================================
// 分页响应结构
// =========================================

// Page 分页信息
type Page struct {
	Total int64 `json:"total"` // 总记录数
	Page  int   `json:"page"`  // 当前页码
	Pages int   `json:"pages"` // 总页数
}

// NewPage 计算分页信息
func NewPage(total int64, page, limit int) Page {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return Page{Total: total, Page: page, Pages: pages}
}

// SuccessWithPage 列表成功响应（带count/total/page/pages，参照前端约定）
func SuccessWithPage(c *gin.Context, listKey string, list interface{}, count int, total int64, page, limit int) {
	p := NewPage(total, page, limit)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
		"total":   p.Total,
		"page":    p.Page,
		"pages":   p.Pages,
		listKey:   list,
	})
}
