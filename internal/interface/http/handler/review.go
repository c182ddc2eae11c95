package handler

import (
	"github.com/gin-gonic/gin"

	appfavourite "github.com/navyap013/bookhub/internal/application/favourite"
	appreview "github.com/navyap013/bookhub/internal/application/review"
	"github.com/navyap013/bookhub/internal/interface/http/dto"
	"github.com/navyap013/bookhub/internal/interface/http/middleware"
	"github.com/navyap013/bookhub/pkg/response"
)

// ReviewHandler 评价与收藏HTTP处理器
type ReviewHandler struct {
	reviewUseCase    *appreview.ReviewUseCase
	favouriteUseCase *appfavourite.FavouriteUseCase
}

// NewReviewHandler 创建评价处理器
func NewReviewHandler(reviewUseCase *appreview.ReviewUseCase, favouriteUseCase *appfavourite.FavouriteUseCase) *ReviewHandler {
	return &ReviewHandler{reviewUseCase: reviewUseCase, favouriteUseCase: favouriteUseCase}
}

// SubmitReview 提交评价
// @Summary      提交评价
// @Description  每人对同一商品只能评价一次，提交后商品评分重算
// @Tags         评价
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.SubmitReviewRequest true "评价内容"
// @Success      201 {object} map[string]interface{}
// @Failure      409 {object} map[string]interface{} "已评价过"
// @Router       /api/v1/reviews [post]
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var req dto.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	review, err := h.reviewUseCase.Submit(c.Request.Context(), appreview.SubmitReviewRequest{
		UserID:        middleware.MustGetUserID(c),
		UserName:      middleware.GetUserName(c),
		BookID:        req.BookID,
		StudentBookID: req.StudentBookID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"review": review})
}

// EditReview 修改评价
// @Summary      修改评价
// @Tags         评价
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "评价ID"
// @Param        request body dto.EditReviewRequest true "评价内容"
// @Success      200 {object} map[string]interface{}
// @Failure      403 {object} map[string]interface{} "非本人评价"
// @Router       /api/v1/reviews/{id} [put]
func (h *ReviewHandler) EditReview(c *gin.Context) {
	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}
	var req dto.EditReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	review, err := h.reviewUseCase.Edit(c.Request.Context(), reviewID, middleware.MustGetUserID(c), req.Rating, req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"review": review})
}

// DeleteReview 删除评价
// @Summary      删除评价
// @Tags         评价
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "评价ID"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.reviewUseCase.Remove(c.Request.Context(), reviewID, middleware.MustGetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "评价已删除"})
}

// ListBookReviews 图书评价列表
// @Summary      图书评价列表
// @Tags         评价
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/books/{id}/reviews [get]
func (h *ReviewHandler) ListBookReviews(c *gin.Context) {
	bookID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	reviews, err := h.reviewUseCase.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"reviews": reviews, "count": len(reviews)})
}

// ListStudentBookReviews 教材评价列表
// @Summary      教材评价列表
// @Tags         评价
// @Produce      json
// @Param        id path int true "教材ID"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/student-books/{id}/reviews [get]
func (h *ReviewHandler) ListStudentBookReviews(c *gin.Context) {
	sbID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	reviews, err := h.reviewUseCase.ListByStudentBook(c.Request.Context(), sbID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"reviews": reviews, "count": len(reviews)})
}

// AddFavourite 收藏商品
// @Summary      收藏商品
// @Tags         收藏
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.AddFavouriteRequest true "商品"
// @Success      201 {object} map[string]interface{}
// @Failure      409 {object} map[string]interface{} "已收藏"
// @Router       /api/v1/favourites [post]
func (h *ReviewHandler) AddFavourite(c *gin.Context) {
	var req dto.AddFavouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	fav, err := h.favouriteUseCase.Add(c.Request.Context(), middleware.MustGetUserID(c), req.BookID, req.StudentBookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"favourite_id": fav.ID})
}

// RemoveFavourite 取消收藏
// @Summary      取消收藏
// @Tags         收藏
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "收藏ID"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/favourites/{id} [delete]
func (h *ReviewHandler) RemoveFavourite(c *gin.Context) {
	favID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.favouriteUseCase.Remove(c.Request.Context(), favID, middleware.MustGetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "已取消收藏"})
}

// ListFavourites 我的收藏
// @Summary      我的收藏列表
// @Tags         收藏
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/favourites [get]
func (h *ReviewHandler) ListFavourites(c *gin.Context) {
	favs, err := h.favouriteUseCase.List(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"favourites": favs, "count": len(favs)})
}

// CheckFavourite 查询收藏状态
// @Summary      查询某商品是否已收藏
// @Tags         收藏
// @Security     BearerAuth
// @Produce      json
// @Param        book_id query int false "图书ID"
// @Param        student_book_id query int false "教材ID"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/favourites/check [get]
func (h *ReviewHandler) CheckFavourite(c *gin.Context) {
	bookID := parseUintQuery(c, "book_id")
	studentBookID := parseUintQuery(c, "student_book_id")
	if bookID == 0 && studentBookID == 0 {
		response.BadRequest(c, "必须指定book_id或student_book_id")
		return
	}

	fav, err := h.favouriteUseCase.Check(c.Request.Context(), middleware.MustGetUserID(c), bookID, studentBookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if fav == nil {
		response.Success(c, gin.H{"favourited": false})
		return
	}
	response.Success(c, gin.H{"favourited": true, "favourite_id": fav.ID})
}
