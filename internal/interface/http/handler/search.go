package handler

import (
	"github.com/gin-gonic/gin"

	apprecommend "github.com/navyap013/bookhub/internal/application/recommendation"
	appsearch "github.com/navyap013/bookhub/internal/application/search"
	"github.com/navyap013/bookhub/internal/interface/http/middleware"
	"github.com/navyap013/bookhub/pkg/response"
)

// SearchHandler 搜索与推荐HTTP处理器
type SearchHandler struct {
	suggestUseCase   *appsearch.SuggestUseCase
	trendingUseCase  *appsearch.TrendingUseCase
	recommendUseCase *apprecommend.RecommendUseCase
}

// NewSearchHandler 创建搜索处理器
func NewSearchHandler(
	suggestUseCase *appsearch.SuggestUseCase,
	trendingUseCase *appsearch.TrendingUseCase,
	recommendUseCase *apprecommend.RecommendUseCase,
) *SearchHandler {
	return &SearchHandler{
		suggestUseCase:   suggestUseCase,
		trendingUseCase:  trendingUseCase,
		recommendUseCase: recommendUseCase,
	}
}

// Suggest 搜索联想
// @Summary      搜索联想
// @Description  在图书与教材的标题/作者上做模糊匹配
// @Tags         搜索
// @Produce      json
// @Param        q query string true "查询词"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/search/suggest [get]
func (h *SearchHandler) Suggest(c *gin.Context) {
	result, err := h.suggestUseCase.Execute(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"books":         result.Books,
		"student_books": result.StudentBooks,
	})
}

// Trending 热搜榜
// @Summary      热搜榜
// @Description  Redis优先，失败回退最近7天数据库聚合
// @Tags         搜索
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/search/trending [get]
func (h *SearchHandler) Trending(c *gin.Context) {
	result, err := h.trendingUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"terms": result.Terms})
}

// Recommendations 个性化推荐
// @Summary      个性化推荐
// @Description  五个栏目：购买历史/心愿单/班级教材/热门/高分
// @Tags         推荐
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/recommendations [get]
func (h *SearchHandler) Recommendations(c *gin.Context) {
	result, err := h.recommendUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"based_on_history":  result.BasedOnHistory,
		"based_on_wishlist": result.BasedOnWishlist,
		"for_your_class":    result.ForYourClass,
		"trending":          result.Trending,
		"top_rated":         result.TopRated,
	})
}
