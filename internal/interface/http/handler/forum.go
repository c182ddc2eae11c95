package handler

import (
	"github.com/gin-gonic/gin"

	appforum "github.com/navyap013/bookhub/internal/application/forum"
	"github.com/navyap013/bookhub/internal/interface/http/dto"
	"github.com/navyap013/bookhub/internal/interface/http/middleware"
	"github.com/navyap013/bookhub/pkg/response"
)

// ForumHandler 论坛HTTP处理器
type ForumHandler struct {
	listPostsUseCase  *appforum.ListPostsUseCase
	getPostUseCase    *appforum.GetPostUseCase
	createPostUseCase *appforum.CreatePostUseCase
	deletePostUseCase *appforum.DeletePostUseCase
	interactUseCase   *appforum.InteractUseCase
}

// NewForumHandler 创建论坛处理器
func NewForumHandler(
	listPostsUseCase *appforum.ListPostsUseCase,
	getPostUseCase *appforum.GetPostUseCase,
	createPostUseCase *appforum.CreatePostUseCase,
	deletePostUseCase *appforum.DeletePostUseCase,
	interactUseCase *appforum.InteractUseCase,
) *ForumHandler {
	return &ForumHandler{
		listPostsUseCase:  listPostsUseCase,
		getPostUseCase:    getPostUseCase,
		createPostUseCase: createPostUseCase,
		deletePostUseCase: deletePostUseCase,
		interactUseCase:   interactUseCase,
	}
}

// ListPosts 帖子列表
// @Summary      帖子列表
// @Tags         论坛
// @Produce      json
// @Param        genre query string false "书籍类型"
// @Param        book_club query string false "书友会"
// @Param        sort query string false "排序" Enums(newest, popular)
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/forum/posts [get]
func (h *ForumHandler) ListPosts(c *gin.Context) {
	var q dto.ListPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.listPostsUseCase.Execute(c.Request.Context(), appforum.ListPostsRequest{
		Genre:    q.Genre,
		BookClub: q.BookClub,
		SortBy:   q.SortBy,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, "posts", result.Posts, len(result.Posts), result.Total, result.Page, result.PageSize)
}

// GetPost 帖子详情
// @Summary      帖子详情（含全部评论）
// @Tags         论坛
// @Produce      json
// @Param        id path int true "帖子ID"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/forum/posts/{id} [get]
func (h *ForumHandler) GetPost(c *gin.Context) {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	result, err := h.getPostUseCase.Execute(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"post": result.Post, "comments": result.Comments})
}

// CreatePost 发帖
// @Summary      发帖
// @Tags         论坛
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body dto.CreatePostRequest true "帖子内容"
// @Success      201 {object} map[string]interface{}
// @Router       /api/v1/forum/posts [post]
func (h *ForumHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	post, err := h.createPostUseCase.Execute(c.Request.Context(), appforum.CreatePostRequest{
		UserID:   middleware.MustGetUserID(c),
		UserName: middleware.GetUserName(c),
		Title:    req.Title,
		Content:  req.Content,
		Genre:    req.Genre,
		BookClub: req.BookClub,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"post": post})
}

// DeletePost 删帖
// @Summary      删帖（楼主或管理员）
// @Tags         论坛
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "帖子ID"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/forum/posts/{id} [delete]
func (h *ForumHandler) DeletePost(c *gin.Context) {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.deletePostUseCase.Execute(c.Request.Context(), postID, middleware.MustGetUserID(c), middleware.IsAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "帖子已删除"})
}

// AddComment 评论/回复
// @Summary      评论或回复
// @Description  parent_comment_id非零表示回复该评论
// @Tags         论坛
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "帖子ID"
// @Param        request body dto.AddCommentRequest true "评论内容"
// @Success      201 {object} map[string]interface{}
// @Router       /api/v1/forum/posts/{id}/comments [post]
func (h *ForumHandler) AddComment(c *gin.Context) {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}
	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)
	userName := middleware.GetUserName(c)

	var comment *appforum.CommentDTO
	if req.ParentCommentID != 0 {
		comment, err = h.interactUseCase.AddReply(c.Request.Context(), postID, req.ParentCommentID, userID, userName, req.Content)
	} else {
		comment, err = h.interactUseCase.AddComment(c.Request.Context(), postID, userID, userName, req.Content)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"comment": comment})
}

// Vote 投票
// @Summary      帖子投票（开关语义）
// @Description  同方向再投=撤销，反方向=改票
// @Tags         论坛
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "帖子ID"
// @Param        request body dto.VoteRequest true "投票方向"
// @Success      200 {object} map[string]interface{}
// @Router       /api/v1/forum/posts/{id}/vote [post]
func (h *ForumHandler) Vote(c *gin.Context) {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}
	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.interactUseCase.Vote(c.Request.Context(), postID, middleware.MustGetUserID(c), req.Direction)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"upvotes":   result.Upvotes,
		"downvotes": result.Downvotes,
		"score":     result.Score,
	})
}
