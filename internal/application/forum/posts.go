package forum

import (
	"context"

	"github.com/navyap013/bookhub/internal/domain/forum"
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

const timeLayout = "2006-01-02 15:04:05"

// PostDTO 帖子DTO
type PostDTO struct {
	ID           uint   `json:"id"`
	UserID       uint   `json:"user_id"`
	UserName     string `json:"user_name"`
	Title        string `json:"title"`
	Content      string `json:"content,omitempty"`
	Genre        string `json:"genre,omitempty"`
	BookClub     string `json:"book_club,omitempty"`
	Upvotes      int    `json:"upvotes"`
	Downvotes    int    `json:"downvotes"`
	Score        int    `json:"score"`
	CommentCount int    `json:"comment_count"`
	CreatedAt    string `json:"created_at"`
}

// CommentDTO 评论DTO
// ParentCommentID为空表示一级评论，否则是对某条评论的回复
type CommentDTO struct {
	ID              uint   `json:"id"`
	PostID          uint   `json:"post_id"`
	ParentCommentID *uint  `json:"parent_comment_id,omitempty"`
	UserID          uint   `json:"user_id"`
	UserName        string `json:"user_name"`
	Content         string `json:"content"`
	CreatedAt       string `json:"created_at"`
}

func toPostDTO(p *forum.Post) PostDTO {
	return PostDTO{
		ID:           p.ID,
		UserID:       p.UserID,
		UserName:     p.UserName,
		Title:        p.Title,
		Content:      p.Content,
		Genre:        p.Genre,
		BookClub:     p.BookClub,
		Upvotes:      p.Upvotes,
		Downvotes:    p.Downvotes,
		Score:        p.Score(),
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt.Format(timeLayout),
	}
}

func toCommentDTO(c *forum.Comment) CommentDTO {
	return CommentDTO{
		ID:              c.ID,
		PostID:          c.PostID,
		ParentCommentID: c.ParentCommentID,
		UserID:          c.UserID,
		UserName:        c.UserName,
		Content:         c.Content,
		CreatedAt:       c.CreatedAt.Format(timeLayout),
	}
}

// ListPostsUseCase 帖子列表用例
// 支持按书籍类型/书友会过滤，按最新或热度排序
type ListPostsUseCase struct {
	forumRepo forum.Repository
}

// NewListPostsUseCase 创建帖子列表用例
func NewListPostsUseCase(forumRepo forum.Repository) *ListPostsUseCase {
	return &ListPostsUseCase{forumRepo: forumRepo}
}

// ListPostsRequest 帖子列表请求DTO
type ListPostsRequest struct {
	Genre    string
	BookClub string
	SortBy   string // newest | popular
	Page     int
	PageSize int
}

// ListPostsResponse 帖子列表响应DTO
type ListPostsResponse struct {
	Posts    []PostDTO `json:"posts"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

// Execute 查询帖子列表（不返回正文，减少传输量）
func (uc *ListPostsUseCase) Execute(ctx context.Context, req ListPostsRequest) (*ListPostsResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	posts, total, err := uc.forumRepo.ListPosts(ctx, forum.ListParams{
		Genre:    req.Genre,
		BookClub: req.BookClub,
		SortBy:   req.SortBy,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	list := make([]PostDTO, len(posts))
	for i, p := range posts {
		list[i] = toPostDTO(p)
		list[i].Content = ""
	}
	return &ListPostsResponse{Posts: list, Total: total, Page: req.Page, PageSize: req.PageSize}, nil
}

// GetPostUseCase 帖子详情用例（含全部评论）
type GetPostUseCase struct {
	forumRepo forum.Repository
}

// NewGetPostUseCase 创建帖子详情用例
func NewGetPostUseCase(forumRepo forum.Repository) *GetPostUseCase {
	return &GetPostUseCase{forumRepo: forumRepo}
}

// PostDetailResponse 帖子详情响应DTO
// 评论扁平返回（按时间正序），前端按parent_comment_id组装树
type PostDetailResponse struct {
	Post     PostDTO      `json:"post"`
	Comments []CommentDTO `json:"comments"`
}

// Execute 查询帖子详情
func (uc *GetPostUseCase) Execute(ctx context.Context, postID uint) (*PostDetailResponse, error) {
	p, err := uc.forumRepo.FindPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	comments, err := uc.forumRepo.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	list := make([]CommentDTO, len(comments))
	for i, c := range comments {
		list[i] = toCommentDTO(c)
	}
	return &PostDetailResponse{Post: toPostDTO(p), Comments: list}, nil
}

// CreatePostUseCase 发帖用例
type CreatePostUseCase struct {
	forumRepo forum.Repository
}

// NewCreatePostUseCase 创建发帖用例
func NewCreatePostUseCase(forumRepo forum.Repository) *CreatePostUseCase {
	return &CreatePostUseCase{forumRepo: forumRepo}
}

// CreatePostRequest 发帖请求DTO
type CreatePostRequest struct {
	UserID   uint
	UserName string
	Title    string
	Content  string
	Genre    string
	BookClub string
}

// Execute 执行发帖
func (uc *CreatePostUseCase) Execute(ctx context.Context, req CreatePostRequest) (*PostDTO, error) {
	p, err := forum.NewPost(req.UserID, req.UserName, req.Title, req.Content, req.Genre, req.BookClub)
	if err != nil {
		return nil, err
	}
	if err := uc.forumRepo.CreatePost(ctx, p); err != nil {
		return nil, err
	}
	dto := toPostDTO(p)
	return &dto, nil
}

// DeletePostUseCase 删帖用例
// 楼主本人或管理员可删，级联删除评论与投票
type DeletePostUseCase struct {
	forumRepo forum.Repository
}

// NewDeletePostUseCase 创建删帖用例
func NewDeletePostUseCase(forumRepo forum.Repository) *DeletePostUseCase {
	return &DeletePostUseCase{forumRepo: forumRepo}
}

// Execute 执行删帖
func (uc *DeletePostUseCase) Execute(ctx context.Context, postID, userID uint, isAdmin bool) error {
	p, err := uc.forumRepo.FindPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if !isAdmin && !p.IsOwnedBy(userID) {
		return apperrors.ErrForbidden
	}
	return uc.forumRepo.DeletePost(ctx, postID)
}
