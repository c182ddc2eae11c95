package forum

import (
	"context"
)

// ListParams 帖子列表查询参数
type ListParams struct {
	Genre    string
	BookClub string
	SortBy   string // newest | popular
	Page     int
	PageSize int
}

// Repository 论坛仓储接口（帖子+评论+投票一个聚合）
type Repository interface {
	CreatePost(ctx context.Context, post *Post) error
	FindPostByID(ctx context.Context, id uint) (*Post, error)
	UpdatePost(ctx context.Context, post *Post) error
	DeletePost(ctx context.Context, id uint) error
	ListPosts(ctx context.Context, params ListParams) ([]*Post, int64, error)

	CreateComment(ctx context.Context, comment *Comment) error
	FindCommentByID(ctx context.Context, id uint) (*Comment, error)

	// ListComments 帖子的全部评论（含回复），创建时间升序
	ListComments(ctx context.Context, postID uint) ([]*Comment, error)

	// CountComments 帖子评论数（含回复）
	CountComments(ctx context.Context, postID uint) (int, error)

	// FindVote 查用户对帖子的投票，不存在返回(nil, nil)
	FindVote(ctx context.Context, postID, userID uint) (*Vote, error)
	SaveVote(ctx context.Context, vote *Vote) error
	DeleteVote(ctx context.Context, postID, userID uint) error

	// CountVotes 帖子的赞/踩数
	CountVotes(ctx context.Context, postID uint) (up, down int, err error)

	// SetPostCounters 写回冗余计数
	SetPostCounters(ctx context.Context, postID uint, upvotes, downvotes, comments int) error
}
