package dto

// CreatePostRequest 发帖请求
type CreatePostRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Content  string `json:"content" binding:"required"`
	Genre    string `json:"genre"`
	BookClub string `json:"book_club"`
}

// ListPostsQuery 帖子列表查询参数
type ListPostsQuery struct {
	Genre    string `form:"genre"`
	BookClub string `form:"book_club"`
	SortBy   string `form:"sort" binding:"omitempty,oneof=newest popular"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// AddCommentRequest 评论请求
// parent_comment_id非零表示回复某条评论
type AddCommentRequest struct {
	Content         string `json:"content" binding:"required"`
	ParentCommentID uint   `json:"parent_comment_id"`
}

// VoteRequest 投票请求
type VoteRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}
