package forum

import (
	"time"
)

// Post 论坛帖子实体（聚合根）
// 设计说明：
// 1. Genre/BookClub是帖子的两个分类维度（书籍体裁、读书会）
// 2. Upvotes/Downvotes是冗余计数，投票明细在post_votes表，
//    变更后由Service全量重算写回（与评分聚合器同一策略）
// 3. CommentCount同理，评论落库后重算
type Post struct {
	ID           uint
	UserID       uint
	UserName     string
	Title        string
	Content      string
	Genre        string
	BookClub     string
	Upvotes      int
	Downvotes    int
	CommentCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewPost 创建帖子
func NewPost(userID uint, userName, title, content, genre, bookClub string) (*Post, error) {
	if title == "" || content == "" {
		return nil, ErrEmptyPost
	}
	now := time.Now()
	return &Post{
		UserID:    userID,
		UserName:  userName,
		Title:     title,
		Content:   content,
		Genre:     genre,
		BookClub:  bookClub,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Score 热度分（popular排序依据）
func (p *Post) Score() int {
	return p.Upvotes - p.Downvotes
}

// IsOwnedBy 帖子归属校验
func (p *Post) IsOwnedBy(userID uint) bool {
	return p.UserID == userID
}

// Comment 评论实体
// 扁平表结构：ParentCommentID为nil是一级评论，非nil是对某条评论的回复；
// PostID冗余在每条回复上，单查即可取出整个帖子的评论树
type Comment struct {
	ID              uint
	PostID          uint
	ParentCommentID *uint
	UserID          uint
	UserName        string
	Content         string
	CreatedAt       time.Time
}

// NewComment 创建一级评论
func NewComment(postID, userID uint, userName, content string) (*Comment, error) {
	if content == "" {
		return nil, ErrEmptyComment
	}
	return &Comment{
		PostID:    postID,
		UserID:    userID,
		UserName:  userName,
		Content:   content,
		CreatedAt: time.Now(),
	}, nil
}

// NewReply 创建回复
func NewReply(postID, parentCommentID, userID uint, userName, content string) (*Comment, error) {
	if content == "" {
		return nil, ErrEmptyComment
	}
	return &Comment{
		PostID:          postID,
		ParentCommentID: &parentCommentID,
		UserID:          userID,
		UserName:        userName,
		Content:         content,
		CreatedAt:       time.Now(),
	}, nil
}

// VoteValue 投票方向
type VoteValue int

const (
	VoteUp   VoteValue = 1
	VoteDown VoteValue = -1
)

// Vote 投票记录，(PostID, UserID)唯一
type Vote struct {
	ID        uint
	PostID    uint
	UserID    uint
	Value     VoteValue
	CreatedAt time.Time
}
