package forum

import (
	"context"
)

// Service 论坛领域服务
// 评论与投票落库后重算帖子上的冗余计数（与评分聚合器同一策略）
type Service interface {
	// AddComment 发表一级评论
	AddComment(ctx context.Context, postID, userID uint, userName, content string) (*Comment, error)

	// AddReply 回复某条评论（父评论必须属于同一帖子）
	AddReply(ctx context.Context, postID, parentCommentID, userID uint, userName, content string) (*Comment, error)

	// ToggleVote 投票切换
	// 同向再投=取消；反向=改票；无票=记票。返回最新的赞/踩数
	ToggleVote(ctx context.Context, postID, userID uint, value VoteValue) (up, down int, err error)
}

type service struct {
	repo Repository
}

// NewService 创建论坛服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddComment 发表评论
func (s *service) AddComment(ctx context.Context, postID, userID uint, userName, content string) (*Comment, error) {
	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment, err := NewComment(post.ID, userID, userName, content)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.refreshCounters(ctx, post); err != nil {
		return nil, err
	}
	return comment, nil
}

// AddReply 回复评论
func (s *service) AddReply(ctx context.Context, postID, parentCommentID, userID uint, userName, content string) (*Comment, error) {
	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	parent, err := s.repo.FindCommentByID(ctx, parentCommentID)
	if err != nil {
		return nil, err
	}
	if parent.PostID != post.ID {
		return nil, ErrCommentPostMismatch
	}

	reply, err := NewReply(post.ID, parent.ID, userID, userName, content)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateComment(ctx, reply); err != nil {
		return nil, err
	}

	if err := s.refreshCounters(ctx, post); err != nil {
		return nil, err
	}
	return reply, nil
}

// ToggleVote 投票切换
func (s *service) ToggleVote(ctx context.Context, postID, userID uint, value VoteValue) (int, int, error) {
	if value != VoteUp && value != VoteDown {
		return 0, 0, ErrInvalidVote
	}

	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return 0, 0, err
	}

	existing, err := s.repo.FindVote(ctx, postID, userID)
	if err != nil {
		return 0, 0, err
	}

	switch {
	case existing == nil:
		if err := s.repo.SaveVote(ctx, &Vote{PostID: postID, UserID: userID, Value: value}); err != nil {
			return 0, 0, err
		}
	case existing.Value == value:
		// 同向再投视为取消
		if err := s.repo.DeleteVote(ctx, postID, userID); err != nil {
			return 0, 0, err
		}
	default:
		// 反向改票
		existing.Value = value
		if err := s.repo.SaveVote(ctx, existing); err != nil {
			return 0, 0, err
		}
	}

	if err := s.refreshCounters(ctx, post); err != nil {
		return 0, 0, err
	}
	return post.Upvotes, post.Downvotes, nil
}

// refreshCounters 全量重算帖子冗余计数并写回（post同步更新为最新值）
func (s *service) refreshCounters(ctx context.Context, post *Post) error {
	up, down, err := s.repo.CountVotes(ctx, post.ID)
	if err != nil {
		return err
	}
	comments, err := s.repo.CountComments(ctx, post.ID)
	if err != nil {
		return err
	}

	post.Upvotes = up
	post.Downvotes = down
	post.CommentCount = comments
	return s.repo.SetPostCounters(ctx, post.ID, up, down, comments)
}
