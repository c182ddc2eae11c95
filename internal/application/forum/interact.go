package forum

import (
	"context"
	"log"
	"time"

	"github.com/navyap013/bookhub/internal/domain/forum"
	"github.com/navyap013/bookhub/pkg/mq"
)

// 论坛互动事件的路由键
const (
	eventComment = "forum.comment"
	eventReply   = "forum.reply"
	eventVote    = "forum.vote"
)

// InteractionEvent 论坛互动事件
// 发往消息队列，供通知服务等下游消费
type InteractionEvent struct {
	PostID     uint   `json:"post_id"`
	UserID     uint   `json:"user_id"`
	UserName   string `json:"user_name"`
	CommentID  uint   `json:"comment_id,omitempty"`
	Vote       int    `json:"vote,omitempty"`
	OccurredAt int64  `json:"occurred_at"`
}

// InteractUseCase 论坛互动用例（评论/回复/投票）
// 设计说明：
// 1. 互动落库成功后发布事件，发布失败只记日志（尽力而为）
// 2. 帖子上的计数器由领域服务全量重算，与明细表最终一致
type InteractUseCase struct {
	forumService forum.Service
	forumRepo    forum.Repository
	publisher    *mq.Publisher
}

// NewInteractUseCase 创建互动用例
// publisher可为nil（比如测试环境没有MQ），此时跳过事件发布
func NewInteractUseCase(forumService forum.Service, forumRepo forum.Repository, publisher *mq.Publisher) *InteractUseCase {
	return &InteractUseCase{
		forumService: forumService,
		forumRepo:    forumRepo,
		publisher:    publisher,
	}
}

// AddComment 发表一级评论
func (uc *InteractUseCase) AddComment(ctx context.Context, postID, userID uint, userName, content string) (*CommentDTO, error) {
	c, err := uc.forumService.AddComment(ctx, postID, userID, userName, content)
	if err != nil {
		return nil, err
	}

	uc.publish(eventComment, InteractionEvent{
		PostID:     postID,
		UserID:     userID,
		UserName:   userName,
		CommentID:  c.ID,
		OccurredAt: time.Now().Unix(),
	})

	dto := toCommentDTO(c)
	return &dto, nil
}

// AddReply 回复某条评论
func (uc *InteractUseCase) AddReply(ctx context.Context, postID, parentCommentID, userID uint, userName, content string) (*CommentDTO, error) {
	c, err := uc.forumService.AddReply(ctx, postID, parentCommentID, userID, userName, content)
	if err != nil {
		return nil, err
	}

	uc.publish(eventReply, InteractionEvent{
		PostID:     postID,
		UserID:     userID,
		UserName:   userName,
		CommentID:  c.ID,
		OccurredAt: time.Now().Unix(),
	})

	dto := toCommentDTO(c)
	return &dto, nil
}

// VoteResponse 投票响应DTO
type VoteResponse struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
	Score     int `json:"score"`
}

// Vote 投票（开关语义）
// 同方向再投=撤销，反方向=改票
func (uc *InteractUseCase) Vote(ctx context.Context, postID, userID uint, direction string) (*VoteResponse, error) {
	var value forum.VoteValue
	switch direction {
	case "up":
		value = forum.VoteUp
	case "down":
		value = forum.VoteDown
	default:
		return nil, forum.ErrInvalidVote
	}

	up, down, err := uc.forumService.ToggleVote(ctx, postID, userID, value)
	if err != nil {
		return nil, err
	}

	uc.publish(eventVote, InteractionEvent{
		PostID:     postID,
		UserID:     userID,
		Vote:       int(value),
		OccurredAt: time.Now().Unix(),
	})

	return &VoteResponse{Upvotes: up, Downvotes: down, Score: up - down}, nil
}

func (uc *InteractUseCase) publish(routingKey string, event InteractionEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(routingKey, event); err != nil {
		log.Printf("论坛事件发布失败: key=%s err=%v", routingKey, err)
	}
}
