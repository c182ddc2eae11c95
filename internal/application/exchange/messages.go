package exchange

import (
	"context"

	"github.com/navyap013/bookhub/internal/domain/exchange"
)

// MessageDTO 留言DTO
type MessageDTO struct {
	ID         uint   `json:"id"`
	ListingID  uint   `json:"listing_id"`
	SenderID   uint   `json:"sender_id"`
	ReceiverID uint   `json:"receiver_id"`
	Body       string `json:"body"`
	IsRead     bool   `json:"is_read"`
	CreatedAt  string `json:"created_at"`
}

func toMessageDTO(m *exchange.Message) MessageDTO {
	return MessageDTO{
		ID:         m.ID,
		ListingID:  m.ListingID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Body:       m.Body,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt.Format(timeLayout),
	}
}

// MessagingUseCase 挂牌留言用例
// 业务规则（领域服务校验）：
// 1. 卖家只能给对挂牌感兴趣的用户发留言
// 2. 买家必须先表达兴趣，且只能发给卖家
// 3. 查看会话时对方发来的留言自动标记已读
type MessagingUseCase struct {
	exchangeService exchange.Service
	exchangeRepo    exchange.Repository
}

// NewMessagingUseCase 创建留言用例
func NewMessagingUseCase(exchangeService exchange.Service, exchangeRepo exchange.Repository) *MessagingUseCase {
	return &MessagingUseCase{exchangeService: exchangeService, exchangeRepo: exchangeRepo}
}

// Send 发送留言
func (uc *MessagingUseCase) Send(ctx context.Context, listingID, senderID, receiverID uint, body string) (*MessageDTO, error) {
	m, err := uc.exchangeService.SendMessage(ctx, listingID, senderID, receiverID, body)
	if err != nil {
		return nil, err
	}
	dto := toMessageDTO(m)
	return &dto, nil
}

// Conversation 查看与某用户在某挂牌下的会话
func (uc *MessagingUseCase) Conversation(ctx context.Context, listingID, userID, otherID uint) ([]MessageDTO, error) {
	messages, err := uc.exchangeService.GetConversation(ctx, listingID, userID, otherID)
	if err != nil {
		return nil, err
	}
	list := make([]MessageDTO, len(messages))
	for i, m := range messages {
		list[i] = toMessageDTO(m)
	}
	return list, nil
}

// UnreadCount 未读留言总数（导航栏角标）
func (uc *MessagingUseCase) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return uc.exchangeRepo.CountUnread(ctx, userID)
}
