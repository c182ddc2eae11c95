package exchange

import (
	"context"
)

// Service 二手交换领域服务
// 集中处理跨实体的权限规则：兴趣切换、成交、留言许可
type Service interface {
	// ToggleInterest 兴趣切换（不能对自己的挂牌）
	// 返回切换后是否处于感兴趣状态
	ToggleInterest(ctx context.Context, listingID, userID uint) (bool, error)

	// MarkSold 标记售出（仅卖家）
	MarkSold(ctx context.Context, listingID, sellerID, buyerID uint) (*Listing, error)

	// SendMessage 发留言
	// 许可规则：卖家可以给感兴趣集合内的用户发；其他用户必须先表达兴趣才能给卖家发
	SendMessage(ctx context.Context, listingID, senderID, receiverID uint, body string) (*Message, error)

	// GetConversation 拉取与对方的会话，并把发给自己的未读标记为已读
	GetConversation(ctx context.Context, listingID, userID, otherID uint) ([]*Message, error)
}

type service struct {
	repo Repository
}

// NewService 创建二手交换服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ToggleInterest 兴趣切换
func (s *service) ToggleInterest(ctx context.Context, listingID, userID uint) (bool, error) {
	listing, err := s.repo.FindListingByID(ctx, listingID)
	if err != nil {
		return false, err
	}
	if listing.IsOwnedBy(userID) {
		return false, ErrOwnListing
	}
	if listing.Status != StatusActive {
		return false, ErrListingNotActive
	}

	if listing.IsInterested(userID) {
		if err := s.repo.RemoveInterest(ctx, listingID, userID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.repo.AddInterest(ctx, listingID, userID); err != nil {
		return false, err
	}
	return true, nil
}

// MarkSold 标记售出
func (s *service) MarkSold(ctx context.Context, listingID, sellerID, buyerID uint) (*Listing, error) {
	listing, err := s.repo.FindListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !listing.IsOwnedBy(sellerID) {
		return nil, ErrNotSeller
	}

	if err := listing.MarkSold(buyerID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateListing(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// SendMessage 发留言
func (s *service) SendMessage(ctx context.Context, listingID, senderID, receiverID uint, body string) (*Message, error) {
	listing, err := s.repo.FindListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.IsOwnedBy(senderID) {
		// 卖家只能联系感兴趣的买家
		if !listing.IsInterested(receiverID) {
			return nil, ErrMessageNotAllowed
		}
	} else {
		// 买家必须已表达兴趣，且只能发给卖家
		if !listing.IsInterested(senderID) || receiverID != listing.SellerID {
			return nil, ErrMessageNotAllowed
		}
	}

	msg, err := NewMessage(listingID, senderID, receiverID, body)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// GetConversation 拉取会话
func (s *service) GetConversation(ctx context.Context, listingID, userID, otherID uint) ([]*Message, error) {
	if _, err := s.repo.FindListingByID(ctx, listingID); err != nil {
		return nil, err
	}

	msgs, err := s.repo.Conversation(ctx, listingID, userID, otherID)
	if err != nil {
		return nil, err
	}

	// 拉取即已读
	if err := s.repo.MarkConversationRead(ctx, listingID, userID); err != nil {
		return nil, err
	}
	for _, m := range msgs {
		if m.ReceiverID == userID {
			m.IsRead = true
		}
	}
	return msgs, nil
}
