package exchange

import (
	"context"
)

// ListParams 挂牌列表查询参数
type ListParams struct {
	Status     ListingStatus // 空表示默认active
	Category   string
	ClassLevel int
	Condition  Condition
	MinPrice   int64
	MaxPrice   int64
	Keyword    string // 标题/作者子串
	Page       int
	PageSize   int
}

// Repository 二手交换仓储接口
type Repository interface {
	CreateListing(ctx context.Context, listing *Listing) error

	// FindListingByID 返回挂牌（含感兴趣用户集合）
	FindListingByID(ctx context.Context, id uint) (*Listing, error)

	UpdateListing(ctx context.Context, listing *Listing) error
	ListListings(ctx context.Context, params ListParams) ([]*Listing, int64, error)
	ListBySeller(ctx context.Context, sellerID uint) ([]*Listing, error)

	// IncrViews 详情浏览计数+1
	IncrViews(ctx context.Context, id uint) error

	// AddInterest / RemoveInterest 感兴趣集合的增删
	AddInterest(ctx context.Context, listingID, userID uint) error
	RemoveInterest(ctx context.Context, listingID, userID uint) error

	CreateMessage(ctx context.Context, msg *Message) error

	// Conversation 某挂牌下两人之间的全部留言，时间升序
	Conversation(ctx context.Context, listingID, userA, userB uint) ([]*Message, error)

	// MarkConversationRead 把对话中发给userID的未读留言标记为已读
	MarkConversationRead(ctx context.Context, listingID, userID uint) error

	// CountUnread 用户的未读留言总数
	CountUnread(ctx context.Context, userID uint) (int64, error)
}
