package exchange

import (
	"time"
)

// ListingStatus 挂牌状态
type ListingStatus string

const (
	StatusActive  ListingStatus = "active"
	StatusSold    ListingStatus = "sold"
	StatusRemoved ListingStatus = "removed"
)

// Condition 书况
type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like-new"
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
)

// Valid 校验书况
func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair:
		return true
	}
	return false
}

// Listing 二手书挂牌实体（聚合根）
// 设计说明：
// 1. 卖家自述书况与价格，无平台履约，交易双方自行联络
// 2. 删除是软状态：status=removed，记录保留（关联的消息仍可查）
// 3. InterestedUserIDs是感兴趣的买家集合（join表），卖家只能给集合内的人发消息
// 4. Views详情页浏览计数，每次详情查询+1
type Listing struct {
	ID                uint
	SellerID          uint
	SellerName        string
	Title             string
	Author            string
	Category          string
	ClassLevel        int // 教材类挂牌的适用班级，0表示非教材
	Condition         Condition
	Price             int64 // paise
	Description       string
	Images            []string
	Status            ListingStatus
	SoldToID          uint // 成交买家，未成交为0
	Views             int
	InterestedUserIDs []uint
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewListing 创建挂牌
func NewListing(sellerID uint, sellerName, title, author, category string, classLevel int, condition Condition, price int64, description string, images []string) (*Listing, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !condition.Valid() {
		return nil, ErrInvalidCondition
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	now := time.Now()
	return &Listing{
		SellerID:    sellerID,
		SellerName:  sellerName,
		Title:       title,
		Author:      author,
		Category:    category,
		ClassLevel:  classLevel,
		Condition:   condition,
		Price:       price,
		Description: description,
		Images:      images,
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsOwnedBy 挂牌归属校验
func (l *Listing) IsOwnedBy(userID uint) bool {
	return l.SellerID == userID
}

// IsInterested 用户是否在感兴趣集合中
func (l *Listing) IsInterested(userID uint) bool {
	for _, id := range l.InterestedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// MarkSold 标记售出
// 业务规则：仅active可售出；买家必须指定
func (l *Listing) MarkSold(buyerID uint) error {
	if l.Status != StatusActive {
		return ErrListingNotActive
	}
	if buyerID == 0 || buyerID == l.SellerID {
		return ErrInvalidBuyer
	}
	l.Status = StatusSold
	l.SoldToID = buyerID
	l.UpdatedAt = time.Now()
	return nil
}

// Remove 下架（软删除）
func (l *Listing) Remove() {
	l.Status = StatusRemoved
	l.UpdatedAt = time.Now()
}

// Message 挂牌留言
// 买卖双方围绕一个挂牌的私信，IsRead由会话拉取方标记
type Message struct {
	ID         uint
	ListingID  uint
	SenderID   uint
	ReceiverID uint
	Body       string
	IsRead     bool
	ReadAt     *time.Time
	CreatedAt  time.Time
}

// NewMessage 创建留言
func NewMessage(listingID, senderID, receiverID uint, body string) (*Message, error) {
	if body == "" {
		return nil, ErrEmptyMessage
	}
	if senderID == receiverID {
		return nil, ErrSelfMessage
	}
	return &Message{
		ListingID:  listingID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
		CreatedAt:  time.Now(),
	}, nil
}
