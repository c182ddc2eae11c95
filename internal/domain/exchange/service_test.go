package exchange

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExchangeRepo struct {
	listings map[uint]*Listing
	messages []*Message
}

func newFakeExchangeRepo(listings ...*Listing) *fakeExchangeRepo {
	r := &fakeExchangeRepo{listings: map[uint]*Listing{}}
	for _, l := range listings {
		r.listings[l.ID] = l
	}
	return r
}

func (r *fakeExchangeRepo) CreateListing(ctx context.Context, listing *Listing) error {
	r.listings[listing.ID] = listing
	return nil
}

func (r *fakeExchangeRepo) FindListingByID(ctx context.Context, id uint) (*Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, ErrListingNotFound
	}
	return l, nil
}

func (r *fakeExchangeRepo) UpdateListing(ctx context.Context, listing *Listing) error { return nil }

func (r *fakeExchangeRepo) ListListings(ctx context.Context, params ListParams) ([]*Listing, int64, error) {
	return nil, 0, nil
}

func (r *fakeExchangeRepo) ListBySeller(ctx context.Context, sellerID uint) ([]*Listing, error) {
	return nil, nil
}

func (r *fakeExchangeRepo) IncrViews(ctx context.Context, id uint) error { return nil }

func (r *fakeExchangeRepo) AddInterest(ctx context.Context, listingID, userID uint) error {
	l := r.listings[listingID]
	l.InterestedUserIDs = append(l.InterestedUserIDs, userID)
	return nil
}

func (r *fakeExchangeRepo) RemoveInterest(ctx context.Context, listingID, userID uint) error {
	l := r.listings[listingID]
	for i, id := range l.InterestedUserIDs {
		if id == userID {
			l.InterestedUserIDs = append(l.InterestedUserIDs[:i], l.InterestedUserIDs[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeExchangeRepo) CreateMessage(ctx context.Context, msg *Message) error {
	msg.ID = uint(len(r.messages) + 1)
	r.messages = append(r.messages, msg)
	return nil
}

func (r *fakeExchangeRepo) Conversation(ctx context.Context, listingID, userA, userB uint) ([]*Message, error) {
	var out []*Message
	for _, m := range r.messages {
		if m.ListingID != listingID {
			continue
		}
		if (m.SenderID == userA && m.ReceiverID == userB) || (m.SenderID == userB && m.ReceiverID == userA) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeExchangeRepo) MarkConversationRead(ctx context.Context, listingID, userID uint) error {
	now := time.Now()
	for _, m := range r.messages {
		if m.ListingID == listingID && m.ReceiverID == userID && !m.IsRead {
			m.IsRead = true
			m.ReadAt = &now
		}
	}
	return nil
}

func (r *fakeExchangeRepo) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var n int64
	for _, m := range r.messages {
		if m.ReceiverID == userID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

const (
	sellerID = uint(1)
	buyerID  = uint(2)
)

func newTestListing(id uint) *Listing {
	l, _ := NewListing(sellerID, "卖家", "旧数学书", "作者", "教材", 8, ConditionGood, 15000, "九成新", nil)
	l.ID = id
	return l
}

// TestService_ToggleInterest 测试兴趣切换
func TestService_ToggleInterest(t *testing.T) {
	ctx := context.Background()

	t.Run("开关语义", func(t *testing.T) {
		repo := newFakeExchangeRepo(newTestListing(1))
		svc := NewService(repo)

		interested, err := svc.ToggleInterest(ctx, 1, buyerID)
		require.NoError(t, err)
		assert.True(t, interested, "首次切换进入感兴趣状态")

		interested, err = svc.ToggleInterest(ctx, 1, buyerID)
		require.NoError(t, err)
		assert.False(t, interested, "再次切换撤销兴趣")
		assert.Empty(t, repo.listings[1].InterestedUserIDs)
	})

	t.Run("不能对自己的挂牌", func(t *testing.T) {
		svc := NewService(newFakeExchangeRepo(newTestListing(1)))
		_, err := svc.ToggleInterest(ctx, 1, sellerID)
		assert.ErrorIs(t, err, ErrOwnListing)
	})

	t.Run("已售出的挂牌", func(t *testing.T) {
		l := newTestListing(1)
		require.NoError(t, l.MarkSold(buyerID))
		svc := NewService(newFakeExchangeRepo(l))
		_, err := svc.ToggleInterest(ctx, 1, 3)
		assert.ErrorIs(t, err, ErrListingNotActive)
	})
}

// TestService_MarkSold 测试标记售出
func TestService_MarkSold(t *testing.T) {
	ctx := context.Background()

	t.Run("卖家正常成交", func(t *testing.T) {
		svc := NewService(newFakeExchangeRepo(newTestListing(1)))
		l, err := svc.MarkSold(ctx, 1, sellerID, buyerID)
		require.NoError(t, err)
		assert.Equal(t, StatusSold, l.Status)
		assert.Equal(t, buyerID, l.SoldToID)
	})

	t.Run("非卖家不能成交", func(t *testing.T) {
		svc := NewService(newFakeExchangeRepo(newTestListing(1)))
		_, err := svc.MarkSold(ctx, 1, buyerID, 3)
		assert.ErrorIs(t, err, ErrNotSeller)
	})

	t.Run("买家不能是卖家自己", func(t *testing.T) {
		svc := NewService(newFakeExchangeRepo(newTestListing(1)))
		_, err := svc.MarkSold(ctx, 1, sellerID, sellerID)
		assert.ErrorIs(t, err, ErrInvalidBuyer)
	})

	t.Run("重复成交", func(t *testing.T) {
		svc := NewService(newFakeExchangeRepo(newTestListing(1)))
		_, err := svc.MarkSold(ctx, 1, sellerID, buyerID)
		require.NoError(t, err)
		_, err = svc.MarkSold(ctx, 1, sellerID, 3)
		assert.ErrorIs(t, err, ErrListingNotActive)
	})
}

// TestService_SendMessage 测试留言许可规则
func TestService_SendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("买家未表达兴趣不能留言", func(t *testing.T) {
		svc := NewService(newFakeExchangeRepo(newTestListing(1)))
		_, err := svc.SendMessage(ctx, 1, buyerID, sellerID, "还在吗")
		assert.ErrorIs(t, err, ErrMessageNotAllowed)
	})

	t.Run("表达兴趣后可给卖家留言", func(t *testing.T) {
		repo := newFakeExchangeRepo(newTestListing(1))
		svc := NewService(repo)
		_, err := svc.ToggleInterest(ctx, 1, buyerID)
		require.NoError(t, err)

		msg, err := svc.SendMessage(ctx, 1, buyerID, sellerID, "还在吗")
		require.NoError(t, err)
		assert.Equal(t, buyerID, msg.SenderID)
		assert.False(t, msg.IsRead)
	})

	t.Run("买家不能给别的买家留言", func(t *testing.T) {
		repo := newFakeExchangeRepo(newTestListing(1))
		svc := NewService(repo)
		_, err := svc.ToggleInterest(ctx, 1, buyerID)
		require.NoError(t, err)
		_, err = svc.ToggleInterest(ctx, 1, 3)
		require.NoError(t, err)

		_, err = svc.SendMessage(ctx, 1, buyerID, 3, "私聊")
		assert.ErrorIs(t, err, ErrMessageNotAllowed)
	})

	t.Run("卖家只能联系感兴趣的买家", func(t *testing.T) {
		repo := newFakeExchangeRepo(newTestListing(1))
		svc := NewService(repo)

		_, err := svc.SendMessage(ctx, 1, sellerID, buyerID, "有货")
		assert.ErrorIs(t, err, ErrMessageNotAllowed, "对方未表达兴趣")

		_, err = svc.ToggleInterest(ctx, 1, buyerID)
		require.NoError(t, err)
		_, err = svc.SendMessage(ctx, 1, sellerID, buyerID, "有货")
		assert.NoError(t, err)
	})

	t.Run("空内容被拒绝", func(t *testing.T) {
		repo := newFakeExchangeRepo(newTestListing(1))
		svc := NewService(repo)
		_, err := svc.ToggleInterest(ctx, 1, buyerID)
		require.NoError(t, err)

		_, err = svc.SendMessage(ctx, 1, buyerID, sellerID, "")
		assert.ErrorIs(t, err, ErrEmptyMessage)
	})
}

// TestService_GetConversation 测试会话拉取与已读
func TestService_GetConversation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeExchangeRepo(newTestListing(1))
	svc := NewService(repo)

	_, err := svc.ToggleInterest(ctx, 1, buyerID)
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, 1, buyerID, sellerID, "还在吗")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, 1, sellerID, buyerID, "在的")
	require.NoError(t, err)

	unread, err := repo.CountUnread(ctx, sellerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	msgs, err := svc.GetConversation(ctx, 1, sellerID, buyerID)
	require.NoError(t, err)
	assert.Len(t, msgs, 2)

	unread, err = repo.CountUnread(ctx, sellerID)
	require.NoError(t, err)
	assert.Zero(t, unread, "拉取会话后发给自己的留言应已读")
}

// TestNewListing 测试挂牌工厂校验
func TestNewListing(t *testing.T) {
	_, err := NewListing(1, "卖家", "", "作者", "教材", 0, ConditionGood, 100, "", nil)
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = NewListing(1, "卖家", "书", "作者", "教材", 0, Condition("worn"), 100, "", nil)
	assert.ErrorIs(t, err, ErrInvalidCondition)

	_, err = NewListing(1, "卖家", "书", "作者", "教材", 0, ConditionGood, -1, "", nil)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}
