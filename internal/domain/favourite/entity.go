package favourite

import (
	"time"
)

// Favourite 收藏记录（心愿单）
// (UserID, BookID|StudentBookID)唯一，记录的存在即收藏关系
type Favourite struct {
	ID            uint
	UserID        uint
	BookID        uint
	StudentBookID uint
	CreatedAt     time.Time
}

// NewFavourite 创建收藏记录
func NewFavourite(userID, bookID, studentBookID uint) (*Favourite, error) {
	if bookID == 0 && studentBookID == 0 {
		return nil, ErrInvalidTarget
	}
	return &Favourite{
		UserID:        userID,
		BookID:        bookID,
		StudentBookID: studentBookID,
		CreatedAt:     time.Now(),
	}, nil
}

// IsOwnedBy 归属校验
func (f *Favourite) IsOwnedBy(userID uint) bool {
	return f.UserID == userID
}
