package review

import (
	"time"
)

// Review 评价实体（聚合根）
// BookID/StudentBookID恰好一个非零；
// 同一用户对同一商品最多一条评价（应用层先查后插+数据库唯一索引兜底）
type Review struct {
	ID            uint
	UserID        uint
	UserName      string // 展示用快照
	BookID        uint
	StudentBookID uint
	Rating        int // 1-5
	Comment       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewReview 创建评价（工厂方法）
func NewReview(userID uint, userName string, bookID, studentBookID uint, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if bookID == 0 && studentBookID == 0 {
		return nil, ErrInvalidTarget
	}
	now := time.Now()
	return &Review{
		UserID:        userID,
		UserName:      userName,
		BookID:        bookID,
		StudentBookID: studentBookID,
		Rating:        rating,
		Comment:       comment,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Edit 修改评分与评语
func (r *Review) Edit(rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	r.Rating = rating
	r.Comment = comment
	r.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 评价归属校验
func (r *Review) IsOwnedBy(userID uint) bool {
	return r.UserID == userID
}
