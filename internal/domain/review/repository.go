package review

import (
	"context"
)

// Repository 评价仓储接口
type Repository interface {
	Create(ctx context.Context, review *Review) error
	FindByID(ctx context.Context, id uint) (*Review, error)
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uint) error

	// FindByUserAndBook / FindByUserAndStudentBook 重复评价检查，不存在返回(nil, nil)
	FindByUserAndBook(ctx context.Context, userID, bookID uint) (*Review, error)
	FindByUserAndStudentBook(ctx context.Context, userID, studentBookID uint) (*Review, error)

	// ListByBook / ListByStudentBook 商品的全部评价（聚合器重算与详情页共用）
	ListByBook(ctx context.Context, bookID uint) ([]*Review, error)
	ListByStudentBook(ctx context.Context, studentBookID uint) ([]*Review, error)
}

// RatingWriter 聚合评分写回接口
// 由catalog仓储实现，聚合器只需要这一个能力
type RatingWriter interface {
	SetRating(ctx context.Context, id uint, average float64, count int) error
}
