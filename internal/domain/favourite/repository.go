package favourite

import (
	"context"
)

// Repository 收藏仓储接口
type Repository interface {
	Create(ctx context.Context, fav *Favourite) error
	FindByID(ctx context.Context, id uint) (*Favourite, error)
	Delete(ctx context.Context, id uint) error

	// FindByTarget 查用户对某商品的收藏记录，不存在返回(nil, nil)
	FindByTarget(ctx context.Context, userID, bookID, studentBookID uint) (*Favourite, error)

	// ListByUser 用户的全部收藏，创建时间倒序
	ListByUser(ctx context.Context, userID uint) ([]*Favourite, error)
}
