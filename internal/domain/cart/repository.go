package cart

import (
	"context"
)

// Repository 购物车仓储接口
// Save整体持久化聚合（购物车+行项），实现侧负责行项的增删同步
type Repository interface {
	// FindByUser 查找用户购物车，不存在返回(nil, nil)
	FindByUser(ctx context.Context, userID uint) (*Cart, error)

	// Create 创建购物车
	Create(ctx context.Context, cart *Cart) error

	// Save 保存整个聚合（行项以内存状态为准，删除多余行、更新既有行、插入新行）
	Save(ctx context.Context, cart *Cart) error

	// Clear 清空行项并把总价归零
	Clear(ctx context.Context, cartID uint) error
}
