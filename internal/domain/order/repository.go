package order

import (
	"context"
)

// Repository 订单仓储接口
// HasPaidOrderWith*同时实现ebook.PurchaseChecker（电子书purchase解锁判定）
type Repository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uint) (*Order, error)
	Update(ctx context.Context, order *Order) error

	// ListByUser 用户订单列表，创建时间倒序
	ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]*Order, int64, error)

	// List 管理端全量订单列表
	List(ctx context.Context, status Status, page, pageSize int) ([]*Order, int64, error)

	// HasPaidOrderWithBook 用户的已支付订单中是否包含指定图书
	HasPaidOrderWithBook(ctx context.Context, userID, bookID uint) (bool, error)

	// HasPaidOrderWithStudentBook 同上，教材维度
	HasPaidOrderWithStudentBook(ctx context.Context, userID, studentBookID uint) (bool, error)

	// PaidItemsByUser 用户已支付订单的全部明细（推荐画像提取用）
	PaidItemsByUser(ctx context.Context, userID uint) ([]Item, error)
}
