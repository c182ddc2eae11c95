package mysql

import (
	"context"

	"gorm.io/gorm"
)

// txKey 事务在context中的键（非导出类型避免键冲突）
type txKey struct{}

// TxManager 事务管理器
// 设计说明：
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB（避免全局变量）
// 3. 支持嵌套事务（GORM自动使用Savepoint）
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn内的所有Repository操作都在同一事务中执行；
// fn返回error时自动ROLLBACK，返回nil时自动COMMIT
//
// 使用示例（结算流程）：
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    if err := orderRepo.Create(ctx, order); err != nil {
//	        return err
//	    }
//	    for _, item := range order.Items {
//	        if err := bookRepo.UpdateStock(ctx, item.BookID, -item.Quantity); err != nil {
//	            return err // 库存不足整单回滚
//	        }
//	    }
//	    return cartRepo.Clear(ctx, cart.ID)
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Repository的getDB会从context提取事务DB
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}
