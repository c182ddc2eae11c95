package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// getDB 从context获取事务DB，没有事务时使用默认DB
// 所有仓储统一通过此函数取DB，保证事务内外行为一致
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// nullableID 领域层的0值哨兵 -> 数据库NULL
// 评价/收藏表的商品列必须存NULL而不是0，否则唯一索引会把不同商品当成同一条
func nullableID(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}

// idValue 数据库NULL -> 领域层的0值哨兵
func idValue(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
// MySQL错误码1062: Duplicate entry 'xxx' for key 'yyy'
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}
