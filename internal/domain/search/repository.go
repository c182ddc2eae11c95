package search

import (
	"context"
	"time"
)

// Repository 搜索历史仓储接口
type Repository interface {
	// Create 记录一次搜索
	Create(ctx context.Context, h *History) error

	// Trending 最近since之后最高频的查询词
	Trending(ctx context.Context, since time.Time, limit int) ([]TrendingTerm, error)
}

// TrendingCache 热搜快路径（Redis有序集合）
// 写失败只记日志不中断，读失败退回MySQL聚合
type TrendingCache interface {
	// Incr 查询词计频+1
	Incr(ctx context.Context, query string) error

	// Top 返回频次最高的前limit个词
	Top(ctx context.Context, limit int) ([]TrendingTerm, error)
}
