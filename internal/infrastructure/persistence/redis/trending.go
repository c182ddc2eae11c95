package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/navyap013/bookhub/internal/domain/search"
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// 热搜有序集合的Key，member是归一化查询词，score是搜索次数
const trendingKey = "search:trending"

// TrendingStore 热搜快路径（实现search.TrendingCache）
// ZINCRBY计频、ZREVRANGE取榜；Redis不可用时调用方退回MySQL聚合
type TrendingStore struct {
	client *redis.Client
}

// NewTrendingStore 创建热搜存储
func NewTrendingStore(client *redis.Client) search.TrendingCache {
	return &TrendingStore{client: client}
}

// Incr 查询词计频+1
func (s *TrendingStore) Incr(ctx context.Context, query string) error {
	if err := s.client.ZIncrBy(ctx, trendingKey, 1, query).Err(); err != nil {
		return apperrors.Wrap(err, "热搜计频失败")
	}
	return nil
}

// Top 频次最高的前limit个词
func (s *TrendingStore) Top(ctx context.Context, limit int) ([]search.TrendingTerm, error) {
	results, err := s.client.ZRevRangeWithScores(ctx, trendingKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "查询热搜失败")
	}

	terms := make([]search.TrendingTerm, 0, len(results))
	for _, z := range results {
		query, ok := z.Member.(string)
		if !ok {
			continue
		}
		terms = append(terms, search.TrendingTerm{Query: query, Count: int64(z.Score)})
	}
	return terms, nil
}
