package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/navyap013/bookhub/internal/domain/search"
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// searchRepository 搜索历史仓储实现（MySQL）
type searchRepository struct {
	db *gorm.DB
}

// NewSearchRepository 创建搜索历史仓储
func NewSearchRepository(db *gorm.DB) search.Repository {
	return &searchRepository{db: db}
}

// Create 记录一次搜索
func (r *searchRepository) Create(ctx context.Context, h *search.History) error {
	model := &SearchHistoryModel{
		UserID:      h.UserID,
		Query:       h.Query,
		ResultCount: h.ResultCount,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "记录搜索历史失败")
	}
	h.ID = model.ID
	h.CreatedAt = model.CreatedAt
	return nil
}

// Trending 最近since之后最高频的查询词
// GROUP BY聚合，Redis计频不可用时的兜底路径
func (r *searchRepository) Trending(ctx context.Context, since time.Time, limit int) ([]search.TrendingTerm, error) {
	type row struct {
		Query string
		Cnt   int64
	}
	var rows []row
	err := getDB(ctx, r.db).Model(&SearchHistoryModel{}).
		Select("query, COUNT(*) AS cnt").
		Where("created_at >= ?", since).
		Group("query").
		Order("cnt DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询热搜失败")
	}

	terms := make([]search.TrendingTerm, len(rows))
	for i, rw := range rows {
		terms[i] = search.TrendingTerm{Query: rw.Query, Count: rw.Cnt}
	}
	return terms, nil
}
