package search

import (
	"strings"
	"time"
)

// History 搜索历史记录
// UserID为0表示匿名搜索；记录失败不影响搜索请求本身
type History struct {
	ID          uint
	UserID      uint
	Query       string
	ResultCount int
	CreatedAt   time.Time
}

// NewHistory 创建搜索记录（查询词归一化为小写去空白）
func NewHistory(userID uint, query string, resultCount int) *History {
	return &History{
		UserID:      userID,
		Query:       Normalize(query),
		ResultCount: resultCount,
		CreatedAt:   time.Now(),
	}
}

// Normalize 查询词归一化，热搜聚合按归一化后的词统计
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// TrendingTerm 热搜词条
type TrendingTerm struct {
	Query string
	Count int64
}
