package search

import (
	"context"
	"log"
	"time"

	appcatalog "github.com/navyap013/bookhub/internal/application/catalog"
	"github.com/navyap013/bookhub/internal/domain/catalog"
	"github.com/navyap013/bookhub/internal/domain/search"
)

// 搜索联想的每类返回条数
const suggestLimit = 5

// 热搜榜统计窗口与条数
const (
	trendingWindow = 7 * 24 * time.Hour
	trendingLimit  = 10
)

// SuggestUseCase 搜索联想用例
// 同时在图书与教材的标题/作者上做前缀模糊匹配
type SuggestUseCase struct {
	bookRepo        catalog.BookRepository
	studentBookRepo catalog.StudentBookRepository
}

// NewSuggestUseCase 创建联想用例
func NewSuggestUseCase(bookRepo catalog.BookRepository, studentBookRepo catalog.StudentBookRepository) *SuggestUseCase {
	return &SuggestUseCase{bookRepo: bookRepo, studentBookRepo: studentBookRepo}
}

// SuggestResponse 联想响应DTO
type SuggestResponse struct {
	Books        []appcatalog.BookDTO        `json:"books"`
	StudentBooks []appcatalog.StudentBookDTO `json:"student_books"`
}

// Execute 执行联想查询
func (uc *SuggestUseCase) Execute(ctx context.Context, query string) (*SuggestResponse, error) {
	q := search.Normalize(query)
	resp := &SuggestResponse{
		Books:        []appcatalog.BookDTO{},
		StudentBooks: []appcatalog.StudentBookDTO{},
	}
	if q == "" {
		return resp, nil
	}

	books, err := uc.bookRepo.SearchTitleAuthor(ctx, q, suggestLimit)
	if err != nil {
		return nil, err
	}
	sbs, err := uc.studentBookRepo.SearchTitleAuthor(ctx, q, suggestLimit)
	if err != nil {
		return nil, err
	}

	resp.Books = appcatalog.ToBookDTOs(books)
	resp.StudentBooks = appcatalog.ToStudentBookDTOs(sbs)
	return resp, nil
}

// TrendingUseCase 热搜榜用例
// 设计说明：
// 1. 优先走Redis有序集合（ZINCRBY累计，ZREVRANGE取榜）
// 2. Redis不可用或为空时回退到MySQL按最近7天聚合
type TrendingUseCase struct {
	searchRepo    search.Repository
	trendingCache search.TrendingCache
}

// NewTrendingUseCase 创建热搜榜用例
func NewTrendingUseCase(searchRepo search.Repository, trendingCache search.TrendingCache) *TrendingUseCase {
	return &TrendingUseCase{searchRepo: searchRepo, trendingCache: trendingCache}
}

// TrendingResponse 热搜榜响应DTO
type TrendingResponse struct {
	Terms []search.TrendingTerm `json:"terms"`
}

// Execute 查询热搜榜
func (uc *TrendingUseCase) Execute(ctx context.Context) (*TrendingResponse, error) {
	if uc.trendingCache != nil {
		terms, err := uc.trendingCache.Top(ctx, trendingLimit)
		if err == nil && len(terms) > 0 {
			return &TrendingResponse{Terms: terms}, nil
		}
		if err != nil {
			log.Printf("热搜缓存读取失败，回退数据库: %v", err)
		}
	}

	terms, err := uc.searchRepo.Trending(ctx, time.Now().Add(-trendingWindow), trendingLimit)
	if err != nil {
		return nil, err
	}
	if terms == nil {
		terms = []search.TrendingTerm{}
	}
	return &TrendingResponse{Terms: terms}, nil
}

// LogSearchUseCase 搜索埋点用例
// 埋点是尽力而为的：任何失败都不能影响搜索主流程
type LogSearchUseCase struct {
	searchRepo    search.Repository
	trendingCache search.TrendingCache
}

// NewLogSearchUseCase 创建埋点用例
func NewLogSearchUseCase(searchRepo search.Repository, trendingCache search.TrendingCache) *LogSearchUseCase {
	return &LogSearchUseCase{searchRepo: searchRepo, trendingCache: trendingCache}
}

// Execute 记录一次搜索
// userID为0表示匿名搜索
func (uc *LogSearchUseCase) Execute(ctx context.Context, userID uint, query string, resultCount int) {
	q := search.Normalize(query)
	if q == "" {
		return
	}

	if err := uc.searchRepo.Create(ctx, search.NewHistory(userID, q, resultCount)); err != nil {
		log.Printf("搜索历史写入失败: query=%q err=%v", q, err)
	}

	if uc.trendingCache != nil {
		if err := uc.trendingCache.Incr(ctx, q); err != nil {
			log.Printf("热搜计数失败: query=%q err=%v", q, err)
		}
	}
}
