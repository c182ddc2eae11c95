package catalog

import (
	"context"

	"github.com/navyap013/bookhub/internal/domain/catalog"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明：
// 1. 支持分类/作者/语言/价格区间/评分区间/运营位过滤
// 2. 关键词匹配标题与作者
// 3. 排序支持price-low/price-high/rating/newest
type ListBooksUseCase struct {
	bookRepo catalog.BookRepository
}

// NewListBooksUseCase 创建图书列表用例
func NewListBooksUseCase(bookRepo catalog.BookRepository) *ListBooksUseCase {
	return &ListBooksUseCase{bookRepo: bookRepo}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Category  string
	Author    string
	Language  string
	MinPrice  int64
	MaxPrice  int64
	MinRating float64
	MaxRating float64
	Featured  *bool
	Trending  *bool
	Recent    *bool
	Keyword   string
	SortBy    string
	Page      int
	PageSize  int
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	Books    []BookDTO `json:"books"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)

	books, total, err := uc.bookRepo.List(ctx, catalog.ListParams{
		Category:  req.Category,
		Author:    req.Author,
		Language:  req.Language,
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		MinRating: req.MinRating,
		MaxRating: req.MaxRating,
		Featured:  req.Featured,
		Trending:  req.Trending,
		Recent:    req.Recent,
		Keyword:   req.Keyword,
		SortBy:    req.SortBy,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, err
	}

	return &ListBooksResponse{
		Books:    ToBookDTOs(books),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	bookRepo catalog.BookRepository
}

// NewGetBookUseCase 创建详情用例
func NewGetBookUseCase(bookRepo catalog.BookRepository) *GetBookUseCase {
	return &GetBookUseCase{bookRepo: bookRepo}
}

// Execute 查询图书详情（含description）
func (uc *GetBookUseCase) Execute(ctx context.Context, bookID uint) (*BookDTO, error) {
	b, err := uc.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	dto := ToBookDTO(b)
	return &dto, nil
}

// normalizePage 分页参数默认值与上限
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
