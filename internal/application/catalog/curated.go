package catalog

import (
	"context"

	"github.com/navyap013/bookhub/internal/domain/catalog"
)

// CuratedBooksUseCase 首页运营位查询用例
// 一次返回精选/热门/新上架三个栏目，减少首页请求次数
type CuratedBooksUseCase struct {
	bookRepo catalog.BookRepository
}

// NewCuratedBooksUseCase 创建运营位用例
func NewCuratedBooksUseCase(bookRepo catalog.BookRepository) *CuratedBooksUseCase {
	return &CuratedBooksUseCase{bookRepo: bookRepo}
}

// CuratedBooksResponse 运营位响应DTO
type CuratedBooksResponse struct {
	Featured []BookDTO `json:"featured"`
	Trending []BookDTO `json:"trending"`
	Recent   []BookDTO `json:"recent"`
}

// 每个栏目的展示条数
const curatedLimit = 10

// Execute 查询三个运营位
func (uc *CuratedBooksUseCase) Execute(ctx context.Context) (*CuratedBooksResponse, error) {
	featured, err := uc.bookRepo.FindFeatured(ctx, curatedLimit)
	if err != nil {
		return nil, err
	}
	trending, err := uc.bookRepo.FindTrending(ctx, curatedLimit)
	if err != nil {
		return nil, err
	}
	recent, err := uc.bookRepo.FindRecent(ctx, curatedLimit)
	if err != nil {
		return nil, err
	}

	return &CuratedBooksResponse{
		Featured: ToBookDTOs(featured),
		Trending: ToBookDTOs(trending),
		Recent:   ToBookDTOs(recent),
	}, nil
}
