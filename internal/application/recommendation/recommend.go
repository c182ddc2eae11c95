package recommendation

import (
	"context"
	"log"

	appcatalog "github.com/navyap013/bookhub/internal/application/catalog"
	"github.com/navyap013/bookhub/internal/domain/catalog"
	"github.com/navyap013/bookhub/internal/domain/ebook"
	"github.com/navyap013/bookhub/internal/domain/favourite"
	"github.com/navyap013/bookhub/internal/domain/order"
)

// 每个推荐栏目的上限
const listLimit = 10

// 热门推荐的准入门槛：平均分与评价数
const (
	popularMinRating = 4.0
	popularMinCount  = 10
)

// RecommendUseCase 个性化推荐用例
// 设计说明：
// 1. 五个栏目独立计算：购买历史、心愿单、班级教材、热门、高分
// 2. 基于内容的协同：从已购/收藏商品提取分类与作者画像，
//    再找同画像下未购买的图书
// 3. 单个栏目失败不影响整体，记日志后返回空栏目
type RecommendUseCase struct {
	bookRepo        catalog.BookRepository
	studentBookRepo catalog.StudentBookRepository
	orderRepo       order.Repository
	favouriteRepo   favourite.Repository
	studentReader   ebook.StudentReader
}

// NewRecommendUseCase 创建推荐用例
func NewRecommendUseCase(
	bookRepo catalog.BookRepository,
	studentBookRepo catalog.StudentBookRepository,
	orderRepo order.Repository,
	favouriteRepo favourite.Repository,
	studentReader ebook.StudentReader,
) *RecommendUseCase {
	return &RecommendUseCase{
		bookRepo:        bookRepo,
		studentBookRepo: studentBookRepo,
		orderRepo:       orderRepo,
		favouriteRepo:   favouriteRepo,
		studentReader:   studentReader,
	}
}

// RecommendResponse 推荐响应DTO
type RecommendResponse struct {
	BasedOnHistory  []appcatalog.BookDTO        `json:"based_on_history"`
	BasedOnWishlist []appcatalog.BookDTO        `json:"based_on_wishlist"`
	ForYourClass    []appcatalog.StudentBookDTO `json:"for_your_class"`
	Trending        []appcatalog.BookDTO        `json:"trending"`
	TopRated        []appcatalog.BookDTO        `json:"top_rated"`
}

// Execute 计算当前用户的推荐
func (uc *RecommendUseCase) Execute(ctx context.Context, userID uint) (*RecommendResponse, error) {
	resp := &RecommendResponse{
		BasedOnHistory:  []appcatalog.BookDTO{},
		BasedOnWishlist: []appcatalog.BookDTO{},
		ForYourClass:    []appcatalog.StudentBookDTO{},
		Trending:        []appcatalog.BookDTO{},
		TopRated:        []appcatalog.BookDTO{},
	}

	if books, err := uc.basedOnHistory(ctx, userID); err != nil {
		log.Printf("购买历史推荐失败: user=%d err=%v", userID, err)
	} else {
		resp.BasedOnHistory = appcatalog.ToBookDTOs(books)
	}

	if books, err := uc.basedOnWishlist(ctx, userID); err != nil {
		log.Printf("心愿单推荐失败: user=%d err=%v", userID, err)
	} else {
		resp.BasedOnWishlist = appcatalog.ToBookDTOs(books)
	}

	if sbs, err := uc.forYourClass(ctx, userID); err != nil {
		log.Printf("班级教材推荐失败: user=%d err=%v", userID, err)
	} else {
		resp.ForYourClass = appcatalog.ToStudentBookDTOs(sbs)
	}

	if books, err := uc.bookRepo.FindTrending(ctx, listLimit); err != nil {
		log.Printf("热门推荐失败: err=%v", err)
	} else {
		resp.Trending = appcatalog.ToBookDTOs(books)
	}

	if books, err := uc.bookRepo.FindPopular(ctx, popularMinRating, popularMinCount, listLimit); err != nil {
		log.Printf("高分推荐失败: err=%v", err)
	} else {
		resp.TopRated = appcatalog.ToBookDTOs(books)
	}

	return resp, nil
}

// basedOnHistory 基于购买历史：已购图书的分类/作者画像，排除已购
func (uc *RecommendUseCase) basedOnHistory(ctx context.Context, userID uint) ([]*catalog.Book, error) {
	items, err := uc.orderRepo.PaidItemsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var purchasedIDs []uint
	for _, it := range items {
		if it.BookID != 0 {
			purchasedIDs = append(purchasedIDs, it.BookID)
		}
	}
	if len(purchasedIDs) == 0 {
		return nil, nil
	}

	return uc.profileRecommend(ctx, purchasedIDs, purchasedIDs)
}

// basedOnWishlist 基于心愿单：收藏图书的画像，排除已收藏与已购买
func (uc *RecommendUseCase) basedOnWishlist(ctx context.Context, userID uint) ([]*catalog.Book, error) {
	favs, err := uc.favouriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var favIDs []uint
	for _, f := range favs {
		if f.BookID != 0 {
			favIDs = append(favIDs, f.BookID)
		}
	}
	if len(favIDs) == 0 {
		return nil, nil
	}

	// 已购买的也不再推荐
	excludes := append([]uint{}, favIDs...)
	if items, err := uc.orderRepo.PaidItemsByUser(ctx, userID); err == nil {
		for _, it := range items {
			if it.BookID != 0 {
				excludes = append(excludes, it.BookID)
			}
		}
	}

	return uc.profileRecommend(ctx, favIDs, excludes)
}

// forYourClass 学生用户按班级推荐教材
func (uc *RecommendUseCase) forYourClass(ctx context.Context, userID uint) ([]*catalog.StudentBook, error) {
	classLevel, isStudent, err := uc.studentReader.StudentClass(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isStudent || classLevel == 0 {
		return nil, nil
	}
	return uc.studentBookRepo.FindByClass(ctx, classLevel, listLimit)
}

// profileRecommend 从种子图书提取分类/作者画像后查同画像图书
func (uc *RecommendUseCase) profileRecommend(ctx context.Context, seedIDs, excludeIDs []uint) ([]*catalog.Book, error) {
	seeds, err := uc.bookRepo.FindByIDs(ctx, seedIDs)
	if err != nil {
		return nil, err
	}

	categorySet := map[string]bool{}
	authorSet := map[string]bool{}
	for _, b := range seeds {
		if b.Category != "" {
			categorySet[b.Category] = true
		}
		if b.Author != "" {
			authorSet[b.Author] = true
		}
	}
	if len(categorySet) == 0 && len(authorSet) == 0 {
		return nil, nil
	}

	params := catalog.RecommendParams{
		ExcludeIDs: excludeIDs,
		Limit:      listLimit,
	}
	for c := range categorySet {
		params.Categories = append(params.Categories, c)
	}
	for a := range authorSet {
		params.Authors = append(params.Authors, a)
	}

	return uc.bookRepo.FindByProfile(ctx, params)
}
