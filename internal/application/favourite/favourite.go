package favourite

import (
	"context"

	appcatalog "github.com/navyap013/bookhub/internal/application/catalog"
	"github.com/navyap013/bookhub/internal/domain/catalog"
	"github.com/navyap013/bookhub/internal/domain/favourite"
)

// FavouriteUseCase 收藏（心愿单）用例
// 设计说明：
// 1. 收藏是幂等开关：重复收藏报已存在，取消不存在的收藏报未找到
// 2. 列表返回收藏时附带商品信息，商品已下架的条目跳过
type FavouriteUseCase struct {
	favouriteRepo   favourite.Repository
	bookRepo        catalog.BookRepository
	studentBookRepo catalog.StudentBookRepository
}

// NewFavouriteUseCase 创建收藏用例
func NewFavouriteUseCase(
	favouriteRepo favourite.Repository,
	bookRepo catalog.BookRepository,
	studentBookRepo catalog.StudentBookRepository,
) *FavouriteUseCase {
	return &FavouriteUseCase{
		favouriteRepo:   favouriteRepo,
		bookRepo:        bookRepo,
		studentBookRepo: studentBookRepo,
	}
}

// FavouriteDTO 收藏条目DTO
type FavouriteDTO struct {
	ID          uint                       `json:"id"`
	Book        *appcatalog.BookDTO        `json:"book,omitempty"`
	StudentBook *appcatalog.StudentBookDTO `json:"student_book,omitempty"`
	CreatedAt   string                     `json:"created_at"`
}

const timeLayout = "2006-01-02 15:04:05"

// Add 收藏商品
func (uc *FavouriteUseCase) Add(ctx context.Context, userID, bookID, studentBookID uint) (*favourite.Favourite, error) {
	f, err := favourite.NewFavourite(userID, bookID, studentBookID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.favouriteRepo.FindByTarget(ctx, userID, bookID, studentBookID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, favourite.ErrDuplicateFavourite
	}

	if err := uc.favouriteRepo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Remove 取消收藏
func (uc *FavouriteUseCase) Remove(ctx context.Context, favouriteID, userID uint) error {
	f, err := uc.favouriteRepo.FindByID(ctx, favouriteID)
	if err != nil {
		return err
	}
	if !f.IsOwnedBy(userID) {
		return favourite.ErrNotOwner
	}
	return uc.favouriteRepo.Delete(ctx, favouriteID)
}

// Check 查询某商品是否已被用户收藏
// 未收藏返回(nil, nil)，前端据此渲染收藏按钮状态
func (uc *FavouriteUseCase) Check(ctx context.Context, userID, bookID, studentBookID uint) (*favourite.Favourite, error) {
	return uc.favouriteRepo.FindByTarget(ctx, userID, bookID, studentBookID)
}

// List 查询我的收藏（附商品信息）
func (uc *FavouriteUseCase) List(ctx context.Context, userID uint) ([]FavouriteDTO, error) {
	favs, err := uc.favouriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 批量取商品，避免N+1查询
	var bookIDs, sbIDs []uint
	for _, f := range favs {
		if f.BookID != 0 {
			bookIDs = append(bookIDs, f.BookID)
		} else {
			sbIDs = append(sbIDs, f.StudentBookID)
		}
	}

	bookByID := map[uint]*catalog.Book{}
	if len(bookIDs) > 0 {
		books, err := uc.bookRepo.FindByIDs(ctx, bookIDs)
		if err != nil {
			return nil, err
		}
		for _, b := range books {
			bookByID[b.ID] = b
		}
	}
	sbByID := map[uint]*catalog.StudentBook{}
	if len(sbIDs) > 0 {
		sbs, err := uc.studentBookRepo.FindByIDs(ctx, sbIDs)
		if err != nil {
			return nil, err
		}
		for _, sb := range sbs {
			sbByID[sb.ID] = sb
		}
	}

	list := make([]FavouriteDTO, 0, len(favs))
	for _, f := range favs {
		dto := FavouriteDTO{ID: f.ID, CreatedAt: f.CreatedAt.Format(timeLayout)}
		switch {
		case f.BookID != 0:
			b, ok := bookByID[f.BookID]
			if !ok {
				continue // 商品已删除
			}
			bd := appcatalog.ToBookDTO(b)
			dto.Book = &bd
		default:
			sb, ok := sbByID[f.StudentBookID]
			if !ok {
				continue
			}
			sd := appcatalog.ToStudentBookDTO(sb)
			dto.StudentBook = &sd
		}
		list = append(list, dto)
	}
	return list, nil
}
