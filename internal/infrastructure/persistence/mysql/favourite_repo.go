package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/navyap013/bookhub/internal/domain/favourite"
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// favouriteRepository 收藏仓储实现（MySQL）
type favouriteRepository struct {
	db *gorm.DB
}

// NewFavouriteRepository 创建收藏仓储
func NewFavouriteRepository(db *gorm.DB) favourite.Repository {
	return &favouriteRepository{db: db}
}

// Create 创建收藏
func (r *favouriteRepository) Create(ctx context.Context, fav *favourite.Favourite) error {
	model := &FavouriteModel{
		UserID:        fav.UserID,
		BookID:        nullableID(fav.BookID),
		StudentBookID: nullableID(fav.StudentBookID),
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return favourite.ErrDuplicateFavourite
		}
		return apperrors.Wrap(err, "创建收藏失败")
	}
	fav.ID = model.ID
	fav.CreatedAt = model.CreatedAt
	return nil
}

// FindByID 根据ID查找收藏
func (r *favouriteRepository) FindByID(ctx context.Context, id uint) (*favourite.Favourite, error) {
	var model FavouriteModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, favourite.ErrFavouriteNotFound
		}
		return nil, apperrors.Wrap(err, "查询收藏失败")
	}
	return toFavouriteEntity(&model), nil
}

// Delete 删除收藏
func (r *favouriteRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&FavouriteModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除收藏失败")
	}
	if result.RowsAffected == 0 {
		return favourite.ErrFavouriteNotFound
	}
	return nil
}

// FindByTarget 查用户对某商品的收藏记录，不存在返回(nil, nil)
func (r *favouriteRepository) FindByTarget(ctx context.Context, userID, bookID, studentBookID uint) (*favourite.Favourite, error) {
	var model FavouriteModel
	query := getDB(ctx, r.db).Where("user_id = ?", userID)
	if bookID != 0 {
		query = query.Where("book_id = ?", bookID)
	} else {
		query = query.Where("student_book_id = ?", studentBookID)
	}
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "查询收藏失败")
	}
	return toFavouriteEntity(&model), nil
}

// ListByUser 用户的全部收藏，创建时间倒序
func (r *favouriteRepository) ListByUser(ctx context.Context, userID uint) ([]*favourite.Favourite, error) {
	var models []FavouriteModel
	err := getDB(ctx, r.db).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询收藏列表失败")
	}
	favs := make([]*favourite.Favourite, len(models))
	for i := range models {
		favs[i] = toFavouriteEntity(&models[i])
	}
	return favs, nil
}

// toFavouriteEntity GORM模型 -> 领域实体
func toFavouriteEntity(model *FavouriteModel) *favourite.Favourite {
	return &favourite.Favourite{
		ID:            model.ID,
		UserID:        model.UserID,
		BookID:        idValue(model.BookID),
		StudentBookID: idValue(model.StudentBookID),
		CreatedAt:     model.CreatedAt,
	}
}
