package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/navyap013/bookhub/internal/domain/review"
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// reviewRepository 评价仓储实现（MySQL）
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// Create 创建评价
func (r *reviewRepository) Create(ctx context.Context, rev *review.Review) error {
	model := &ReviewModel{
		UserID:        rev.UserID,
		UserName:      rev.UserName,
		BookID:        nullableID(rev.BookID),
		StudentBookID: nullableID(rev.StudentBookID),
		Rating:        rev.Rating,
		Comment:       rev.Comment,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return review.ErrDuplicateReview
		}
		return apperrors.Wrap(err, "创建评价失败")
	}
	rev.ID = model.ID
	rev.CreatedAt = model.CreatedAt
	rev.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找评价
func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	var model ReviewModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询评价失败")
	}
	return toReviewEntity(&model), nil
}

// Update 更新评价
func (r *reviewRepository) Update(ctx context.Context, rev *review.Review) error {
	result := getDB(ctx, r.db).Model(&ReviewModel{}).
		Where("id = ?", rev.ID).
		Updates(map[string]interface{}{"rating": rev.Rating, "comment": rev.Comment})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新评价失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

// Delete 删除评价
func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&ReviewModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除评价失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

// FindByUserAndBook 重复评价检查，不存在返回(nil, nil)
func (r *reviewRepository) FindByUserAndBook(ctx context.Context, userID, bookID uint) (*review.Review, error) {
	return r.findOne(ctx, "user_id = ? AND book_id = ?", userID, bookID)
}

// FindByUserAndStudentBook 同上，教材维度
func (r *reviewRepository) FindByUserAndStudentBook(ctx context.Context, userID, studentBookID uint) (*review.Review, error) {
	return r.findOne(ctx, "user_id = ? AND student_book_id = ?", userID, studentBookID)
}

func (r *reviewRepository) findOne(ctx context.Context, cond string, args ...interface{}) (*review.Review, error) {
	var model ReviewModel
	err := getDB(ctx, r.db).Where(cond, args...).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "查询评价失败")
	}
	return toReviewEntity(&model), nil
}

// ListByBook 图书的全部评价，创建时间倒序
func (r *reviewRepository) ListByBook(ctx context.Context, bookID uint) ([]*review.Review, error) {
	return r.list(ctx, "book_id = ?", bookID)
}

// ListByStudentBook 教材的全部评价
func (r *reviewRepository) ListByStudentBook(ctx context.Context, studentBookID uint) ([]*review.Review, error) {
	return r.list(ctx, "student_book_id = ?", studentBookID)
}

func (r *reviewRepository) list(ctx context.Context, cond string, arg interface{}) ([]*review.Review, error) {
	var models []ReviewModel
	err := getDB(ctx, r.db).Where(cond, arg).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询评价列表失败")
	}
	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	return reviews, nil
}

// toReviewEntity GORM模型 -> 领域实体
func toReviewEntity(model *ReviewModel) *review.Review {
	return &review.Review{
		ID:            model.ID,
		UserID:        model.UserID,
		UserName:      model.UserName,
		BookID:        idValue(model.BookID),
		StudentBookID: idValue(model.StudentBookID),
		Rating:        model.Rating,
		Comment:       model.Comment,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
