package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/navyap013/bookhub/internal/domain/catalog"
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// studentBookRepository 学生教材仓储实现（MySQL）
type studentBookRepository struct {
	db *gorm.DB
}

// NewStudentBookRepository 创建教材仓储
func NewStudentBookRepository(db *gorm.DB) catalog.StudentBookRepository {
	return &studentBookRepository{db: db}
}

// Create 创建教材
func (r *studentBookRepository) Create(ctx context.Context, sb *catalog.StudentBook) error {
	model := toStudentBookModel(sb)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建教材失败")
	}
	sb.ID = model.ID
	sb.CreatedAt = model.CreatedAt
	sb.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找教材
func (r *studentBookRepository) FindByID(ctx context.Context, id uint) (*catalog.StudentBook, error) {
	var model StudentBookModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrStudentBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询教材失败")
	}
	return toStudentBookEntity(&model), nil
}

// FindByIDs 批量查找
func (r *studentBookRepository) FindByIDs(ctx context.Context, ids []uint) ([]*catalog.StudentBook, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []StudentBookModel
	if err := getDB(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询教材失败")
	}
	return toStudentBookEntities(models), nil
}

// Update 更新教材
func (r *studentBookRepository) Update(ctx context.Context, sb *catalog.StudentBook) error {
	model := toStudentBookModel(sb)
	model.ID = sb.ID
	model.CreatedAt = sb.CreatedAt
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新教材失败")
	}
	sb.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 软删除
func (r *studentBookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&StudentBookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除教材失败")
	}
	if result.RowsAffected == 0 {
		return catalog.ErrStudentBookNotFound
	}
	return nil
}

// List 分页查询教材列表
func (r *studentBookRepository) List(ctx context.Context, params catalog.StudentListParams) ([]*catalog.StudentBook, int64, error) {
	var models []StudentBookModel
	var total int64

	query := getDB(ctx, r.db).Model(&StudentBookModel{})

	if params.ClassLevel > 0 {
		query = query.Where("class_level = ?", params.ClassLevel)
	}
	if params.Subject != "" {
		query = query.Where("subject = ?", params.Subject)
	}
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("title LIKE ? OR author LIKE ?", keyword, keyword)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询教材总数失败")
	}

	switch params.SortBy {
	case "price-low":
		query = query.Order("price ASC")
	case "price-high":
		query = query.Order("price DESC")
	case "rating":
		query = query.Order("rating_avg DESC")
	default:
		query = query.Order("class_level ASC, subject ASC")
	}

	offset := (params.Page - 1) * params.PageSize
	if err := query.Limit(params.PageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询教材列表失败")
	}

	return toStudentBookEntities(models), total, nil
}

// UpdateStock 原子更新库存（与图书同一保护策略）
func (r *studentBookRepository) UpdateStock(ctx context.Context, id uint, delta int) error {
	db := getDB(ctx, r.db)
	result := db.Model(&StudentBookModel{}).
		Where("id = ?", id).
		Where("stock + ? >= 0", delta).
		Update("stock", gorm.Expr("stock + ?", delta))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}
	if result.RowsAffected == 0 {
		var model StudentBookModel
		if err := db.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrStudentBookNotFound
			}
			return apperrors.Wrap(err, "查询教材失败")
		}
		return catalog.ErrInsufficientStock
	}
	return nil
}

// SetRating 写回聚合评分
func (r *studentBookRepository) SetRating(ctx context.Context, id uint, average float64, count int) error {
	result := getDB(ctx, r.db).Model(&StudentBookModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"rating_avg": average, "rating_count": count})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新评分失败")
	}
	if result.RowsAffected == 0 {
		return catalog.ErrStudentBookNotFound
	}
	return nil
}

// FindByClass 某班级教材，运营位优先、评分倒序
func (r *studentBookRepository) FindByClass(ctx context.Context, classLevel, limit int) ([]*catalog.StudentBook, error) {
	var models []StudentBookModel
	err := getDB(ctx, r.db).
		Where("class_level = ?", classLevel).
		Order("featured DESC, rating_avg DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询班级教材失败")
	}
	return toStudentBookEntities(models), nil
}

// SearchTitleAuthor 标题/作者子串搜索
func (r *studentBookRepository) SearchTitleAuthor(ctx context.Context, keyword string, limit int) ([]*catalog.StudentBook, error) {
	var models []StudentBookModel
	pattern := "%" + keyword + "%"
	err := getDB(ctx, r.db).
		Where("title LIKE ? OR author LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "搜索教材失败")
	}
	return toStudentBookEntities(models), nil
}

// toStudentBookModel 领域实体 -> GORM模型
func toStudentBookModel(sb *catalog.StudentBook) *StudentBookModel {
	return &StudentBookModel{
		Title:         sb.Title,
		Author:        sb.Author,
		Description:   sb.Description,
		Subject:       sb.Subject,
		ClassLevel:    sb.ClassLevel,
		Language:      sb.Language,
		Price:         sb.Price,
		OriginalPrice: sb.OriginalPrice,
		Discount:      sb.Discount,
		Stock:         sb.Stock,
		CoverURL:      sb.CoverURL,
		RatingAvg:     sb.Rating.Average,
		RatingCount:   sb.Rating.Count,
		Featured:      sb.Featured,
	}
}

// toStudentBookEntity GORM模型 -> 领域实体
func toStudentBookEntity(model *StudentBookModel) *catalog.StudentBook {
	return &catalog.StudentBook{
		ID:            model.ID,
		Title:         model.Title,
		Author:        model.Author,
		Description:   model.Description,
		Subject:       model.Subject,
		ClassLevel:    model.ClassLevel,
		Language:      model.Language,
		Price:         model.Price,
		OriginalPrice: model.OriginalPrice,
		Discount:      model.Discount,
		Stock:         model.Stock,
		CoverURL:      model.CoverURL,
		Rating:        catalog.Rating{Average: model.RatingAvg, Count: model.RatingCount},
		Featured:      model.Featured,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func toStudentBookEntities(models []StudentBookModel) []*catalog.StudentBook {
	sbs := make([]*catalog.StudentBook, len(models))
	for i := range models {
		sbs[i] = toStudentBookEntity(&models[i])
	}
	return sbs
}
