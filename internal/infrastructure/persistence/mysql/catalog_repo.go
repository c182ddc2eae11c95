package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/navyap013/bookhub/internal/domain/catalog"
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// bookRepository 图书仓储实现（MySQL）
// 设计说明：
// 1. 实现domain/catalog/repository.go的BookRepository接口
// 2. 负责领域实体与GORM模型的转换
// 3. 作者子串/关键词搜索用LIKE（utf8mb4_general_ci排序规则天然不区分大小写）
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) catalog.BookRepository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *catalog.Book) error {
	model := toBookModel(b)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*catalog.Book, error) {
	var model BookModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByIDs 批量查找
func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) ([]*catalog.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []BookModel
	if err := getDB(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntities(models), nil
}

// Update 更新图书
func (r *bookRepository) Update(ctx context.Context, b *catalog.Book) error {
	model := toBookModel(b)
	model.ID = b.ID
	model.CreatedAt = b.CreatedAt
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新图书失败")
	}
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 软删除
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return catalog.ErrBookNotFound
	}
	return nil
}

// List 分页查询图书列表
func (r *bookRepository) List(ctx context.Context, params catalog.ListParams) ([]*catalog.Book, int64, error) {
	var models []BookModel
	var total int64

	query := getDB(ctx, r.db).Model(&BookModel{})

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Author != "" {
		query = query.Where("author LIKE ?", "%"+params.Author+"%")
	}
	if params.Language != "" {
		query = query.Where("language = ?", params.Language)
	}
	if params.MinPrice > 0 {
		query = query.Where("price >= ?", params.MinPrice)
	}
	if params.MaxPrice > 0 {
		query = query.Where("price <= ?", params.MaxPrice)
	}
	if params.MinRating > 0 {
		query = query.Where("rating_avg >= ?", params.MinRating)
	}
	if params.MaxRating > 0 {
		query = query.Where("rating_avg <= ?", params.MaxRating)
	}
	if params.Featured != nil {
		query = query.Where("featured = ?", *params.Featured)
	}
	if params.Trending != nil {
		query = query.Where("trending = ?", *params.Trending)
	}
	if params.Recent != nil {
		query = query.Where("recently_added = ?", *params.Recent)
	}
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("title LIKE ? OR author LIKE ? OR description LIKE ?", keyword, keyword, keyword)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	switch params.SortBy {
	case "price-low":
		query = query.Order("price ASC")
	case "price-high":
		query = query.Order("price DESC")
	case "rating":
		query = query.Order("rating_avg DESC")
	case "newest":
		query = query.Order("created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	offset := (params.Page - 1) * params.PageSize
	if err := query.Limit(params.PageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	return toBookEntities(models), total, nil
}

// UpdateStock 原子更新库存
// UPDATE books SET stock = stock + delta WHERE id = ? AND stock + delta >= 0
func (r *bookRepository) UpdateStock(ctx context.Context, id uint, delta int) error {
	db := getDB(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Where("stock + ? >= 0", delta). // 防止库存为负
		Update("stock", gorm.Expr("stock + ?", delta))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}

	if result.RowsAffected == 0 {
		// 图书不存在或库存不足，再查一次确定原因
		var model BookModel
		if err := db.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询图书失败")
		}
		return catalog.ErrInsufficientStock
	}
	return nil
}

// SetRating 写回聚合评分（评价聚合器专用）
func (r *bookRepository) SetRating(ctx context.Context, id uint, average float64, count int) error {
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"rating_avg": average, "rating_count": count})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新评分失败")
	}
	if result.RowsAffected == 0 {
		return catalog.ErrBookNotFound
	}
	return nil
}

// FindFeatured 精选位列表
func (r *bookRepository) FindFeatured(ctx context.Context, limit int) ([]*catalog.Book, error) {
	return r.findByFlag(ctx, "featured", limit)
}

// FindTrending 热门位列表
func (r *bookRepository) FindTrending(ctx context.Context, limit int) ([]*catalog.Book, error) {
	return r.findByFlag(ctx, "trending", limit)
}

// FindRecent 新书位列表
func (r *bookRepository) FindRecent(ctx context.Context, limit int) ([]*catalog.Book, error) {
	return r.findByFlag(ctx, "recently_added", limit)
}

func (r *bookRepository) findByFlag(ctx context.Context, flag string, limit int) ([]*catalog.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).
		Where(flag+" = ?", true).
		Order("rating_avg DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询运营位列表失败")
	}
	return toBookEntities(models), nil
}

// FindPopular 高分热门
func (r *bookRepository) FindPopular(ctx context.Context, minAvg float64, minCount, limit int) ([]*catalog.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).
		Where("rating_avg >= ? AND rating_count >= ?", minAvg, minCount).
		Order("rating_avg DESC, rating_count DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询热门图书失败")
	}
	return toBookEntities(models), nil
}

// FindByProfile 按分类/作者画像推荐
func (r *bookRepository) FindByProfile(ctx context.Context, params catalog.RecommendParams) ([]*catalog.Book, error) {
	if len(params.Categories) == 0 && len(params.Authors) == 0 {
		return nil, nil
	}

	query := getDB(ctx, r.db).Model(&BookModel{})

	switch {
	case len(params.Categories) > 0 && len(params.Authors) > 0:
		query = query.Where("category IN ? OR author IN ?", params.Categories, params.Authors)
	case len(params.Categories) > 0:
		query = query.Where("category IN ?", params.Categories)
	default:
		query = query.Where("author IN ?", params.Authors)
	}

	if len(params.ExcludeIDs) > 0 {
		query = query.Where("id NOT IN ?", params.ExcludeIDs)
	}

	var models []BookModel
	if err := query.Order("rating_avg DESC").Limit(params.Limit).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询推荐图书失败")
	}
	return toBookEntities(models), nil
}

// SearchTitleAuthor 标题/作者子串搜索（搜索联想用）
func (r *bookRepository) SearchTitleAuthor(ctx context.Context, keyword string, limit int) ([]*catalog.Book, error) {
	var models []BookModel
	pattern := "%" + keyword + "%"
	err := getDB(ctx, r.db).
		Where("title LIKE ? OR author LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "搜索图书失败")
	}
	return toBookEntities(models), nil
}

// toBookModel 领域实体 -> GORM模型
func toBookModel(b *catalog.Book) *BookModel {
	return &BookModel{
		Title:         b.Title,
		Author:        b.Author,
		Description:   b.Description,
		Category:      b.Category,
		Language:      b.Language,
		Price:         b.Price,
		OriginalPrice: b.OriginalPrice,
		Discount:      b.Discount,
		Stock:         b.Stock,
		CoverURL:      b.CoverURL,
		RatingAvg:     b.Rating.Average,
		RatingCount:   b.Rating.Count,
		Featured:      b.Featured,
		Trending:      b.Trending,
		RecentlyAdded: b.RecentlyAdded,
	}
}

// toBookEntity GORM模型 -> 领域实体
func toBookEntity(model *BookModel) *catalog.Book {
	return &catalog.Book{
		ID:            model.ID,
		Title:         model.Title,
		Author:        model.Author,
		Description:   model.Description,
		Category:      model.Category,
		Language:      model.Language,
		Price:         model.Price,
		OriginalPrice: model.OriginalPrice,
		Discount:      model.Discount,
		Stock:         model.Stock,
		CoverURL:      model.CoverURL,
		Rating:        catalog.Rating{Average: model.RatingAvg, Count: model.RatingCount},
		Featured:      model.Featured,
		Trending:      model.Trending,
		RecentlyAdded: model.RecentlyAdded,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func toBookEntities(models []BookModel) []*catalog.Book {
	books := make([]*catalog.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}
