package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/navyap013/bookhub/internal/domain/ebook"
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// ebookRepository 电子书仓储实现（MySQL）
type ebookRepository struct {
	db *gorm.DB
}

// NewEBookRepository 创建电子书仓储
func NewEBookRepository(db *gorm.DB) ebook.Repository {
	return &ebookRepository{db: db}
}

// Create 创建电子书
func (r *ebookRepository) Create(ctx context.Context, e *ebook.EBook) error {
	model := toEBookModel(e)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建电子书失败")
	}
	e.ID = model.ID
	e.CreatedAt = model.CreatedAt
	e.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找电子书
func (r *ebookRepository) FindByID(ctx context.Context, id uint) (*ebook.EBook, error) {
	var model EBookModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ebook.ErrEBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询电子书失败")
	}
	return toEBookEntity(&model), nil
}

// FindByIDs 批量查找
func (r *ebookRepository) FindByIDs(ctx context.Context, ids []uint) ([]*ebook.EBook, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []EBookModel
	if err := getDB(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询电子书失败")
	}
	ebooks := make([]*ebook.EBook, len(models))
	for i := range models {
		ebooks[i] = toEBookEntity(&models[i])
	}
	return ebooks, nil
}

// Update 更新电子书
func (r *ebookRepository) Update(ctx context.Context, e *ebook.EBook) error {
	model := toEBookModel(e)
	model.ID = e.ID
	model.CreatedAt = e.CreatedAt
	model.DownloadCount = e.DownloadCount
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新电子书失败")
	}
	e.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除电子书并级联删除其授权记录
func (r *ebookRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)
	result := db.Delete(&EBookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除电子书失败")
	}
	if result.RowsAffected == 0 {
		return ebook.ErrEBookNotFound
	}
	if err := db.Where("e_book_id = ?", id).Delete(&EBookAccessModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除授权记录失败")
	}
	return nil
}

// List 电子书列表
func (r *ebookRepository) List(ctx context.Context, page, pageSize int) ([]*ebook.EBook, int64, error) {
	var models []EBookModel
	var total int64

	query := getDB(ctx, r.db).Model(&EBookModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询电子书总数失败")
	}

	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询电子书列表失败")
	}

	ebooks := make([]*ebook.EBook, len(models))
	for i := range models {
		ebooks[i] = toEBookEntity(&models[i])
	}
	return ebooks, total, nil
}

// IncrDownloadCount 全局下载计数+1
func (r *ebookRepository) IncrDownloadCount(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Model(&EBookModel{}).
		Where("id = ?", id).
		Update("download_count", gorm.Expr("download_count + 1"))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新下载计数失败")
	}
	if result.RowsAffected == 0 {
		return ebook.ErrEBookNotFound
	}
	return nil
}

// toEBookModel 领域实体 -> GORM模型
func toEBookModel(e *ebook.EBook) *EBookModel {
	return &EBookModel{
		Title:         e.Title,
		Author:        e.Author,
		Description:   e.Description,
		BookID:        e.BookID,
		StudentBookID: e.StudentBookID,
		ClassLevel:    e.ClassLevel,
		FileURL:       e.FileURL,
		FileSize:      e.FileSize,
		Format:        e.Format,
		UnlockMethod:  string(e.UnlockMethod),
		IsFree:        e.IsFree,
		Price:         e.Price,
		CoverURL:      e.CoverURL,
	}
}

// toEBookEntity GORM模型 -> 领域实体
func toEBookEntity(model *EBookModel) *ebook.EBook {
	return &ebook.EBook{
		ID:            model.ID,
		Title:         model.Title,
		Author:        model.Author,
		Description:   model.Description,
		BookID:        model.BookID,
		StudentBookID: model.StudentBookID,
		ClassLevel:    model.ClassLevel,
		FileURL:       model.FileURL,
		FileSize:      model.FileSize,
		Format:        model.Format,
		UnlockMethod:  ebook.UnlockMethod(model.UnlockMethod),
		IsFree:        model.IsFree,
		Price:         model.Price,
		CoverURL:      model.CoverURL,
		DownloadCount: model.DownloadCount,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// accessRepository 授权记录仓储实现（MySQL）
type accessRepository struct {
	db *gorm.DB
}

// NewAccessRepository 创建授权记录仓储
func NewAccessRepository(db *gorm.DB) ebook.AccessRepository {
	return &accessRepository{db: db}
}

// Find 查找授权记录，不存在返回(nil, nil)
func (r *accessRepository) Find(ctx context.Context, userID, ebookID uint) (*ebook.Access, error) {
	var model EBookAccessModel
	err := getDB(ctx, r.db).
		Where("user_id = ? AND e_book_id = ?", userID, ebookID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "查询授权记录失败")
	}
	return toAccessEntity(&model), nil
}

// Upsert 插入或刷新授权记录
// 粘性授权：冲突时只刷新last_accessed，不改unlocked_at与access_method
func (r *accessRepository) Upsert(ctx context.Context, access *ebook.Access) error {
	model := &EBookAccessModel{
		UserID:       access.UserID,
		EBookID:      access.EBookID,
		AccessMethod: access.AccessMethod,
		UnlockedAt:   access.UnlockedAt,
		LastAccessed: access.LastAccessed,
	}
	err := getDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "e_book_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"last_accessed": time.Now()}),
	}).Create(model).Error
	if err != nil {
		return apperrors.Wrap(err, "写入授权记录失败")
	}
	access.ID = model.ID
	return nil
}

// IncrDownloadCount 用户维度下载计数+1并刷新last_accessed
func (r *accessRepository) IncrDownloadCount(ctx context.Context, userID, ebookID uint) error {
	result := getDB(ctx, r.db).Model(&EBookAccessModel{}).
		Where("user_id = ? AND e_book_id = ?", userID, ebookID).
		Updates(map[string]interface{}{
			"download_count": gorm.Expr("download_count + 1"),
			"last_accessed":  time.Now(),
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新下载计数失败")
	}
	if result.RowsAffected == 0 {
		return ebook.ErrNotUnlocked
	}
	return nil
}

// ListByUser 用户已解锁的电子书，解锁时间倒序
func (r *accessRepository) ListByUser(ctx context.Context, userID uint) ([]*ebook.Access, error) {
	var models []EBookAccessModel
	err := getDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询书架失败")
	}
	accesses := make([]*ebook.Access, len(models))
	for i := range models {
		accesses[i] = toAccessEntity(&models[i])
	}
	return accesses, nil
}

// toAccessEntity GORM模型 -> 领域实体
func toAccessEntity(model *EBookAccessModel) *ebook.Access {
	return &ebook.Access{
		ID:            model.ID,
		UserID:        model.UserID,
		EBookID:       model.EBookID,
		AccessMethod:  model.AccessMethod,
		UnlockedAt:    model.UnlockedAt,
		LastAccessed:  model.LastAccessed,
		DownloadCount: model.DownloadCount,
	}
}
