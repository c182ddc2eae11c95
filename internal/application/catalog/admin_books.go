package catalog

import (
	"context"

	"github.com/navyap013/bookhub/internal/domain/catalog"
)

// AdminBookUseCase 图书管理用例（管理员）
// 设计说明：
// 1. 创建/更新/删除统一放在一个用例里，依赖相同
// 2. 字段校验由领域服务完成，这里只做实体组装
type AdminBookUseCase struct {
	catalogService catalog.Service
	bookRepo       catalog.BookRepository
}

// NewAdminBookUseCase 创建图书管理用例
func NewAdminBookUseCase(catalogService catalog.Service, bookRepo catalog.BookRepository) *AdminBookUseCase {
	return &AdminBookUseCase{catalogService: catalogService, bookRepo: bookRepo}
}

// SaveBookRequest 图书创建/更新请求DTO
type SaveBookRequest struct {
	Title         string
	Author        string
	Description   string
	Category      string
	Language      string
	Price         int64
	OriginalPrice int64
	Stock         int
	CoverURL      string
	Featured      bool
	Trending      bool
	RecentlyAdded bool
}

// Create 创建图书
func (uc *AdminBookUseCase) Create(ctx context.Context, req SaveBookRequest) (*BookDTO, error) {
	b := catalog.NewBook(req.Title, req.Author, req.Description, req.Category, req.Language,
		req.Price, req.OriginalPrice, req.Stock, req.CoverURL)
	b.Featured = req.Featured
	b.Trending = req.Trending
	if err := uc.catalogService.CreateBook(ctx, b); err != nil {
		return nil, err
	}
	dto := ToBookDTO(b)
	return &dto, nil
}

// Update 更新图书
// 评分聚合字段不在此处修改，由评价流程维护
func (uc *AdminBookUseCase) Update(ctx context.Context, id uint, req SaveBookRequest) (*BookDTO, error) {
	b, err := uc.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Title = req.Title
	b.Author = req.Author
	b.Description = req.Description
	b.Category = req.Category
	b.Language = req.Language
	b.OriginalPrice = req.OriginalPrice
	b.CoverURL = req.CoverURL
	b.Featured = req.Featured
	b.Trending = req.Trending
	b.RecentlyAdded = req.RecentlyAdded
	if err := b.UpdatePrice(req.Price); err != nil {
		return nil, err
	}
	if err := b.UpdateStock(req.Stock); err != nil {
		return nil, err
	}

	if err := uc.catalogService.UpdateBook(ctx, b); err != nil {
		return nil, err
	}
	dto := ToBookDTO(b)
	return &dto, nil
}

// Delete 删除图书
func (uc *AdminBookUseCase) Delete(ctx context.Context, id uint) error {
	return uc.catalogService.DeleteBook(ctx, id)
}

// AdminStudentBookUseCase 教材管理用例（管理员）
type AdminStudentBookUseCase struct {
	catalogService  catalog.Service
	studentBookRepo catalog.StudentBookRepository
}

// NewAdminStudentBookUseCase 创建教材管理用例
func NewAdminStudentBookUseCase(catalogService catalog.Service, studentBookRepo catalog.StudentBookRepository) *AdminStudentBookUseCase {
	return &AdminStudentBookUseCase{catalogService: catalogService, studentBookRepo: studentBookRepo}
}

// SaveStudentBookRequest 教材创建/更新请求DTO
type SaveStudentBookRequest struct {
	Title         string
	Author        string
	Description   string
	Subject       string
	ClassLevel    int
	Language      string
	Price         int64
	OriginalPrice int64
	Stock         int
	CoverURL      string
	Featured      bool
}

// Create 创建教材
func (uc *AdminStudentBookUseCase) Create(ctx context.Context, req SaveStudentBookRequest) (*StudentBookDTO, error) {
	sb := catalog.NewStudentBook(req.Title, req.Author, req.Description, req.Subject, req.ClassLevel,
		req.Language, req.Price, req.OriginalPrice, req.Stock, req.CoverURL)
	sb.Featured = req.Featured
	if err := uc.catalogService.CreateStudentBook(ctx, sb); err != nil {
		return nil, err
	}
	dto := ToStudentBookDTO(sb)
	return &dto, nil
}

// Update 更新教材
func (uc *AdminStudentBookUseCase) Update(ctx context.Context, id uint, req SaveStudentBookRequest) (*StudentBookDTO, error) {
	sb, err := uc.studentBookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sb.Title = req.Title
	sb.Author = req.Author
	sb.Description = req.Description
	sb.Subject = req.Subject
	sb.ClassLevel = req.ClassLevel
	sb.Language = req.Language
	sb.OriginalPrice = req.OriginalPrice
	sb.CoverURL = req.CoverURL
	sb.Featured = req.Featured
	if err := sb.UpdatePrice(req.Price); err != nil {
		return nil, err
	}
	if err := sb.UpdateStock(req.Stock); err != nil {
		return nil, err
	}

	if err := uc.catalogService.UpdateStudentBook(ctx, sb); err != nil {
		return nil, err
	}
	dto := ToStudentBookDTO(sb)
	return &dto, nil
}

// Delete 删除教材
func (uc *AdminStudentBookUseCase) Delete(ctx context.Context, id uint) error {
	return uc.catalogService.DeleteStudentBook(ctx, id)
}
