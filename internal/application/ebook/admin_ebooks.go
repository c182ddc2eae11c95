package ebook

import (
	"context"
	"time"

	"github.com/navyap013/bookhub/internal/domain/ebook"
)

const timeLayout = "2006-01-02 15:04:05"

// EBookDTO 电子书展示DTO
// FileURL不在列表/详情中返回，只能通过下载接口获取
type EBookDTO struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description,omitempty"`
	BookID        uint   `json:"book_id,omitempty"`
	StudentBookID uint   `json:"student_book_id,omitempty"`
	ClassLevel    int    `json:"class_level,omitempty"`
	FileSize      int64  `json:"file_size"`
	Format        string `json:"format"`
	UnlockMethod  string `json:"unlock_method"`
	IsFree        bool   `json:"is_free"`
	Price         int64  `json:"price"`
	CoverURL      string `json:"cover_url"`
	DownloadCount int    `json:"download_count"`
	CreatedAt     string `json:"created_at"`
}

// ToEBookDTO 实体转DTO
func ToEBookDTO(e *ebook.EBook) EBookDTO {
	return EBookDTO{
		ID:            e.ID,
		Title:         e.Title,
		Author:        e.Author,
		Description:   e.Description,
		BookID:        e.BookID,
		StudentBookID: e.StudentBookID,
		ClassLevel:    e.ClassLevel,
		FileSize:      e.FileSize,
		Format:        e.Format,
		UnlockMethod:  string(e.UnlockMethod),
		IsFree:        e.IsFree,
		Price:         e.Price,
		CoverURL:      e.CoverURL,
		DownloadCount: e.DownloadCount,
		CreatedAt:     e.CreatedAt.Format(timeLayout),
	}
}

// ListEBooksUseCase 电子书列表用例
type ListEBooksUseCase struct {
	ebookRepo ebook.Repository
}

// NewListEBooksUseCase 创建电子书列表用例
func NewListEBooksUseCase(ebookRepo ebook.Repository) *ListEBooksUseCase {
	return &ListEBooksUseCase{ebookRepo: ebookRepo}
}

// ListEBooksResponse 电子书列表响应DTO
type ListEBooksResponse struct {
	EBooks   []EBookDTO `json:"ebooks"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// Execute 查询电子书列表
func (uc *ListEBooksUseCase) Execute(ctx context.Context, page, pageSize int) (*ListEBooksResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	ebooks, total, err := uc.ebookRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]EBookDTO, len(ebooks))
	for i, e := range ebooks {
		list[i] = ToEBookDTO(e)
	}
	return &ListEBooksResponse{EBooks: list, Total: total, Page: page, PageSize: pageSize}, nil
}

// AdminEBookUseCase 电子书管理用例（管理员）
type AdminEBookUseCase struct {
	ebookRepo ebook.Repository
}

// NewAdminEBookUseCase 创建电子书管理用例
func NewAdminEBookUseCase(ebookRepo ebook.Repository) *AdminEBookUseCase {
	return &AdminEBookUseCase{ebookRepo: ebookRepo}
}

// SaveEBookRequest 电子书创建/更新请求DTO
type SaveEBookRequest struct {
	Title         string
	Author        string
	Description   string
	BookID        uint
	StudentBookID uint
	ClassLevel    int
	FileURL       string
	FileSize      int64
	Format        string
	UnlockMethod  string
	IsFree        bool
	Price         int64
	CoverURL      string
}

// Create 创建电子书
func (uc *AdminEBookUseCase) Create(ctx context.Context, req SaveEBookRequest) (*EBookDTO, error) {
	method := ebook.UnlockMethod(req.UnlockMethod)
	if !method.Valid() {
		return nil, ebook.ErrInvalidUnlockMethod
	}

	now := time.Now()
	e := &ebook.EBook{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		BookID:        req.BookID,
		StudentBookID: req.StudentBookID,
		ClassLevel:    req.ClassLevel,
		FileURL:       req.FileURL,
		FileSize:      req.FileSize,
		Format:        req.Format,
		UnlockMethod:  method,
		IsFree:        req.IsFree,
		Price:         req.Price,
		CoverURL:      req.CoverURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.ebookRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	dto := ToEBookDTO(e)
	return &dto, nil
}

// Update 更新电子书
// 解锁方式变更只影响尚未解锁的用户（已有授权是粘性的）
func (uc *AdminEBookUseCase) Update(ctx context.Context, id uint, req SaveEBookRequest) (*EBookDTO, error) {
	method := ebook.UnlockMethod(req.UnlockMethod)
	if !method.Valid() {
		return nil, ebook.ErrInvalidUnlockMethod
	}

	e, err := uc.ebookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e.Title = req.Title
	e.Author = req.Author
	e.Description = req.Description
	e.BookID = req.BookID
	e.StudentBookID = req.StudentBookID
	e.ClassLevel = req.ClassLevel
	e.FileURL = req.FileURL
	e.FileSize = req.FileSize
	e.Format = req.Format
	e.UnlockMethod = method
	e.IsFree = req.IsFree
	e.Price = req.Price
	e.CoverURL = req.CoverURL
	e.UpdatedAt = time.Now()

	if err := uc.ebookRepo.Update(ctx, e); err != nil {
		return nil, err
	}
	dto := ToEBookDTO(e)
	return &dto, nil
}

// Delete 删除电子书（级联删除授权记录）
func (uc *AdminEBookUseCase) Delete(ctx context.Context, id uint) error {
	return uc.ebookRepo.Delete(ctx, id)
}
