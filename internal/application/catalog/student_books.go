package catalog

import (
	"context"

	"github.com/navyap013/bookhub/internal/domain/catalog"
)

// ListStudentBooksUseCase 教材列表查询用例
// 教材按班级/科目组织，与普通图书分开查询
type ListStudentBooksUseCase struct {
	studentBookRepo catalog.StudentBookRepository
}

// NewListStudentBooksUseCase 创建教材列表用例
func NewListStudentBooksUseCase(studentBookRepo catalog.StudentBookRepository) *ListStudentBooksUseCase {
	return &ListStudentBooksUseCase{studentBookRepo: studentBookRepo}
}

// ListStudentBooksRequest 教材列表请求DTO
type ListStudentBooksRequest struct {
	ClassLevel int
	Subject    string
	Keyword    string
	SortBy     string
	Page       int
	PageSize   int
}

// ListStudentBooksResponse 教材列表响应DTO
type ListStudentBooksResponse struct {
	Books    []StudentBookDTO `json:"books"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// Execute 执行教材列表查询
func (uc *ListStudentBooksUseCase) Execute(ctx context.Context, req ListStudentBooksRequest) (*ListStudentBooksResponse, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)

	books, total, err := uc.studentBookRepo.List(ctx, catalog.StudentListParams{
		ClassLevel: req.ClassLevel,
		Subject:    req.Subject,
		Keyword:    req.Keyword,
		SortBy:     req.SortBy,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		return nil, err
	}

	return &ListStudentBooksResponse{
		Books:    ToStudentBookDTOs(books),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetStudentBookUseCase 教材详情用例
type GetStudentBookUseCase struct {
	studentBookRepo catalog.StudentBookRepository
}

// NewGetStudentBookUseCase 创建教材详情用例
func NewGetStudentBookUseCase(studentBookRepo catalog.StudentBookRepository) *GetStudentBookUseCase {
	return &GetStudentBookUseCase{studentBookRepo: studentBookRepo}
}

// Execute 查询教材详情
func (uc *GetStudentBookUseCase) Execute(ctx context.Context, id uint) (*StudentBookDTO, error) {
	sb, err := uc.studentBookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToStudentBookDTO(sb)
	return &dto, nil
}
