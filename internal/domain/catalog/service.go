package catalog

import (
	"context"

	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// Service 目录领域服务（管理端CRUD的业务规则入口）
// 列表/详情等只读操作不经过Service，应用层直接调用Repository
type Service interface {
	CreateBook(ctx context.Context, book *Book) error
	UpdateBook(ctx context.Context, book *Book) error
	DeleteBook(ctx context.Context, id uint) error

	CreateStudentBook(ctx context.Context, sb *StudentBook) error
	UpdateStudentBook(ctx context.Context, sb *StudentBook) error
	DeleteStudentBook(ctx context.Context, id uint) error
}

type service struct {
	books        BookRepository
	studentBooks StudentBookRepository
}

// NewService 创建目录服务
func NewService(books BookRepository, studentBooks StudentBookRepository) Service {
	return &service{books: books, studentBooks: studentBooks}
}

// CreateBook 创建图书
// 业务规则：标题/作者必填，价格>0，库存>=0
func (s *service) CreateBook(ctx context.Context, book *Book) error {
	if err := validateBookFields(book.Title, book.Author, book.Price, book.Stock); err != nil {
		return err
	}
	return s.books.Create(ctx, book)
}

// UpdateBook 更新图书
func (s *service) UpdateBook(ctx context.Context, book *Book) error {
	if err := validateBookFields(book.Title, book.Author, book.Price, book.Stock); err != nil {
		return err
	}
	return s.books.Update(ctx, book)
}

// DeleteBook 删除图书（软删除，评价与收藏记录保留）
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	if _, err := s.books.FindByID(ctx, id); err != nil {
		return err
	}
	return s.books.Delete(ctx, id)
}

// CreateStudentBook 创建教材
// 业务规则：在图书规则之上要求班级1-12、科目必填
func (s *service) CreateStudentBook(ctx context.Context, sb *StudentBook) error {
	if err := validateBookFields(sb.Title, sb.Author, sb.Price, sb.Stock); err != nil {
		return err
	}
	if sb.ClassLevel < 1 || sb.ClassLevel > 12 {
		return ErrInvalidClassLevel
	}
	if sb.Subject == "" {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "科目不能为空")
	}
	return s.studentBooks.Create(ctx, sb)
}

// UpdateStudentBook 更新教材
func (s *service) UpdateStudentBook(ctx context.Context, sb *StudentBook) error {
	if err := validateBookFields(sb.Title, sb.Author, sb.Price, sb.Stock); err != nil {
		return err
	}
	if sb.ClassLevel < 1 || sb.ClassLevel > 12 {
		return ErrInvalidClassLevel
	}
	return s.studentBooks.Update(ctx, sb)
}

// DeleteStudentBook 删除教材
func (s *service) DeleteStudentBook(ctx context.Context, id uint) error {
	if _, err := s.studentBooks.FindByID(ctx, id); err != nil {
		return err
	}
	return s.studentBooks.Delete(ctx, id)
}

func validateBookFields(title, author string, price int64, stock int) error {
	if title == "" || author == "" {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "标题和作者不能为空")
	}
	if price <= 0 {
		return ErrInvalidPrice
	}
	if stock < 0 {
		return ErrInvalidStock
	}
	return nil
}
