package review

import (
	"context"
)

// Service 评价领域服务（评分聚合器）
// 设计说明：
// 1. 创建/修改/删除评价后都做全量重算：读出商品全部评价求均值与条数，
//    写回商品行。不做增量维护，换取绝对一致（评价量级不大，全量可接受）
// 2. 无评价时平均分归零（0, 0），不保留旧值
// 3. 重复评价在插入前检查，数据库唯一索引兜底并发窗口
type Service interface {
	// Submit 提交评价（同一用户同一商品只允许一条）
	Submit(ctx context.Context, review *Review) error

	// Edit 修改评价（仅本人）
	Edit(ctx context.Context, reviewID, userID uint, rating int, comment string) (*Review, error)

	// Remove 删除评价（仅本人）
	Remove(ctx context.Context, reviewID, userID uint) error
}

type service struct {
	reviews      Repository
	books        RatingWriter
	studentBooks RatingWriter
}

// NewService 创建评价服务
func NewService(reviews Repository, books, studentBooks RatingWriter) Service {
	return &service{reviews: reviews, books: books, studentBooks: studentBooks}
}

// Submit 提交评价
func (s *service) Submit(ctx context.Context, review *Review) error {
	// 重复评价检查
	var existing *Review
	var err error
	if review.BookID != 0 {
		existing, err = s.reviews.FindByUserAndBook(ctx, review.UserID, review.BookID)
	} else {
		existing, err = s.reviews.FindByUserAndStudentBook(ctx, review.UserID, review.StudentBookID)
	}
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateReview
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return err
	}

	return s.recompute(ctx, review.BookID, review.StudentBookID)
}

// Edit 修改评价
func (s *service) Edit(ctx context.Context, reviewID, userID uint, rating int, comment string) (*Review, error) {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !review.IsOwnedBy(userID) {
		return nil, ErrNotOwner
	}

	if err := review.Edit(rating, comment); err != nil {
		return nil, err
	}
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}

	if err := s.recompute(ctx, review.BookID, review.StudentBookID); err != nil {
		return nil, err
	}
	return review, nil
}

// Remove 删除评价
func (s *service) Remove(ctx context.Context, reviewID, userID uint) error {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if !review.IsOwnedBy(userID) {
		return ErrNotOwner
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}

	return s.recompute(ctx, review.BookID, review.StudentBookID)
}

// recompute 全量重算商品评分并写回
func (s *service) recompute(ctx context.Context, bookID, studentBookID uint) error {
	if bookID != 0 {
		reviews, err := s.reviews.ListByBook(ctx, bookID)
		if err != nil {
			return err
		}
		avg, count := aggregate(reviews)
		return s.books.SetRating(ctx, bookID, avg, count)
	}

	reviews, err := s.reviews.ListByStudentBook(ctx, studentBookID)
	if err != nil {
		return err
	}
	avg, count := aggregate(reviews)
	return s.studentBooks.SetRating(ctx, studentBookID, avg, count)
}

// aggregate 求均值与条数，空集返回(0, 0)
func aggregate(reviews []*Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews)), len(reviews)
}
