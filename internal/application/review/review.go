package review

import (
	"context"

	"github.com/navyap013/bookhub/internal/domain/review"
)

// ReviewUseCase 评价用例
// 设计说明：
// 1. 每个用户对同一商品最多一条评价（唯一索引+提交前检查）
// 2. 提交/修改/删除后由领域服务全量重算商品的聚合评分
// 3. 只能修改/删除自己的评价
type ReviewUseCase struct {
	reviewService review.Service
	reviewRepo    review.Repository
}

// NewReviewUseCase 创建评价用例
func NewReviewUseCase(reviewService review.Service, reviewRepo review.Repository) *ReviewUseCase {
	return &ReviewUseCase{reviewService: reviewService, reviewRepo: reviewRepo}
}

// SubmitReviewRequest 提交评价请求DTO
type SubmitReviewRequest struct {
	UserID        uint
	UserName      string
	BookID        uint
	StudentBookID uint
	Rating        int // 1-5
	Comment       string
}

// ReviewDTO 评价DTO
type ReviewDTO struct {
	ID            uint   `json:"id"`
	UserID        uint   `json:"user_id"`
	UserName      string `json:"user_name"`
	BookID        uint   `json:"book_id,omitempty"`
	StudentBookID uint   `json:"student_book_id,omitempty"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	CreatedAt     string `json:"created_at"`
}

const timeLayout = "2006-01-02 15:04:05"

func toReviewDTO(r *review.Review) ReviewDTO {
	return ReviewDTO{
		ID:            r.ID,
		UserID:        r.UserID,
		UserName:      r.UserName,
		BookID:        r.BookID,
		StudentBookID: r.StudentBookID,
		Rating:        r.Rating,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt.Format(timeLayout),
	}
}

// Submit 提交评价
func (uc *ReviewUseCase) Submit(ctx context.Context, req SubmitReviewRequest) (*ReviewDTO, error) {
	r, err := review.NewReview(req.UserID, req.UserName, req.BookID, req.StudentBookID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := uc.reviewService.Submit(ctx, r); err != nil {
		return nil, err
	}
	dto := toReviewDTO(r)
	return &dto, nil
}

// Edit 修改评价
func (uc *ReviewUseCase) Edit(ctx context.Context, reviewID, userID uint, rating int, comment string) (*ReviewDTO, error) {
	r, err := uc.reviewService.Edit(ctx, reviewID, userID, rating, comment)
	if err != nil {
		return nil, err
	}
	dto := toReviewDTO(r)
	return &dto, nil
}

// Remove 删除评价
func (uc *ReviewUseCase) Remove(ctx context.Context, reviewID, userID uint) error {
	return uc.reviewService.Remove(ctx, reviewID, userID)
}

// ListByBook 查询图书的全部评价
func (uc *ReviewUseCase) ListByBook(ctx context.Context, bookID uint) ([]ReviewDTO, error) {
	reviews, err := uc.reviewRepo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return toReviewDTOs(reviews), nil
}

// ListByStudentBook 查询教材的全部评价
func (uc *ReviewUseCase) ListByStudentBook(ctx context.Context, studentBookID uint) ([]ReviewDTO, error) {
	reviews, err := uc.reviewRepo.ListByStudentBook(ctx, studentBookID)
	if err != nil {
		return nil, err
	}
	return toReviewDTOs(reviews), nil
}

func toReviewDTOs(reviews []*review.Review) []ReviewDTO {
	list := make([]ReviewDTO, len(reviews))
	for i, r := range reviews {
		list[i] = toReviewDTO(r)
	}
	return list
}
