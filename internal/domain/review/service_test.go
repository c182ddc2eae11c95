package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviewRepo struct {
	reviews map[uint]*Review
	nextID  uint
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[uint]*Review{}, nextID: 1}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *Review) error {
	review.ID = r.nextID
	r.nextID++
	r.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) FindByID(ctx context.Context, id uint) (*Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, review *Review) error { return nil }

func (r *fakeReviewRepo) Delete(ctx context.Context, id uint) error {
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) FindByUserAndBook(ctx context.Context, userID, bookID uint) (*Review, error) {
	for _, review := range r.reviews {
		if review.UserID == userID && review.BookID == bookID {
			return review, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) FindByUserAndStudentBook(ctx context.Context, userID, studentBookID uint) (*Review, error) {
	for _, review := range r.reviews {
		if review.UserID == userID && review.StudentBookID == studentBookID {
			return review, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) ListByBook(ctx context.Context, bookID uint) ([]*Review, error) {
	var out []*Review
	for _, review := range r.reviews {
		if review.BookID == bookID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) ListByStudentBook(ctx context.Context, studentBookID uint) ([]*Review, error) {
	var out []*Review
	for _, review := range r.reviews {
		if review.StudentBookID == studentBookID {
			out = append(out, review)
		}
	}
	return out, nil
}

// fakeRatingWriter 记录最近一次写回的评分
type fakeRatingWriter struct {
	average map[uint]float64
	count   map[uint]int
}

func newFakeRatingWriter() *fakeRatingWriter {
	return &fakeRatingWriter{average: map[uint]float64{}, count: map[uint]int{}}
}

func (w *fakeRatingWriter) SetRating(ctx context.Context, id uint, average float64, count int) error {
	w.average[id] = average
	w.count[id] = count
	return nil
}

func mustReview(t *testing.T, userID uint, bookID, studentBookID uint, rating int) *Review {
	t.Helper()
	r, err := NewReview(userID, "用户", bookID, studentBookID, rating, "不错")
	require.NoError(t, err)
	return r
}

// TestService_Submit 测试评价提交与评分聚合
func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("多条评价求均值", func(t *testing.T) {
		repo := newFakeReviewRepo()
		books := newFakeRatingWriter()
		svc := NewService(repo, books, newFakeRatingWriter())

		for _, rating := range []int{5, 3, 4} {
			userID := uint(rating) // 不同用户
			require.NoError(t, svc.Submit(ctx, mustReview(t, userID, 10, 0, rating)))
		}

		assert.InDelta(t, 4.0, books.average[10], 1e-9, "[5,3,4]的均值为4.0")
		assert.Equal(t, 3, books.count[10])
	})

	t.Run("重复评价被拒绝", func(t *testing.T) {
		repo := newFakeReviewRepo()
		svc := NewService(repo, newFakeRatingWriter(), newFakeRatingWriter())

		require.NoError(t, svc.Submit(ctx, mustReview(t, 1, 10, 0, 5)))
		err := svc.Submit(ctx, mustReview(t, 1, 10, 0, 3))
		assert.ErrorIs(t, err, ErrDuplicateReview)
	})

	t.Run("教材评价写回教材侧", func(t *testing.T) {
		repo := newFakeReviewRepo()
		books := newFakeRatingWriter()
		studentBooks := newFakeRatingWriter()
		svc := NewService(repo, books, studentBooks)

		require.NoError(t, svc.Submit(ctx, mustReview(t, 1, 0, 20, 4)))
		assert.Equal(t, 1, studentBooks.count[20])
		assert.Empty(t, books.count, "图书侧不应被触碰")
	})
}

// TestService_Edit 测试评价修改
func TestService_Edit(t *testing.T) {
	ctx := context.Background()
	repo := newFakeReviewRepo()
	books := newFakeRatingWriter()
	svc := NewService(repo, books, newFakeRatingWriter())

	require.NoError(t, svc.Submit(ctx, mustReview(t, 1, 10, 0, 2)))

	t.Run("修改后重算", func(t *testing.T) {
		updated, err := svc.Edit(ctx, 1, 1, 5, "改观了")
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Rating)
		assert.InDelta(t, 5.0, books.average[10], 1e-9)
	})

	t.Run("非本人不能修改", func(t *testing.T) {
		_, err := svc.Edit(ctx, 1, 99, 1, "")
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("评分越界", func(t *testing.T) {
		_, err := svc.Edit(ctx, 1, 1, 6, "")
		assert.ErrorIs(t, err, ErrInvalidRating)
	})
}

// TestService_Remove 测试评价删除
func TestService_Remove(t *testing.T) {
	ctx := context.Background()
	repo := newFakeReviewRepo()
	books := newFakeRatingWriter()
	svc := NewService(repo, books, newFakeRatingWriter())

	require.NoError(t, svc.Submit(ctx, mustReview(t, 1, 10, 0, 5)))
	require.NoError(t, svc.Submit(ctx, mustReview(t, 2, 10, 0, 3)))

	t.Run("删除后重算", func(t *testing.T) {
		require.NoError(t, svc.Remove(ctx, 2, 2))
		assert.InDelta(t, 5.0, books.average[10], 1e-9)
		assert.Equal(t, 1, books.count[10])
	})

	t.Run("最后一条删除后归零", func(t *testing.T) {
		require.NoError(t, svc.Remove(ctx, 1, 1))
		assert.Zero(t, books.average[10], "无评价时平均分归零而非保留旧值")
		assert.Zero(t, books.count[10])
	})

	t.Run("非本人不能删除", func(t *testing.T) {
		require.NoError(t, svc.Submit(ctx, mustReview(t, 1, 10, 0, 4)))
		err := svc.Remove(ctx, 3, 99)
		assert.ErrorIs(t, err, ErrNotOwner)
	})
}

// TestNewReview 测试评价工厂校验
func TestNewReview(t *testing.T) {
	_, err := NewReview(1, "用户", 10, 0, 0, "")
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = NewReview(1, "用户", 0, 0, 3, "")
	assert.ErrorIs(t, err, ErrInvalidTarget)
}
