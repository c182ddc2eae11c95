package ebook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 内存假仓储，只覆盖服务用到的路径

type fakeEBookRepo struct {
	ebooks    map[uint]*EBook
	downloads map[uint]int
}

func newFakeEBookRepo(ebooks ...*EBook) *fakeEBookRepo {
	r := &fakeEBookRepo{ebooks: map[uint]*EBook{}, downloads: map[uint]int{}}
	for _, e := range ebooks {
		r.ebooks[e.ID] = e
	}
	return r
}

func (r *fakeEBookRepo) Create(ctx context.Context, e *EBook) error {
	r.ebooks[e.ID] = e
	return nil
}

func (r *fakeEBookRepo) FindByID(ctx context.Context, id uint) (*EBook, error) {
	e, ok := r.ebooks[id]
	if !ok {
		return nil, ErrEBookNotFound
	}
	return e, nil
}

func (r *fakeEBookRepo) FindByIDs(ctx context.Context, ids []uint) ([]*EBook, error) {
	var out []*EBook
	for _, id := range ids {
		if e, ok := r.ebooks[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEBookRepo) Update(ctx context.Context, e *EBook) error { return nil }
func (r *fakeEBookRepo) Delete(ctx context.Context, id uint) error  { return nil }

func (r *fakeEBookRepo) List(ctx context.Context, page, pageSize int) ([]*EBook, int64, error) {
	return nil, 0, nil
}

func (r *fakeEBookRepo) IncrDownloadCount(ctx context.Context, id uint) error {
	r.downloads[id]++
	return nil
}

type fakeAccessRepo struct {
	accesses map[[2]uint]*Access
}

func newFakeAccessRepo() *fakeAccessRepo {
	return &fakeAccessRepo{accesses: map[[2]uint]*Access{}}
}

func (r *fakeAccessRepo) Find(ctx context.Context, userID, ebookID uint) (*Access, error) {
	return r.accesses[[2]uint{userID, ebookID}], nil
}

func (r *fakeAccessRepo) Upsert(ctx context.Context, access *Access) error {
	key := [2]uint{access.UserID, access.EBookID}
	if existing, ok := r.accesses[key]; ok {
		existing.Touch()
		return nil
	}
	r.accesses[key] = access
	return nil
}

func (r *fakeAccessRepo) IncrDownloadCount(ctx context.Context, userID, ebookID uint) error {
	if a, ok := r.accesses[[2]uint{userID, ebookID}]; ok {
		a.DownloadCount++
		a.Touch()
	}
	return nil
}

func (r *fakeAccessRepo) ListByUser(ctx context.Context, userID uint) ([]*Access, error) {
	var out []*Access
	for key, a := range r.accesses {
		if key[0] == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakePurchaseChecker struct {
	paidBooks        map[[2]uint]bool
	paidStudentBooks map[[2]uint]bool
}

func (c *fakePurchaseChecker) HasPaidOrderWithBook(ctx context.Context, userID, bookID uint) (bool, error) {
	return c.paidBooks[[2]uint{userID, bookID}], nil
}

func (c *fakePurchaseChecker) HasPaidOrderWithStudentBook(ctx context.Context, userID, studentBookID uint) (bool, error) {
	return c.paidStudentBooks[[2]uint{userID, studentBookID}], nil
}

type fakeStudentReader struct {
	classes map[uint]int // userID -> 班级；不在表中的视为非学生
}

func (r *fakeStudentReader) StudentClass(ctx context.Context, userID uint) (int, bool, error) {
	class, ok := r.classes[userID]
	return class, ok, nil
}

func newTestService() (Service, *fakeEBookRepo, *fakeAccessRepo, *fakePurchaseChecker, *fakeStudentReader) {
	ebooks := newFakeEBookRepo(
		&EBook{ID: 1, Title: "免费电子书", UnlockMethod: UnlockFree, FileURL: "https://cdn/free.pdf"},
		&EBook{ID: 2, Title: "购买解锁", UnlockMethod: UnlockPurchase, BookID: 100, FileURL: "https://cdn/buy.pdf"},
		&EBook{ID: 3, Title: "八年级教辅", UnlockMethod: UnlockClass, ClassLevel: 8, FileURL: "https://cdn/class8.pdf"},
		&EBook{ID: 4, Title: "教材配套", UnlockMethod: UnlockPurchase, StudentBookID: 200, FileURL: "https://cdn/sb.pdf"},
	)
	accesses := newFakeAccessRepo()
	purchases := &fakePurchaseChecker{paidBooks: map[[2]uint]bool{}, paidStudentBooks: map[[2]uint]bool{}}
	students := &fakeStudentReader{classes: map[uint]int{}}
	return NewService(ebooks, accesses, purchases, students), ebooks, accesses, purchases, students
}

// TestService_Resolve 测试解锁判定优先级链
func TestService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("免费电子书对所有人开放", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		method, err := svc.Resolve(ctx, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, "free", method)
	})

	t.Run("IsFree标志优先于解锁方式", func(t *testing.T) {
		svc, ebooks, _, _, _ := newTestService()
		ebooks.ebooks[5] = &EBook{ID: 5, UnlockMethod: UnlockPurchase, BookID: 100, IsFree: true}
		method, err := svc.Resolve(ctx, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, "free", method, "IsFree=true时不走购买判定")
	})

	t.Run("购买解锁_已购买", func(t *testing.T) {
		svc, _, _, purchases, _ := newTestService()
		purchases.paidBooks[[2]uint{1, 100}] = true
		method, err := svc.Resolve(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, "purchase", method)
	})

	t.Run("购买解锁_未购买", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		_, err := svc.Resolve(ctx, 1, 2)
		assert.ErrorIs(t, err, ErrPurchaseRequired, "未购买应返回可区分的拒绝原因")
	})

	t.Run("教材载体的购买解锁", func(t *testing.T) {
		svc, _, _, purchases, _ := newTestService()
		purchases.paidStudentBooks[[2]uint{1, 200}] = true
		method, err := svc.Resolve(ctx, 1, 4)
		require.NoError(t, err)
		assert.Equal(t, "purchase", method)
	})

	t.Run("班级解锁_班级一致", func(t *testing.T) {
		svc, _, _, _, students := newTestService()
		students.classes[1] = 8
		method, err := svc.Resolve(ctx, 1, 3)
		require.NoError(t, err)
		assert.Equal(t, "class", method)
	})

	t.Run("班级解锁_班级不符", func(t *testing.T) {
		svc, _, _, _, students := newTestService()
		students.classes[1] = 7
		_, err := svc.Resolve(ctx, 1, 3)
		assert.ErrorIs(t, err, ErrClassMismatch)
	})

	t.Run("班级解锁_非学生", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		_, err := svc.Resolve(ctx, 1, 3)
		assert.ErrorIs(t, err, ErrNoAccess, "非学生访问班级解锁电子书")
	})

	t.Run("电子书不存在", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		_, err := svc.Resolve(ctx, 1, 99)
		assert.ErrorIs(t, err, ErrEBookNotFound)
	})
}

// TestService_Resolve_Sticky 测试授权粘性
func TestService_Resolve_Sticky(t *testing.T) {
	ctx := context.Background()
	svc, ebooks, _, purchases, _ := newTestService()

	// 用户先通过购买解锁
	purchases.paidBooks[[2]uint{1, 100}] = true
	_, err := svc.Unlock(ctx, 1, 2)
	require.NoError(t, err)

	// 之后电子书改为班级解锁，且用户"退掉"了购买
	ebooks.ebooks[2].UnlockMethod = UnlockClass
	ebooks.ebooks[2].ClassLevel = 9
	purchases.paidBooks[[2]uint{1, 100}] = false

	method, err := svc.Resolve(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "purchase", method, "已有授权记录应永远优先（粘性授权）")
}

// TestService_Unlock 测试解锁
func TestService_Unlock(t *testing.T) {
	ctx := context.Background()

	t.Run("解锁落授权记录并累计下载数", func(t *testing.T) {
		svc, ebooks, accesses, _, _ := newTestService()
		access, err := svc.Unlock(ctx, 1, 1)
		require.NoError(t, err)

		assert.Equal(t, "free", access.AccessMethod)
		assert.NotNil(t, accesses.accesses[[2]uint{1, 1}], "授权记录应落库")
		assert.Equal(t, 1, ebooks.downloads[1], "全局下载数+1")
	})

	t.Run("重复解锁返回原授权记录", func(t *testing.T) {
		svc, ebooks, accesses, _, _ := newTestService()
		first, err := svc.Unlock(ctx, 1, 1)
		require.NoError(t, err)

		_, err = svc.Download(ctx, 1, 1)
		require.NoError(t, err)
		firstUnlockedAt := first.UnlockedAt

		again, err := svc.Unlock(ctx, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, firstUnlockedAt, again.UnlockedAt, "重复解锁不应刷新解锁时间")
		assert.Equal(t, 1, again.DownloadCount, "重复解锁不应清零下载计数")
		assert.Equal(t, 3, ebooks.downloads[1], "全局计数：解锁+下载+重复解锁")
		assert.Same(t, accesses.accesses[[2]uint{1, 1}], again, "返回的应是落库的那条记录")
	})

	t.Run("拒绝时无副作用", func(t *testing.T) {
		svc, ebooks, accesses, _, _ := newTestService()
		_, err := svc.Unlock(ctx, 1, 2)
		assert.ErrorIs(t, err, ErrPurchaseRequired)
		assert.Nil(t, accesses.accesses[[2]uint{1, 2}])
		assert.Zero(t, ebooks.downloads[2])
	})
}

// TestService_Download 测试下载
func TestService_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("未解锁不能下载", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		_, err := svc.Download(ctx, 1, 1)
		assert.ErrorIs(t, err, ErrNotUnlocked, "下载不重新判定，必须先解锁")
	})

	t.Run("解锁后下载计数双维度累加", func(t *testing.T) {
		svc, ebooks, accesses, _, _ := newTestService()
		_, err := svc.Unlock(ctx, 1, 1)
		require.NoError(t, err)

		url, err := svc.Download(ctx, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn/free.pdf", url)
		assert.Equal(t, 1, accesses.accesses[[2]uint{1, 1}].DownloadCount, "用户维度计数")
		assert.Equal(t, 2, ebooks.downloads[1], "全局计数：解锁1次+下载1次")
	})
}

// TestService_Library 测试我的书架
func TestService_Library(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, students := newTestService()
	students.classes[1] = 8

	_, err := svc.Unlock(ctx, 1, 1)
	require.NoError(t, err)
	_, err = svc.Unlock(ctx, 1, 3)
	require.NoError(t, err)

	accesses, ebooks, err := svc.Library(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, accesses, 2)
	assert.Len(t, ebooks, 2)

	t.Run("空书架", func(t *testing.T) {
		accesses, ebooks, err := svc.Library(ctx, 2)
		require.NoError(t, err)
		assert.Empty(t, accesses)
		assert.Empty(t, ebooks)
	})
}
