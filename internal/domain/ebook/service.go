package ebook

import (
	"context"
)

// Service 电子书授权领域服务
// 设计说明：
// 1. Resolve是唯一的解锁判定入口，按固定优先级链判定
// 2. 授权具有粘性：已有Access记录永远优先，之后电子书解锁方式变更不影响老用户
// 3. 三种拒绝原因可区分（ErrPurchaseRequired / ErrClassMismatch / ErrNoAccess）
type Service interface {
	// Resolve 判定用户对电子书的访问权
	// 返回授权方式（purchase|class|free）；拒绝时返回具体的拒绝错误
	Resolve(ctx context.Context, userID, ebookID uint) (string, error)

	// Unlock 解锁电子书：Resolve通过后落授权记录并累计全局下载数
	// 已有授权时只刷新LastAccessed；拒绝时无任何副作用
	Unlock(ctx context.Context, userID, ebookID uint) (*Access, error)

	// Download 下载电子书：要求已有授权记录（不重新判定），
	// 两个维度的下载计数+1，返回文件地址
	Download(ctx context.Context, userID, ebookID uint) (string, error)

	// Library 用户已解锁的电子书列表
	Library(ctx context.Context, userID uint) ([]*Access, []*EBook, error)
}

type service struct {
	ebooks    Repository
	accesses  AccessRepository
	purchases PurchaseChecker
	students  StudentReader
}

// NewService 创建电子书授权服务
func NewService(ebooks Repository, accesses AccessRepository, purchases PurchaseChecker, students StudentReader) Service {
	return &service{
		ebooks:    ebooks,
		accesses:  accesses,
		purchases: purchases,
		students:  students,
	}
}

// Resolve 解锁判定
// 优先级链（命中即返回，不再向下判定）：
// 1. 已有授权记录 -> 返回记录上的AccessMethod（粘性授权）
// 2. 免费 -> free
// 3. 班级解锁 -> 学生且班级一致返回class；学生班级不符ErrClassMismatch；非学生ErrNoAccess
// 4. 购买解锁 -> 已支付订单含关联载体返回purchase；否则ErrPurchaseRequired
// 5. 其余 -> ErrNoAccess
func (s *service) Resolve(ctx context.Context, userID, ebookID uint) (string, error) {
	e, err := s.ebooks.FindByID(ctx, ebookID)
	if err != nil {
		return "", err
	}

	// 1. 粘性授权
	access, err := s.accesses.Find(ctx, userID, ebookID)
	if err != nil {
		return "", err
	}
	if access != nil {
		return access.AccessMethod, nil
	}

	// 2. 免费
	if e.FreeForAll() {
		return string(UnlockFree), nil
	}

	// 3. 班级解锁
	if e.UnlockMethod == UnlockClass {
		classLevel, isStudent, err := s.students.StudentClass(ctx, userID)
		if err != nil {
			return "", err
		}
		if !isStudent {
			return "", ErrNoAccess
		}
		if classLevel != e.ClassLevel {
			return "", ErrClassMismatch
		}
		return string(UnlockClass), nil
	}

	// 4. 购买解锁
	if e.UnlockMethod == UnlockPurchase {
		purchased, err := s.hasPurchased(ctx, userID, e)
		if err != nil {
			return "", err
		}
		if purchased {
			return string(UnlockPurchase), nil
		}
		return "", ErrPurchaseRequired
	}

	return "", ErrNoAccess
}

// hasPurchased 已支付订单中是否包含电子书的关联载体
func (s *service) hasPurchased(ctx context.Context, userID uint, e *EBook) (bool, error) {
	if e.BookID != 0 {
		ok, err := s.purchases.HasPaidOrderWithBook(ctx, userID, e.BookID)
		if err != nil || ok {
			return ok, err
		}
	}
	if e.StudentBookID != 0 {
		return s.purchases.HasPaidOrderWithStudentBook(ctx, userID, e.StudentBookID)
	}
	return false, nil
}

// Unlock 解锁电子书
// 返回落库后的授权记录：重复解锁时回读原记录，
// 保留首次解锁的UnlockedAt与下载计数
func (s *service) Unlock(ctx context.Context, userID, ebookID uint) (*Access, error) {
	method, err := s.Resolve(ctx, userID, ebookID)
	if err != nil {
		return nil, err
	}

	if err := s.accesses.Upsert(ctx, NewAccess(userID, ebookID, method)); err != nil {
		return nil, err
	}

	if err := s.ebooks.IncrDownloadCount(ctx, ebookID); err != nil {
		return nil, err
	}

	return s.accesses.Find(ctx, userID, ebookID)
}

// Download 下载电子书
// 注意：不走Resolve，只认已有授权记录。解锁与下载是两个动作，
// 未解锁直接下载返回ErrNotUnlocked
func (s *service) Download(ctx context.Context, userID, ebookID uint) (string, error) {
	e, err := s.ebooks.FindByID(ctx, ebookID)
	if err != nil {
		return "", err
	}

	access, err := s.accesses.Find(ctx, userID, ebookID)
	if err != nil {
		return "", err
	}
	if access == nil {
		return "", ErrNotUnlocked
	}

	if err := s.accesses.IncrDownloadCount(ctx, userID, ebookID); err != nil {
		return "", err
	}
	if err := s.ebooks.IncrDownloadCount(ctx, ebookID); err != nil {
		return "", err
	}

	return e.FileURL, nil
}

// Library 我的书架
func (s *service) Library(ctx context.Context, userID uint) ([]*Access, []*EBook, error) {
	accesses, err := s.accesses.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if len(accesses) == 0 {
		return accesses, nil, nil
	}

	ids := make([]uint, 0, len(accesses))
	for _, a := range accesses {
		ids = append(ids, a.EBookID)
	}

	ebooks, err := s.ebooks.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return accesses, ebooks, nil
}
