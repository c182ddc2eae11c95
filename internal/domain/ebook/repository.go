package ebook

import (
	"context"
)

// Repository 电子书仓储接口
type Repository interface {
	Create(ctx context.Context, e *EBook) error
	FindByID(ctx context.Context, id uint) (*EBook, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*EBook, error)
	Update(ctx context.Context, e *EBook) error

	// Delete 删除电子书，级联删除其授权记录
	Delete(ctx context.Context, id uint) error

	// List 电子书列表（管理端与浏览页共用）
	List(ctx context.Context, page, pageSize int) ([]*EBook, int64, error)

	// IncrDownloadCount 全局下载计数+1
	IncrDownloadCount(ctx context.Context, id uint) error
}

// AccessRepository 授权记录仓储接口
type AccessRepository interface {
	// Find 查找授权记录，不存在返回(nil, nil)
	// 说明：记录不存在是正常业务分支（走解锁判定），不作为错误返回
	Find(ctx context.Context, userID, ebookID uint) (*Access, error)

	// Upsert 插入或刷新授权记录
	// 已存在时只刷新LastAccessed，不改动UnlockedAt与AccessMethod
	Upsert(ctx context.Context, access *Access) error

	// IncrDownloadCount 用户维度下载计数+1并刷新LastAccessed
	IncrDownloadCount(ctx context.Context, userID, ebookID uint) error

	// ListByUser 用户已解锁的电子书（我的书架）
	ListByUser(ctx context.Context, userID uint) ([]*Access, error)
}

// PurchaseChecker 已支付订单查询
// 设计说明：purchase解锁需要跨聚合查询订单，domain层只依赖这个窄接口，
// 由order仓储实现，避免ebook聚合直接依赖order仓储的全部能力
type PurchaseChecker interface {
	// HasPaidOrderWithBook 用户的已支付订单中是否包含指定图书
	HasPaidOrderWithBook(ctx context.Context, userID, bookID uint) (bool, error)

	// HasPaidOrderWithStudentBook 同上，教材维度
	HasPaidOrderWithStudentBook(ctx context.Context, userID, studentBookID uint) (bool, error)
}

// StudentReader 学生信息查询（班级解锁判定用）
type StudentReader interface {
	// StudentClass 返回用户的学生班级；非学生返回(0, false)
	StudentClass(ctx context.Context, userID uint) (int, bool, error)
}
