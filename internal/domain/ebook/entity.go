package ebook

import (
	"time"
)

// UnlockMethod 电子书解锁方式
// purchase需购买关联纸书、class按学生班级开放、free对所有人开放
type UnlockMethod string

const (
	UnlockPurchase UnlockMethod = "purchase"
	UnlockClass    UnlockMethod = "class"
	UnlockFree     UnlockMethod = "free"
)

// Valid 校验解锁方式
func (m UnlockMethod) Valid() bool {
	switch m {
	case UnlockPurchase, UnlockClass, UnlockFree:
		return true
	}
	return false
}

// EBook 电子书实体（聚合根）
// 设计说明：
// 1. BookID/StudentBookID最多一个非零，指向电子书对应的纸质载体
// 2. purchase解锁依据关联载体是否出现在用户的已支付订单中
// 3. class解锁要求学生角色且班级与ClassLevel一致
// 4. IsFree为true或UnlockMethod为free时对所有人开放
// 5. DownloadCount是全局下载次数（每个用户的次数在Access上）
type EBook struct {
	ID            uint
	Title         string
	Author        string
	Description   string
	BookID        uint // 关联普通图书，0表示无
	StudentBookID uint // 关联学生教材，0表示无
	ClassLevel    int  // class解锁的目标班级
	FileURL       string
	FileSize      int64  // 字节
	Format        string // pdf | epub
	UnlockMethod  UnlockMethod
	IsFree        bool
	Price         int64 // 展示用（paise）
	CoverURL      string
	DownloadCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FreeForAll 是否对所有人开放
func (e *EBook) FreeForAll() bool {
	return e.IsFree || e.UnlockMethod == UnlockFree
}

// Access 电子书访问授权记录
// 设计说明：
// 1. (UserID, EBookID)唯一，记录的存在即授权（粘性授权）
// 2. 一旦授权，后续电子书解锁方式变更不影响已有授权
// 3. AccessMethod记录授权当时的解锁方式，用于统计
type Access struct {
	ID            uint
	UserID        uint
	EBookID       uint
	AccessMethod  string // purchase | class | free
	UnlockedAt    time.Time
	LastAccessed  time.Time
	DownloadCount int
}

// NewAccess 创建授权记录
func NewAccess(userID, ebookID uint, method string) *Access {
	now := time.Now()
	return &Access{
		UserID:       userID,
		EBookID:      ebookID,
		AccessMethod: method,
		UnlockedAt:   now,
		LastAccessed: now,
	}
}

// Touch 刷新最近访问时间
func (a *Access) Touch() {
	a.LastAccessed = time.Now()
}
