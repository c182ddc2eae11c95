package catalog

import (
	"time"
)

// Rating 评分聚合值
// 只由评价聚合器写入（review.Service），其他任何地方不得修改
type Rating struct {
	Average float64 // 平均分（无评价时为0）
	Count   int     // 评价数
}

// Book 普通图书实体（聚合根）
// DDD设计说明：
// 1. 价格使用int64存储paise为单位（1卢比=100paise，避免浮点精度问题）
// 2. OriginalPrice/Discount用于展示折扣信息，结算只看Price
// 3. Stock只允许结算流程扣减（订单创建时的原子扣减）
// 4. Featured/Trending/RecentlyAdded是运营位标记，推荐与首页列表使用
type Book struct {
	ID            uint
	Title         string
	Author        string
	Description   string
	Category      string
	Language      string
	Price         int64 // 现价（paise）
	OriginalPrice int64 // 原价（paise）
	Discount      int   // 折扣百分比 0-100
	Stock         int
	CoverURL      string
	Rating        Rating
	Featured      bool
	Trending      bool
	RecentlyAdded bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StudentBook 学生教材实体（聚合根）
// 与Book分开建模：教材按班级/科目组织，折扣策略与推荐逻辑都不同
type StudentBook struct {
	ID            uint
	Title         string
	Author        string
	Description   string
	Subject       string
	ClassLevel    int // 适用班级 1-12
	Language      string
	Price         int64
	OriginalPrice int64
	Discount      int
	Stock         int
	CoverURL      string
	Rating        Rating
	Featured      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBook 创建普通图书（工厂方法）
func NewBook(title, author, description, category, language string, price, originalPrice int64, stock int, coverURL string) *Book {
	now := time.Now()
	return &Book{
		Title:         title,
		Author:        author,
		Description:   description,
		Category:      category,
		Language:      language,
		Price:         price,
		OriginalPrice: originalPrice,
		Discount:      discountPercent(price, originalPrice),
		Stock:         stock,
		CoverURL:      coverURL,
		RecentlyAdded: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NewStudentBook 创建学生教材（工厂方法）
func NewStudentBook(title, author, description, subject string, classLevel int, language string, price, originalPrice int64, stock int, coverURL string) *StudentBook {
	now := time.Now()
	return &StudentBook{
		Title:         title,
		Author:        author,
		Description:   description,
		Subject:       subject,
		ClassLevel:    classLevel,
		Language:      language,
		Price:         price,
		OriginalPrice: originalPrice,
		Discount:      discountPercent(price, originalPrice),
		Stock:         stock,
		CoverURL:      coverURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// discountPercent 由现价/原价推算折扣百分比
func discountPercent(price, originalPrice int64) int {
	if originalPrice <= 0 || price >= originalPrice {
		return 0
	}
	return int((originalPrice - price) * 100 / originalPrice)
}

// UpdatePrice 更新价格（领域行为）
// 业务规则：价格必须>0，折扣随之重算
func (b *Book) UpdatePrice(newPrice int64) error {
	if newPrice <= 0 {
		return ErrInvalidPrice
	}
	b.Price = newPrice
	b.Discount = discountPercent(newPrice, b.OriginalPrice)
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateStock 设置库存（管理端补货）
func (b *Book) UpdateStock(newStock int) error {
	if newStock < 0 {
		return ErrInvalidStock
	}
	b.Stock = newStock
	b.UpdatedAt = time.Now()
	return nil
}

// SetRating 写入聚合评分（仅评价聚合器调用）
func (b *Book) SetRating(average float64, count int) {
	b.Rating = Rating{Average: average, Count: count}
	b.UpdatedAt = time.Now()
}

// InStock 是否有货
func (b *Book) InStock() bool {
	return b.Stock > 0
}

// UpdatePrice 更新教材价格
func (sb *StudentBook) UpdatePrice(newPrice int64) error {
	if newPrice <= 0 {
		return ErrInvalidPrice
	}
	sb.Price = newPrice
	sb.Discount = discountPercent(newPrice, sb.OriginalPrice)
	sb.UpdatedAt = time.Now()
	return nil
}

// UpdateStock 设置教材库存
func (sb *StudentBook) UpdateStock(newStock int) error {
	if newStock < 0 {
		return ErrInvalidStock
	}
	sb.Stock = newStock
	sb.UpdatedAt = time.Now()
	return nil
}

// SetRating 写入聚合评分（仅评价聚合器调用）
func (sb *StudentBook) SetRating(average float64, count int) {
	sb.Rating = Rating{Average: average, Count: count}
	sb.UpdatedAt = time.Now()
}

// ForClass 教材是否适用于指定班级
func (sb *StudentBook) ForClass(classLevel int) bool {
	return sb.ClassLevel == classLevel
}
