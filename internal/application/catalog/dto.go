package catalog

import (
	"github.com/navyap013/bookhub/internal/domain/catalog"
)

// BookDTO 图书展示DTO
// 价格字段同时给出paise与格式化卢比字符串，前端按需取用
type BookDTO struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Description   string  `json:"description,omitempty"`
	Category      string  `json:"category"`
	Language      string  `json:"language"`
	Price         int64   `json:"price"`
	OriginalPrice int64   `json:"original_price"`
	Discount      int     `json:"discount"`
	Stock         int     `json:"stock"`
	InStock       bool    `json:"in_stock"`
	CoverURL      string  `json:"cover_url"`
	Rating        float64 `json:"rating"`
	RatingCount   int     `json:"rating_count"`
	Featured      bool    `json:"featured"`
	Trending      bool    `json:"trending"`
	RecentlyAdded bool    `json:"recently_added"`
	CreatedAt     string  `json:"created_at"`
}

// StudentBookDTO 学生教材展示DTO
type StudentBookDTO struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Description   string  `json:"description,omitempty"`
	Subject       string  `json:"subject"`
	ClassLevel    int     `json:"class_level"`
	Language      string  `json:"language"`
	Price         int64   `json:"price"`
	OriginalPrice int64   `json:"original_price"`
	Discount      int     `json:"discount"`
	Stock         int     `json:"stock"`
	InStock       bool    `json:"in_stock"`
	CoverURL      string  `json:"cover_url"`
	Rating        float64 `json:"rating"`
	RatingCount   int     `json:"rating_count"`
	Featured      bool    `json:"featured"`
	CreatedAt     string  `json:"created_at"`
}

const timeLayout = "2006-01-02 15:04:05"

// ToBookDTO 实体转DTO
func ToBookDTO(b *catalog.Book) BookDTO {
	return BookDTO{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Description:   b.Description,
		Category:      b.Category,
		Language:      b.Language,
		Price:         b.Price,
		OriginalPrice: b.OriginalPrice,
		Discount:      b.Discount,
		Stock:         b.Stock,
		InStock:       b.InStock(),
		CoverURL:      b.CoverURL,
		Rating:        b.Rating.Average,
		RatingCount:   b.Rating.Count,
		Featured:      b.Featured,
		Trending:      b.Trending,
		RecentlyAdded: b.RecentlyAdded,
		CreatedAt:     b.CreatedAt.Format(timeLayout),
	}
}

// ToBookDTOs 批量转换（列表场景不返回description）
func ToBookDTOs(books []*catalog.Book) []BookDTO {
	list := make([]BookDTO, len(books))
	for i, b := range books {
		list[i] = ToBookDTO(b)
		list[i].Description = ""
	}
	return list
}

// ToStudentBookDTO 教材实体转DTO
func ToStudentBookDTO(sb *catalog.StudentBook) StudentBookDTO {
	return StudentBookDTO{
		ID:            sb.ID,
		Title:         sb.Title,
		Author:        sb.Author,
		Description:   sb.Description,
		Subject:       sb.Subject,
		ClassLevel:    sb.ClassLevel,
		Language:      sb.Language,
		Price:         sb.Price,
		OriginalPrice: sb.OriginalPrice,
		Discount:      sb.Discount,
		Stock:         sb.Stock,
		InStock:       sb.Stock > 0,
		CoverURL:      sb.CoverURL,
		Rating:        sb.Rating.Average,
		RatingCount:   sb.Rating.Count,
		Featured:      sb.Featured,
		CreatedAt:     sb.CreatedAt.Format(timeLayout),
	}
}

// ToStudentBookDTOs 批量转换
func ToStudentBookDTOs(books []*catalog.StudentBook) []StudentBookDTO {
	list := make([]StudentBookDTO, len(books))
	for i, sb := range books {
		list[i] = ToStudentBookDTO(sb)
		list[i].Description = ""
	}
	return list
}
