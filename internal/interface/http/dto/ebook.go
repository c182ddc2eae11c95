package dto

// SaveEBookRequest 电子书创建/更新请求（管理员）
// book_id与student_book_id最多传一个
type SaveEBookRequest struct {
	Title         string `json:"title" binding:"required"`
	Author        string `json:"author" binding:"required"`
	Description   string `json:"description"`
	BookID        uint   `json:"book_id"`
	StudentBookID uint   `json:"student_book_id"`
	ClassLevel    int    `json:"class_level" binding:"omitempty,min=1,max=12"`
	FileURL       string `json:"file_url" binding:"required"`
	FileSize      int64  `json:"file_size" binding:"min=0"`
	Format        string `json:"format" binding:"required,oneof=pdf epub"`
	UnlockMethod  string `json:"unlock_method" binding:"required,oneof=purchase class free"`
	IsFree        bool   `json:"is_free"`
	Price         int64  `json:"price" binding:"min=0"`
	CoverURL      string `json:"cover_url"`
}
