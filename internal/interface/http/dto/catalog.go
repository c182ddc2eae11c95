package dto

// ListBooksQuery 图书列表查询参数
type ListBooksQuery struct {
	Category  string  `form:"category"`
	Author    string  `form:"author"`
	Language  string  `form:"language"`
	MinPrice  int64   `form:"min_price"`
	MaxPrice  int64   `form:"max_price"`
	MinRating float64 `form:"min_rating"`
	MaxRating float64 `form:"max_rating"`
	Featured  *bool   `form:"featured"`
	Trending  *bool   `form:"trending"`
	Recent    *bool   `form:"recent"`
	Keyword   string  `form:"keyword"`
	SortBy    string  `form:"sort" binding:"omitempty,oneof=price-low price-high rating newest"`
	Page      int     `form:"page"`
	PageSize  int     `form:"page_size"`
}

// ListStudentBooksQuery 教材列表查询参数
type ListStudentBooksQuery struct {
	ClassLevel int    `form:"class" binding:"omitempty,min=1,max=12"`
	Subject    string `form:"subject"`
	Keyword    string `form:"keyword"`
	SortBy     string `form:"sort" binding:"omitempty,oneof=price-low price-high rating newest"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// SaveBookRequest 图书创建/更新请求（管理员）
type SaveBookRequest struct {
	Title         string `json:"title" binding:"required"`
	Author        string `json:"author" binding:"required"`
	Description   string `json:"description"`
	Category      string `json:"category" binding:"required"`
	Language      string `json:"language"`
	Price         int64  `json:"price" binding:"required,gt=0"`
	OriginalPrice int64  `json:"original_price" binding:"omitempty,gt=0"`
	Stock         int    `json:"stock" binding:"min=0"`
	CoverURL      string `json:"cover_url"`
	Featured      bool   `json:"featured"`
	Trending      bool   `json:"trending"`
	RecentlyAdded bool   `json:"recently_added"`
}

// SaveStudentBookRequest 教材创建/更新请求（管理员）
type SaveStudentBookRequest struct {
	Title         string `json:"title" binding:"required"`
	Author        string `json:"author" binding:"required"`
	Description   string `json:"description"`
	Subject       string `json:"subject" binding:"required"`
	ClassLevel    int    `json:"class_level" binding:"required,min=1,max=12"`
	Language      string `json:"language"`
	Price         int64  `json:"price" binding:"required,gt=0"`
	OriginalPrice int64  `json:"original_price" binding:"omitempty,gt=0"`
	Stock         int    `json:"stock" binding:"min=0"`
	CoverURL      string `json:"cover_url"`
	Featured      bool   `json:"featured"`
}
