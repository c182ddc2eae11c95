package dto

// SaveListingRequest 挂牌创建/更新请求
type SaveListingRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Author      string   `json:"author"`
	Category    string   `json:"category"`
	ClassLevel  int      `json:"class_level" binding:"omitempty,min=1,max=12"`
	Condition   string   `json:"condition" binding:"required,oneof=new like-new good fair"`
	Price       int64    `json:"price" binding:"min=0"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

// ListListingsQuery 挂牌列表查询参数
type ListListingsQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=active sold removed"`
	Category   string `form:"category"`
	ClassLevel int    `form:"class" binding:"omitempty,min=1,max=12"`
	Condition  string `form:"condition" binding:"omitempty,oneof=new like-new good fair"`
	MinPrice   int64  `form:"min_price"`
	MaxPrice   int64  `form:"max_price"`
	Keyword    string `form:"keyword"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// MarkSoldRequest 标记售出请求
type MarkSoldRequest struct {
	BuyerID uint `json:"buyer_id" binding:"required"`
}

// SendMessageRequest 挂牌留言请求
type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" binding:"required"`
	Body       string `json:"body" binding:"required,max=2000"`
}
