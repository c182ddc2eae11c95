package dto

// AddCartItemRequest 加车请求
// book_id与student_book_id恰好传一个
type AddCartItemRequest struct {
	BookID        uint `json:"book_id"`
	StudentBookID uint `json:"student_book_id"`
	Quantity      int  `json:"quantity" binding:"required,gt=0"`
}

// UpdateCartItemRequest 修改数量请求
// 数量<=0表示删除该行
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
