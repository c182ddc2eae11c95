package dto

// SubmitReviewRequest 提交评价请求
// book_id与student_book_id恰好传一个
type SubmitReviewRequest struct {
	BookID        uint   `json:"book_id"`
	StudentBookID uint   `json:"student_book_id"`
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
	Comment       string `json:"comment"`
}

// EditReviewRequest 修改评价请求
type EditReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// AddFavouriteRequest 收藏请求
type AddFavouriteRequest struct {
	BookID        uint `json:"book_id"`
	StudentBookID uint `json:"student_book_id"`
}
