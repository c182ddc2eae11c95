package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8,max=20"`
	Name       string `json:"name" binding:"required,min=2,max=50"`
	Role       string `json:"role" binding:"omitempty,oneof=admin student customer"`
	ClassLevel int    `json:"class_level" binding:"omitempty,min=1,max=12"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest 刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=50"`
	ClassLevel int    `json:"class_level" binding:"omitempty,min=1,max=12"`
}
