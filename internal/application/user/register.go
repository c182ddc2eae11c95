package user

import (
	"context"
	"time"

	"github.com/navyap013/bookhub/internal/domain/user"
	"github.com/navyap013/bookhub/internal/infrastructure/persistence/redis"
	"github.com/navyap013/bookhub/pkg/jwt"
)

// RegisterUseCase 用户注册用例
// 设计说明：
// 1. 注册即登录：注册成功后直接签发Token，前端无需二次请求
// 2. 角色合法性与学生班级校验在领域服务完成，应用层只做DTO转换
type RegisterUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
) *RegisterUseCase {
	return &RegisterUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// RegisterRequest 注册请求DTO
type RegisterRequest struct {
	Email      string
	Password   string
	Name       string
	Role       string // admin/student/customer，默认customer
	ClassLevel int    // 学生角色必填（1-12）
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	u, err := uc.userService.Register(ctx, req.Email, req.Password, req.Name, user.Role(req.Role), req.ClassLevel)
	if err != nil {
		return nil, err
	}

	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Email, u.Name, string(u.Role))
	if err != nil {
		return nil, err
	}

	// 会话保存失败不阻断注册流程
	_ = uc.sessionStore.SaveSession(ctx, u.ID, sessionData(u), 7*24*time.Hour)

	return newAuthResponse(u, tokenPair), nil
}
