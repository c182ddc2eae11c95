package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/navyap013/bookhub/internal/infrastructure/persistence/redis"
	apperrors "github.com/navyap013/bookhub/pkg/errors"
	"github.com/navyap013/bookhub/pkg/jwt"
	"github.com/navyap013/bookhub/pkg/response"
)

// Context键
const (
	ctxUserID   = "user_id"
	ctxEmail    = "email"
	ctxUserName = "user_name"
	ctxRole     = "role"
	ctxToken    = "access_token"
)

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Bearer Token
// 2. 先查黑名单（已登出的Token立即失效），再验证签名
// 3. 将用户信息注入Context供Handler使用
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// RequireAuth 要求登录
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearer(c)
		if !ok {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		blacklisted, err := m.sessionStore.IsBlacklisted(c.Request.Context(), tokenString)
		if err != nil {
			response.Error(c, apperrors.Wrap(err, "验证Token失败"))
			c.Abort()
			return
		}
		if blacklisted {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		injectClaims(c, claims, tokenString)
		c.Next()
	}
}

// RequireAdmin 要求管理员角色（在RequireAuth之后使用）
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != "admin" {
			response.Error(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth 可选登录
// 有合法Token则注入用户信息，没有则作为匿名用户继续
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearer(c)
		if !ok {
			c.Next()
			return
		}

		if blacklisted, err := m.sessionStore.IsBlacklisted(c.Request.Context(), tokenString); err != nil || blacklisted {
			c.Next()
			return
		}

		if claims, err := m.jwtManager.ParseToken(tokenString); err == nil {
			injectClaims(c, claims, tokenString)
		}
		c.Next()
	}
}

// extractBearer 从Authorization头提取Token
func extractBearer(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func injectClaims(c *gin.Context, claims *jwt.Claims, token string) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxEmail, claims.Email)
	c.Set(ctxUserName, claims.Name)
	c.Set(ctxRole, claims.Role)
	c.Set(ctxToken, token)
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUserID 当前登录用户ID，未登录返回0
func GetUserID(c *gin.Context) uint {
	if v, exists := c.Get(ctxUserID); exists {
		if uid, ok := v.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetUserName 当前登录用户姓名
func GetUserName(c *gin.Context) string {
	if v, exists := c.Get(ctxUserName); exists {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}

// GetRole 当前登录用户角色
func GetRole(c *gin.Context) string {
	if v, exists := c.Get(ctxRole); exists {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

// IsAdmin 当前用户是否管理员
func IsAdmin(c *gin.Context) bool {
	return GetRole(c) == "admin"
}

// GetToken 当前请求携带的Access Token
func GetToken(c *gin.Context) string {
	if v, exists := c.Get(ctxToken); exists {
		if t, ok := v.(string); ok {
			return t
		}
	}
	return ""
}

// MustGetUserID 当前登录用户ID（仅在RequireAuth之后的Handler使用）
func MustGetUserID(c *gin.Context) uint {
	userID := GetUserID(c)
	if userID == 0 {
		panic("user_id not found in context")
	}
	return userID
}
