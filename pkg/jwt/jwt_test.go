package jwt

import (
	"testing"
	"time"

	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// TestManager_GenerateAndParse 测试Token生成与解析往返
func TestManager_GenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 168*time.Hour)

	pair, err := m.GenerateToken(42, "ravi@example.com", "Ravi", "customer")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("Token对不应为空")
	}
	if pair.ExpiresIn != 7200 {
		t.Errorf("期望过期时间7200秒，实际%d", pair.ExpiresIn)
	}

	claims, err := m.ParseToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("解析Access Token失败: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("期望UserID为42，实际%d", claims.UserID)
	}
	if claims.Email != "ravi@example.com" || claims.Name != "Ravi" || claims.Role != "customer" {
		t.Errorf("Claims内容不符: %+v", claims)
	}
	if claims.Issuer != "bookhub" {
		t.Errorf("期望签发方为bookhub，实际%s", claims.Issuer)
	}
}

// TestManager_WrongSecret 测试签名不匹配
func TestManager_WrongSecret(t *testing.T) {
	m := NewManager("secret-a", time.Hour, time.Hour)
	pair, err := m.GenerateToken(1, "a@example.com", "A", "customer")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	other := NewManager("secret-b", time.Hour, time.Hour)
	if _, err := other.ParseToken(pair.AccessToken); err != apperrors.ErrInvalidToken {
		t.Errorf("期望返回ErrInvalidToken，实际%v", err)
	}
}

// TestManager_Expired 测试过期Token
func TestManager_Expired(t *testing.T) {
	// 负有效期直接生成已过期的Token
	m := NewManager("test-secret", -time.Minute, time.Hour)
	pair, err := m.GenerateToken(1, "a@example.com", "A", "customer")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	if _, err := m.ParseToken(pair.AccessToken); err != apperrors.ErrTokenExpired {
		t.Errorf("期望返回ErrTokenExpired，实际%v", err)
	}
}

// TestManager_Malformed 测试格式错误的Token
func TestManager_Malformed(t *testing.T) {
	m := NewManager("test-secret", time.Hour, time.Hour)
	if _, err := m.ParseToken("not.a.token"); err != apperrors.ErrInvalidToken {
		t.Errorf("期望返回ErrInvalidToken，实际%v", err)
	}
}

// TestManager_RefreshAccessToken 测试刷新流程
func TestManager_RefreshAccessToken(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 168*time.Hour)
	pair, err := m.GenerateToken(7, "s@example.com", "Sita", "student")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	newPair, err := m.RefreshAccessToken(pair.RefreshToken, "s@example.com", "Sita", "student")
	if err != nil {
		t.Fatalf("刷新Token失败: %v", err)
	}

	claims, err := m.ParseToken(newPair.AccessToken)
	if err != nil {
		t.Fatalf("解析新Access Token失败: %v", err)
	}
	if claims.UserID != 7 || claims.Role != "student" {
		t.Errorf("刷新后Claims不符: %+v", claims)
	}

	// 用Access Token当Refresh Token也能解析（同一密钥），但过期Token必须被拒绝
	expired := NewManager("test-secret", time.Hour, -time.Minute)
	expiredPair, err := expired.GenerateToken(7, "s@example.com", "Sita", "student")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}
	if _, err := m.RefreshAccessToken(expiredPair.RefreshToken, "s@example.com", "Sita", "student"); err != apperrors.ErrTokenExpired {
		t.Errorf("过期Refresh Token期望返回ErrTokenExpired，实际%v", err)
	}
}
