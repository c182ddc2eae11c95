package user

import (
	"time"
)

// Role 用户角色
// admin管理后台、student学生（可解锁班级教材）、customer普通买家
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStudent  Role = "student"
	RoleCustomer Role = "customer"
)

// Valid 校验角色合法性
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleCustomer:
		return true
	}
	return false
}

// User 用户实体（聚合根）
// DDD设计说明：
// 1. User是用户聚合的根实体，包含用户的核心属性
// 2. 密码已加密存储（bcrypt），不应该有GetPassword()等方法暴露明文
// 3. 领域实体不依赖GORM tag（infrastructure层的Repository实现时处理映射）
// 4. ClassLevel仅对student角色有意义，电子书班级解锁依据此字段
type User struct {
	ID         uint
	Email      string
	Password   string // bcrypt哈希值
	Name       string
	Role       Role
	ClassLevel int // 学生班级（1-12），非学生为0
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword, name string, role Role, classLevel int) *User {
	now := time.Now()
	if !role.Valid() {
		role = RoleCustomer
	}
	if role != RoleStudent {
		classLevel = 0
	}
	return &User{
		Email:      email,
		Password:   hashedPassword,
		Name:       name,
		Role:       role,
		ClassLevel: classLevel,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsStudent 是否为学生
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UpdateProfile 更新基本资料（领域行为）
func (u *User) UpdateProfile(name string, classLevel int) {
	if name != "" {
		u.Name = name
	}
	if u.Role == RoleStudent && classLevel > 0 {
		u.ClassLevel = classLevel
	}
	u.UpdatedAt = time.Now()
}
