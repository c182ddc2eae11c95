package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/navyap013/bookhub/internal/domain/ebook"
	"github.com/navyap013/bookhub/internal/domain/user"
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// userRepository 用户仓储实现（MySQL）
// 同时实现ebook.StudentReader：班级解锁判定需要读学生班级
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// NewStudentReader 以ebook.StudentReader视角暴露用户仓储
func NewStudentReader(db *gorm.DB) ebook.StudentReader {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := &UserModel{
		Email:      u.Email,
		Password:   u.Password,
		Name:       u.Name,
		Role:       string(u.Role),
		ClassLevel: u.ClassLevel,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// FindByEmail 根据邮箱查找用户
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	if err := getDB(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// Update 更新用户信息
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := &UserModel{
		ID:         u.ID,
		Email:      u.Email,
		Password:   u.Password,
		Name:       u.Name,
		Role:       string(u.Role),
		ClassLevel: u.ClassLevel,
		CreatedAt:  u.CreatedAt,
	}
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新用户失败")
	}
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// StudentClass 返回用户的学生班级（ebook.StudentReader）
// 非学生返回(0, false)
func (r *userRepository) StudentClass(ctx context.Context, userID uint) (int, bool, error) {
	u, err := r.FindByID(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	if !u.IsStudent() {
		return 0, false, nil
	}
	return u.ClassLevel, true, nil
}

// toUserEntity GORM模型 -> 领域实体
func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:         model.ID,
		Email:      model.Email,
		Password:   model.Password,
		Name:       model.Name,
		Role:       user.Role(model.Role),
		ClassLevel: model.ClassLevel,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
