package user

import (
	"context"

	"github.com/navyap013/bookhub/internal/domain/user"
)

// GetProfileUseCase 查询个人资料用例
type GetProfileUseCase struct {
	userRepo user.Repository
}

// NewGetProfileUseCase 创建查询资料用例
func NewGetProfileUseCase(userRepo user.Repository) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo}
}

// Execute 查询当前用户资料
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uint) (*UserInfo, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := newUserInfo(u)
	return &info, nil
}

// UpdateProfileUseCase 更新个人资料用例
// 业务规则：
// 1. 只允许修改姓名和班级，邮箱和角色不可自助修改
// 2. 非学生角色忽略班级字段
type UpdateProfileUseCase struct {
	userRepo user.Repository
}

// NewUpdateProfileUseCase 创建更新资料用例
func NewUpdateProfileUseCase(userRepo user.Repository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{userRepo: userRepo}
}

// UpdateProfileRequest 更新资料请求DTO
type UpdateProfileRequest struct {
	Name       string
	ClassLevel int
}

// Execute 执行资料更新
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, userID uint, req UpdateProfileRequest) (*UserInfo, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.IsStudent() && req.ClassLevel != 0 && (req.ClassLevel < 1 || req.ClassLevel > 12) {
		return nil, user.ErrInvalidClassLevel
	}

	u.UpdateProfile(req.Name, req.ClassLevel)
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	info := newUserInfo(u)
	return &info, nil
}
