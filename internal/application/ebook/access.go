package ebook

import (
	"context"
	"errors"

	"github.com/navyap013/bookhub/internal/domain/ebook"
	"github.com/navyap013/bookhub/pkg/metrics"
)

// CheckAccessUseCase 电子书访问检查用例
// 设计说明：
// 1. 只判断、不落库：检查不产生授权记录
// 2. 拒绝原因要区分三种（需购买/班级不符/无权限），前端按原因引导
type CheckAccessUseCase struct {
	ebookService ebook.Service
	ebookRepo    ebook.Repository
}

// NewCheckAccessUseCase 创建访问检查用例
func NewCheckAccessUseCase(ebookService ebook.Service, ebookRepo ebook.Repository) *CheckAccessUseCase {
	return &CheckAccessUseCase{ebookService: ebookService, ebookRepo: ebookRepo}
}

// AccessStatusDTO 访问检查响应DTO
type AccessStatusDTO struct {
	EBook     EBookDTO `json:"ebook"`
	HasAccess bool     `json:"has_access"`
	Method    string   `json:"method,omitempty"` // 有权限时的解锁方式
	Reason    string   `json:"reason,omitempty"` // 无权限时的原因
}

// 拒绝原因编码（前端据此决定引导文案）
const (
	ReasonPurchaseRequired = "purchase_required"
	ReasonClassMismatch    = "class_mismatch"
	ReasonNoAccess         = "no_access"
)

// Execute 检查当前用户对电子书的访问权
func (uc *CheckAccessUseCase) Execute(ctx context.Context, userID, ebookID uint) (*AccessStatusDTO, error) {
	e, err := uc.ebookRepo.FindByID(ctx, ebookID)
	if err != nil {
		return nil, err
	}
	resp := &AccessStatusDTO{EBook: ToEBookDTO(e)}

	method, err := uc.ebookService.Resolve(ctx, userID, ebookID)
	if err != nil {
		switch {
		case errors.Is(err, ebook.ErrPurchaseRequired):
			resp.Reason = ReasonPurchaseRequired
		case errors.Is(err, ebook.ErrClassMismatch):
			resp.Reason = ReasonClassMismatch
		case errors.Is(err, ebook.ErrNoAccess):
			resp.Reason = ReasonNoAccess
		default:
			return nil, err
		}
		return resp, nil
	}

	resp.HasAccess = true
	resp.Method = method
	return resp, nil
}

// UnlockUseCase 电子书解锁用例
// 解锁成功后写入粘性授权记录，此后解锁方式变更不影响该用户
type UnlockUseCase struct {
	ebookService ebook.Service
}

// NewUnlockUseCase 创建解锁用例
func NewUnlockUseCase(ebookService ebook.Service) *UnlockUseCase {
	return &UnlockUseCase{ebookService: ebookService}
}

// UnlockResponse 解锁响应DTO
type UnlockResponse struct {
	EBookID    uint   `json:"ebook_id"`
	Method     string `json:"method"`
	UnlockedAt string `json:"unlocked_at"`
}

// Execute 执行解锁
func (uc *UnlockUseCase) Execute(ctx context.Context, userID, ebookID uint) (*UnlockResponse, error) {
	access, err := uc.ebookService.Unlock(ctx, userID, ebookID)
	if err != nil {
		return nil, err
	}

	metrics.IncCounterVec(metrics.EBooksUnlockedTotal, map[string]string{"method": access.AccessMethod})

	return &UnlockResponse{
		EBookID:    access.EBookID,
		Method:     access.AccessMethod,
		UnlockedAt: access.UnlockedAt.Format(timeLayout),
	}, nil
}

// DownloadUseCase 电子书下载用例
// 前提是已有授权记录（先解锁后下载）
type DownloadUseCase struct {
	ebookService ebook.Service
}

// NewDownloadUseCase 创建下载用例
func NewDownloadUseCase(ebookService ebook.Service) *DownloadUseCase {
	return &DownloadUseCase{ebookService: ebookService}
}

// DownloadResponse 下载响应DTO
type DownloadResponse struct {
	FileURL string `json:"file_url"`
}

// Execute 获取下载地址并累计下载次数
func (uc *DownloadUseCase) Execute(ctx context.Context, userID, ebookID uint) (*DownloadResponse, error) {
	fileURL, err := uc.ebookService.Download(ctx, userID, ebookID)
	if err != nil {
		return nil, err
	}
	return &DownloadResponse{FileURL: fileURL}, nil
}
