package ebook

import (
	"context"

	"github.com/navyap013/bookhub/internal/domain/ebook"
)

// LibraryUseCase 我的书架用例
// 返回用户已解锁的全部电子书及各自的授权信息
type LibraryUseCase struct {
	ebookService ebook.Service
}

// NewLibraryUseCase 创建书架用例
func NewLibraryUseCase(ebookService ebook.Service) *LibraryUseCase {
	return &LibraryUseCase{ebookService: ebookService}
}

// LibraryEntryDTO 书架条目DTO
type LibraryEntryDTO struct {
	EBook         EBookDTO `json:"ebook"`
	Method        string   `json:"method"`
	UnlockedAt    string   `json:"unlocked_at"`
	LastAccessed  string   `json:"last_accessed"`
	DownloadCount int      `json:"download_count"`
}

// Execute 查询书架
func (uc *LibraryUseCase) Execute(ctx context.Context, userID uint) ([]LibraryEntryDTO, error) {
	accesses, ebooks, err := uc.ebookService.Library(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Library保证accesses与ebooks一一对应
	entries := make([]LibraryEntryDTO, len(accesses))
	for i, a := range accesses {
		entries[i] = LibraryEntryDTO{
			EBook:         ToEBookDTO(ebooks[i]),
			Method:        a.AccessMethod,
			UnlockedAt:    a.UnlockedAt.Format(timeLayout),
			LastAccessed:  a.LastAccessed.Format(timeLayout),
			DownloadCount: a.DownloadCount,
		}
	}
	return entries, nil
}
