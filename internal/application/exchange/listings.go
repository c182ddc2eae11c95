package exchange

import (
	"context"
	"log"

	"github.com/navyap013/bookhub/internal/domain/exchange"
)

const timeLayout = "2006-01-02 15:04:05"

// ListingDTO 挂牌DTO
// InterestedCount对所有人可见，感兴趣用户名单只有卖家能看到
type ListingDTO struct {
	ID              uint     `json:"id"`
	SellerID        uint     `json:"seller_id"`
	SellerName      string   `json:"seller_name"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Category        string   `json:"category"`
	ClassLevel      int      `json:"class_level,omitempty"`
	Condition       string   `json:"condition"`
	Price           int64    `json:"price"`
	Description     string   `json:"description,omitempty"`
	Images          []string `json:"images"`
	Status          string   `json:"status"`
	SoldToID        uint     `json:"sold_to_id,omitempty"`
	Views           int      `json:"views"`
	InterestedCount int      `json:"interested_count"`
	InterestedIDs   []uint   `json:"interested_ids,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

func toListingDTO(l *exchange.Listing, viewerID uint) ListingDTO {
	dto := ListingDTO{
		ID:              l.ID,
		SellerID:        l.SellerID,
		SellerName:      l.SellerName,
		Title:           l.Title,
		Author:          l.Author,
		Category:        l.Category,
		ClassLevel:      l.ClassLevel,
		Condition:       string(l.Condition),
		Price:           l.Price,
		Description:     l.Description,
		Images:          l.Images,
		Status:          string(l.Status),
		SoldToID:        l.SoldToID,
		Views:           l.Views,
		InterestedCount: len(l.InterestedUserIDs),
		CreatedAt:       l.CreatedAt.Format(timeLayout),
	}
	if viewerID == l.SellerID {
		dto.InterestedIDs = l.InterestedUserIDs
	}
	return dto
}

// ListListingsUseCase 挂牌列表用例
type ListListingsUseCase struct {
	exchangeRepo exchange.Repository
}

// NewListListingsUseCase 创建挂牌列表用例
func NewListListingsUseCase(exchangeRepo exchange.Repository) *ListListingsUseCase {
	return &ListListingsUseCase{exchangeRepo: exchangeRepo}
}

// ListListingsRequest 挂牌列表请求DTO
type ListListingsRequest struct {
	Status     string // 默认只看在售
	Category   string
	ClassLevel int
	Condition  string
	MinPrice   int64
	MaxPrice   int64
	Keyword    string
	Page       int
	PageSize   int
}

// ListListingsResponse 挂牌列表响应DTO
type ListListingsResponse struct {
	Listings []ListingDTO `json:"listings"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// Execute 查询挂牌列表
func (uc *ListListingsUseCase) Execute(ctx context.Context, req ListListingsRequest) (*ListListingsResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	listings, total, err := uc.exchangeRepo.ListListings(ctx, exchange.ListParams{
		Status:     exchange.ListingStatus(req.Status),
		Category:   req.Category,
		ClassLevel: req.ClassLevel,
		Condition:  exchange.Condition(req.Condition),
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
		Keyword:    req.Keyword,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	list := make([]ListingDTO, len(listings))
	for i, l := range listings {
		list[i] = toListingDTO(l, 0)
	}
	return &ListListingsResponse{Listings: list, Total: total, Page: req.Page, PageSize: req.PageSize}, nil
}

// GetListingUseCase 挂牌详情用例
type GetListingUseCase struct {
	exchangeRepo exchange.Repository
}

// NewGetListingUseCase 创建挂牌详情用例
func NewGetListingUseCase(exchangeRepo exchange.Repository) *GetListingUseCase {
	return &GetListingUseCase{exchangeRepo: exchangeRepo}
}

// Execute 查询挂牌详情并累计浏览次数
// 浏览计数失败不影响详情返回
func (uc *GetListingUseCase) Execute(ctx context.Context, listingID, viewerID uint) (*ListingDTO, error) {
	l, err := uc.exchangeRepo.FindListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if err := uc.exchangeRepo.IncrViews(ctx, listingID); err != nil {
		log.Printf("挂牌浏览计数失败: id=%d err=%v", listingID, err)
	} else {
		l.Views++
	}

	dto := toListingDTO(l, viewerID)
	return &dto, nil
}

// ManageListingUseCase 挂牌管理用例（卖家）
type ManageListingUseCase struct {
	exchangeRepo exchange.Repository
}

// NewManageListingUseCase 创建挂牌管理用例
func NewManageListingUseCase(exchangeRepo exchange.Repository) *ManageListingUseCase {
	return &ManageListingUseCase{exchangeRepo: exchangeRepo}
}

// SaveListingRequest 挂牌创建/更新请求DTO
type SaveListingRequest struct {
	Title       string
	Author      string
	Category    string
	ClassLevel  int
	Condition   string
	Price       int64
	Description string
	Images      []string
}

// Create 创建挂牌
func (uc *ManageListingUseCase) Create(ctx context.Context, sellerID uint, sellerName string, req SaveListingRequest) (*ListingDTO, error) {
	l, err := exchange.NewListing(sellerID, sellerName, req.Title, req.Author, req.Category,
		req.ClassLevel, exchange.Condition(req.Condition), req.Price, req.Description, req.Images)
	if err != nil {
		return nil, err
	}
	if err := uc.exchangeRepo.CreateListing(ctx, l); err != nil {
		return nil, err
	}
	dto := toListingDTO(l, sellerID)
	return &dto, nil
}

// Update 更新挂牌（仅卖家，仅在售状态）
func (uc *ManageListingUseCase) Update(ctx context.Context, listingID, sellerID uint, req SaveListingRequest) (*ListingDTO, error) {
	l, err := uc.exchangeRepo.FindListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !l.IsOwnedBy(sellerID) {
		return nil, exchange.ErrNotSeller
	}
	if l.Status != exchange.StatusActive {
		return nil, exchange.ErrListingNotActive
	}

	cond := exchange.Condition(req.Condition)
	if !cond.Valid() {
		return nil, exchange.ErrInvalidCondition
	}
	if req.Price < 0 {
		return nil, exchange.ErrInvalidPrice
	}
	if req.Title == "" {
		return nil, exchange.ErrEmptyTitle
	}

	l.Title = req.Title
	l.Author = req.Author
	l.Category = req.Category
	l.ClassLevel = req.ClassLevel
	l.Condition = cond
	l.Price = req.Price
	l.Description = req.Description
	l.Images = req.Images

	if err := uc.exchangeRepo.UpdateListing(ctx, l); err != nil {
		return nil, err
	}
	dto := toListingDTO(l, sellerID)
	return &dto, nil
}

// Remove 下架挂牌（仅卖家）
func (uc *ManageListingUseCase) Remove(ctx context.Context, listingID, sellerID uint) error {
	l, err := uc.exchangeRepo.FindListingByID(ctx, listingID)
	if err != nil {
		return err
	}
	if !l.IsOwnedBy(sellerID) {
		return exchange.ErrNotSeller
	}
	l.Remove()
	return uc.exchangeRepo.UpdateListing(ctx, l)
}

// MyListings 我的挂牌（含已售出/已下架）
func (uc *ManageListingUseCase) MyListings(ctx context.Context, sellerID uint) ([]ListingDTO, error) {
	listings, err := uc.exchangeRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	list := make([]ListingDTO, len(listings))
	for i, l := range listings {
		list[i] = toListingDTO(l, sellerID)
	}
	return list, nil
}
