package exchange

import (
	"context"

	"github.com/navyap013/bookhub/internal/domain/exchange"
)

// InterestUseCase 兴趣开关用例
// 再次表达兴趣即取消（开关语义）
type InterestUseCase struct {
	exchangeService exchange.Service
}

// NewInterestUseCase 创建兴趣用例
func NewInterestUseCase(exchangeService exchange.Service) *InterestUseCase {
	return &InterestUseCase{exchangeService: exchangeService}
}

// InterestResponse 兴趣响应DTO
type InterestResponse struct {
	Interested bool `json:"interested"`
}

// Execute 切换兴趣状态
func (uc *InterestUseCase) Execute(ctx context.Context, listingID, userID uint) (*InterestResponse, error) {
	interested, err := uc.exchangeService.ToggleInterest(ctx, listingID, userID)
	if err != nil {
		return nil, err
	}
	return &InterestResponse{Interested: interested}, nil
}

// MarkSoldUseCase 标记售出用例（卖家）
type MarkSoldUseCase struct {
	exchangeService exchange.Service
}

// NewMarkSoldUseCase 创建标记售出用例
func NewMarkSoldUseCase(exchangeService exchange.Service) *MarkSoldUseCase {
	return &MarkSoldUseCase{exchangeService: exchangeService}
}

// Execute 标记挂牌售出给指定买家
// 买家必须在感兴趣名单内（领域服务校验）
func (uc *MarkSoldUseCase) Execute(ctx context.Context, listingID, sellerID, buyerID uint) (*ListingDTO, error) {
	l, err := uc.exchangeService.MarkSold(ctx, listingID, sellerID, buyerID)
	if err != nil {
		return nil, err
	}
	dto := toListingDTO(l, sellerID)
	return &dto, nil
}
