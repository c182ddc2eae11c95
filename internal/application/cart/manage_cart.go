package cart

import (
	"context"

	"github.com/navyap013/bookhub/internal/domain/cart"
	"github.com/navyap013/bookhub/internal/domain/catalog"
)

// ManageCartUseCase 购物车管理用例
// 设计说明：
// 1. 购物车懒创建：首次操作时才建聚合
// 2. 加入商品时从商品库取价格快照，不信任前端传价（防改价攻击）
// 3. 所有变更走实体方法，总价不变式由实体维护
type ManageCartUseCase struct {
	cartRepo        cart.Repository
	bookRepo        catalog.BookRepository
	studentBookRepo catalog.StudentBookRepository
}

// NewManageCartUseCase 创建购物车管理用例
func NewManageCartUseCase(
	cartRepo cart.Repository,
	bookRepo catalog.BookRepository,
	studentBookRepo catalog.StudentBookRepository,
) *ManageCartUseCase {
	return &ManageCartUseCase{
		cartRepo:        cartRepo,
		bookRepo:        bookRepo,
		studentBookRepo: studentBookRepo,
	}
}

// AddItemRequest 加车请求DTO
// BookID/StudentBookID恰好传一个
type AddItemRequest struct {
	BookID        uint
	StudentBookID uint
	Quantity      int
}

// ItemDTO 购物车行项DTO
type ItemDTO struct {
	ID            uint   `json:"id"`
	BookID        uint   `json:"book_id,omitempty"`
	StudentBookID uint   `json:"student_book_id,omitempty"`
	Name          string `json:"name"`
	Image         string `json:"image"`
	Price         int64  `json:"price"`
	Quantity      int    `json:"quantity"`
	Subtotal      int64  `json:"subtotal"`
}

// CartDTO 购物车DTO
type CartDTO struct {
	ID         uint      `json:"id"`
	Items      []ItemDTO `json:"items"`
	TotalPrice int64     `json:"total_price"`
	ItemCount  int       `json:"item_count"`
}

// Get 查询购物车（不存在时返回空车，不落库）
func (uc *ManageCartUseCase) Get(ctx context.Context, userID uint) (*CartDTO, error) {
	c, err := uc.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = cart.NewCart(userID)
	}
	return toCartDTO(c), nil
}

// AddItem 加入商品
func (uc *ManageCartUseCase) AddItem(ctx context.Context, userID uint, req AddItemRequest) (*CartDTO, error) {
	if req.Quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}

	item, err := uc.snapshotItem(ctx, req)
	if err != nil {
		return nil, err
	}

	c, err := uc.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = cart.NewCart(userID)
		if err := uc.cartRepo.Create(ctx, c); err != nil {
			return nil, err
		}
	}

	if err := c.AddItem(item); err != nil {
		return nil, err
	}
	if err := uc.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCartDTO(c), nil
}

// UpdateQuantity 修改数量（数量<=0时删除该行）
func (uc *ManageCartUseCase) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (*CartDTO, error) {
	c, err := uc.requireCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := c.UpdateQuantity(itemID, quantity); err != nil {
		return nil, err
	}
	if err := uc.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCartDTO(c), nil
}

// RemoveItem 删除行项
func (uc *ManageCartUseCase) RemoveItem(ctx context.Context, userID, itemID uint) (*CartDTO, error) {
	c, err := uc.requireCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := c.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := uc.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCartDTO(c), nil
}

// Clear 清空购物车
func (uc *ManageCartUseCase) Clear(ctx context.Context, userID uint) error {
	c, err := uc.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	if c == nil {
		return nil // 本来就是空的
	}
	return uc.cartRepo.Clear(ctx, c.ID)
}

// snapshotItem 从商品库取快照组装行项
func (uc *ManageCartUseCase) snapshotItem(ctx context.Context, req AddItemRequest) (cart.Item, error) {
	switch {
	case req.BookID != 0 && req.StudentBookID == 0:
		b, err := uc.bookRepo.FindByID(ctx, req.BookID)
		if err != nil {
			return cart.Item{}, err
		}
		if b.Stock < req.Quantity {
			return cart.Item{}, catalog.ErrInsufficientStock
		}
		return cart.Item{
			BookID:   b.ID,
			Name:     b.Title,
			Image:    b.CoverURL,
			Price:    b.Price,
			Quantity: req.Quantity,
		}, nil
	case req.StudentBookID != 0 && req.BookID == 0:
		sb, err := uc.studentBookRepo.FindByID(ctx, req.StudentBookID)
		if err != nil {
			return cart.Item{}, err
		}
		if sb.Stock < req.Quantity {
			return cart.Item{}, catalog.ErrInsufficientStock
		}
		return cart.Item{
			StudentBookID: sb.ID,
			Name:          sb.Title,
			Image:         sb.CoverURL,
			Price:         sb.Price,
			Quantity:      req.Quantity,
		}, nil
	default:
		return cart.Item{}, cart.ErrInvalidItem
	}
}

// requireCart 查询购物车，不存在时报错
func (uc *ManageCartUseCase) requireCart(ctx context.Context, userID uint) (*cart.Cart, error) {
	c, err := uc.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, cart.ErrCartNotFound
	}
	return c, nil
}

func toCartDTO(c *cart.Cart) *CartDTO {
	items := make([]ItemDTO, len(c.Items))
	count := 0
	for i, it := range c.Items {
		items[i] = ItemDTO{
			ID:            it.ID,
			BookID:        it.BookID,
			StudentBookID: it.StudentBookID,
			Name:          it.Name,
			Image:         it.Image,
			Price:         it.Price,
			Quantity:      it.Quantity,
			Subtotal:      it.Subtotal(),
		}
		count += it.Quantity
	}
	return &CartDTO{
		ID:         c.ID,
		Items:      items,
		TotalPrice: c.TotalPrice,
		ItemCount:  count,
	}
}
