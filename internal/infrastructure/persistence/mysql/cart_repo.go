package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/navyap013/bookhub/internal/domain/cart"
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// cartRepository 购物车仓储实现（MySQL）
// Save以内存聚合为准做行项差异同步：删除不在聚合中的行、更新既有行、插入新行
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// FindByUser 查找用户购物车（含行项），不存在返回(nil, nil)
func (r *cartRepository) FindByUser(ctx context.Context, userID uint) (*cart.Cart, error) {
	var model CartModel
	err := getDB(ctx, r.db).Preload("Items").Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	return toCartEntity(&model), nil
}

// Create 创建购物车
func (r *cartRepository) Create(ctx context.Context, c *cart.Cart) error {
	model := &CartModel{
		UserID:     c.UserID,
		TotalPrice: c.TotalPrice,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建购物车失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// Save 保存整个聚合
func (r *cartRepository) Save(ctx context.Context, c *cart.Cart) error {
	db := getDB(ctx, r.db)

	// 1. 更新购物车头
	if err := db.Model(&CartModel{}).Where("id = ?", c.ID).
		Update("total_price", c.TotalPrice).Error; err != nil {
		return apperrors.Wrap(err, "更新购物车失败")
	}

	// 2. 删除不在聚合中的行项
	keepIDs := make([]uint, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ID != 0 {
			keepIDs = append(keepIDs, item.ID)
		}
	}
	del := db.Where("cart_id = ?", c.ID)
	if len(keepIDs) > 0 {
		del = del.Where("id NOT IN ?", keepIDs)
	}
	if err := del.Delete(&CartItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "清理购物车行项失败")
	}

	// 3. 更新既有行、插入新行
	for i := range c.Items {
		item := &c.Items[i]
		model := &CartItemModel{
			ID:            item.ID,
			CartID:        c.ID,
			BookID:        item.BookID,
			StudentBookID: item.StudentBookID,
			Name:          item.Name,
			Image:         item.Image,
			Price:         item.Price,
			Quantity:      item.Quantity,
		}
		if err := db.Save(model).Error; err != nil {
			return apperrors.Wrap(err, "保存购物车行项失败")
		}
		item.ID = model.ID
		item.CartID = c.ID
	}

	return nil
}

// Clear 清空行项并归零总价
func (r *cartRepository) Clear(ctx context.Context, cartID uint) error {
	db := getDB(ctx, r.db)
	if err := db.Where("cart_id = ?", cartID).Delete(&CartItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	if err := db.Model(&CartModel{}).Where("id = ?", cartID).
		Update("total_price", 0).Error; err != nil {
		return apperrors.Wrap(err, "重置购物车总价失败")
	}
	return nil
}

// toCartEntity GORM模型 -> 领域实体
func toCartEntity(model *CartModel) *cart.Cart {
	items := make([]cart.Item, len(model.Items))
	for i, im := range model.Items {
		items[i] = cart.Item{
			ID:            im.ID,
			CartID:        im.CartID,
			BookID:        im.BookID,
			StudentBookID: im.StudentBookID,
			Name:          im.Name,
			Image:         im.Image,
			Price:         im.Price,
			Quantity:      im.Quantity,
		}
	}
	return &cart.Cart{
		ID:         model.ID,
		UserID:     model.UserID,
		Items:      items,
		TotalPrice: model.TotalPrice,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
