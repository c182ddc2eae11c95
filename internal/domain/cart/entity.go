package cart

import (
	"time"
)

// Item 购物车行项
// BookID/StudentBookID恰好一个非零，标识商品身份；
// Name/Image/Price是加入时的快照，商品改价不影响已在车中的行项
type Item struct {
	ID            uint
	CartID        uint
	BookID        uint
	StudentBookID uint
	Name          string
	Image         string
	Price         int64 // 加入时单价快照（paise）
	Quantity      int
}

// SameProduct 两个行项是否指向同一商品
func (i Item) SameProduct(other Item) bool {
	if i.BookID != 0 {
		return i.BookID == other.BookID
	}
	return i.StudentBookID != 0 && i.StudentBookID == other.StudentBookID
}

// Subtotal 行项小计
func (i Item) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Cart 购物车实体（聚合根）
// 设计说明：
// 1. 每个用户最多一个购物车（UserID唯一索引）
// 2. TotalPrice冗余存储，任何一次变更后都在实体内重算，
//    不变式：TotalPrice == Σ(Price×Quantity)
// 3. 数量<=0视为删除该行（而非报错）
type Cart struct {
	ID         uint
	UserID     uint
	Items      []Item
	TotalPrice int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewCart 创建空购物车
func NewCart(userID uint) *Cart {
	now := time.Now()
	return &Cart{
		UserID:    userID,
		Items:     []Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem 加入商品
// 已存在同一商品时合并数量，否则追加新行；返回错误仅当数量不合法
func (c *Cart) AddItem(item Item) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if item.BookID == 0 && item.StudentBookID == 0 {
		return ErrInvalidItem
	}

	for i := range c.Items {
		if c.Items[i].SameProduct(item) {
			c.Items[i].Quantity += item.Quantity
			c.recompute()
			return nil
		}
	}

	c.Items = append(c.Items, item)
	c.recompute()
	return nil
}

// UpdateQuantity 设置某行数量
// 数量<=0等价于删除该行
func (c *Cart) UpdateQuantity(itemID uint, quantity int) error {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			if quantity <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = quantity
			}
			c.recompute()
			return nil
		}
	}
	return ErrItemNotFound
}

// RemoveItem 删除某行
func (c *Cart) RemoveItem(itemID uint) error {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.recompute()
			return nil
		}
	}
	return ErrItemNotFound
}

// Clear 清空购物车
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.recompute()
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// recompute 重算总价，每次变更后调用
func (c *Cart) recompute() {
	var total int64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	c.TotalPrice = total
	c.UpdatedAt = time.Now()
}
