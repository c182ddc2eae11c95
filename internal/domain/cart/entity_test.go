package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCart_AddItem 测试加入商品
func TestCart_AddItem(t *testing.T) {
	t.Run("追加新行并更新总价", func(t *testing.T) {
		c := NewCart(1)
		require.NoError(t, c.AddItem(Item{BookID: 10, Name: "Go语言实战", Price: 49900, Quantity: 1}))
		require.NoError(t, c.AddItem(Item{StudentBookID: 20, Name: "数学八年级", Price: 29900, Quantity: 2}))

		assert.Len(t, c.Items, 2)
		assert.Equal(t, int64(49900+29900*2), c.TotalPrice, "总价应等于各行小计之和")
	})

	t.Run("同一商品合并数量", func(t *testing.T) {
		c := NewCart(1)
		require.NoError(t, c.AddItem(Item{BookID: 10, Price: 10000, Quantity: 1}))
		require.NoError(t, c.AddItem(Item{BookID: 10, Price: 10000, Quantity: 3}))

		require.Len(t, c.Items, 1, "同一图书应合并为一行")
		assert.Equal(t, 4, c.Items[0].Quantity)
		assert.Equal(t, int64(40000), c.TotalPrice)
	})

	t.Run("图书与教材不互相合并", func(t *testing.T) {
		c := NewCart(1)
		require.NoError(t, c.AddItem(Item{BookID: 10, Price: 10000, Quantity: 1}))
		require.NoError(t, c.AddItem(Item{StudentBookID: 10, Price: 10000, Quantity: 1}))
		assert.Len(t, c.Items, 2, "相同ID但类型不同的商品是两行")
	})

	t.Run("数量不合法", func(t *testing.T) {
		c := NewCart(1)
		assert.ErrorIs(t, c.AddItem(Item{BookID: 10, Quantity: 0}), ErrInvalidQuantity)
		assert.ErrorIs(t, c.AddItem(Item{BookID: 10, Quantity: -1}), ErrInvalidQuantity)
	})

	t.Run("商品标识缺失", func(t *testing.T) {
		c := NewCart(1)
		assert.ErrorIs(t, c.AddItem(Item{Quantity: 1}), ErrInvalidItem)
	})
}

// TestCart_UpdateQuantity 测试数量修改
func TestCart_UpdateQuantity(t *testing.T) {
	newTestCart := func() *Cart {
		c := NewCart(1)
		c.Items = []Item{
			{ID: 1, BookID: 10, Price: 10000, Quantity: 2},
			{ID: 2, StudentBookID: 20, Price: 20000, Quantity: 1},
		}
		c.recompute()
		return c
	}

	t.Run("正常修改", func(t *testing.T) {
		c := newTestCart()
		require.NoError(t, c.UpdateQuantity(1, 5))
		assert.Equal(t, 5, c.Items[0].Quantity)
		assert.Equal(t, int64(10000*5+20000), c.TotalPrice)
	})

	t.Run("数量归零等价删除", func(t *testing.T) {
		c := newTestCart()
		require.NoError(t, c.UpdateQuantity(1, 0))
		assert.Len(t, c.Items, 1, "数量<=0应删除该行而非报错")
		assert.Equal(t, int64(20000), c.TotalPrice)
	})

	t.Run("行不存在", func(t *testing.T) {
		c := newTestCart()
		assert.ErrorIs(t, c.UpdateQuantity(99, 1), ErrItemNotFound)
	})
}

// TestCart_RemoveAndClear 测试删除与清空
func TestCart_RemoveAndClear(t *testing.T) {
	c := NewCart(1)
	c.Items = []Item{
		{ID: 1, BookID: 10, Price: 10000, Quantity: 1},
		{ID: 2, BookID: 11, Price: 5000, Quantity: 2},
	}
	c.recompute()

	require.NoError(t, c.RemoveItem(1))
	assert.Len(t, c.Items, 1)
	assert.Equal(t, int64(10000), c.TotalPrice)

	assert.ErrorIs(t, c.RemoveItem(1), ErrItemNotFound, "重复删除应报错")

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.TotalPrice)
}

// TestItem_Subtotal 测试行项小计
func TestItem_Subtotal(t *testing.T) {
	item := Item{Price: 12345, Quantity: 3}
	assert.Equal(t, int64(37035), item.Subtotal())
}
