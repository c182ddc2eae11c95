package order

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComputePricing 测试结算定价规则
func TestComputePricing(t *testing.T) {
	t.Run("低于免运费阈值", func(t *testing.T) {
		p := ComputePricing(40000)
		assert.Equal(t, int64(40000), p.ItemsPrice)
		assert.Equal(t, int64(5000), p.ShippingPrice, "400卢比应收运费")
		assert.Equal(t, int64(7200), p.TaxPrice, "税率18%")
		assert.Equal(t, int64(52200), p.TotalPrice)
	})

	t.Run("高于免运费阈值", func(t *testing.T) {
		p := ComputePricing(60000)
		assert.Equal(t, int64(0), p.ShippingPrice, "600卢比应免运费")
		assert.Equal(t, int64(10800), p.TaxPrice)
		assert.Equal(t, int64(70800), p.TotalPrice)
	})

	t.Run("恰好等于阈值仍收运费", func(t *testing.T) {
		p := ComputePricing(50000)
		assert.Equal(t, int64(5000), p.ShippingPrice, "阈值是严格大于，恰好500卢比不免运费")
	})

	t.Run("税额整数截断", func(t *testing.T) {
		// 99 * 18 / 100 = 17.82，整数运算截断为17
		p := ComputePricing(99)
		assert.Equal(t, int64(17), p.TaxPrice)
	})
}

// TestOrder_StatusTransitions 测试订单状态机
func TestOrder_StatusTransitions(t *testing.T) {
	newTestOrder := func() *Order {
		return NewOrder(GenerateInvoiceNo(), 1, []Item{{BookID: 1, Price: 10000, Quantity: 1}},
			ShippingAddress{Name: "测试用户"}, "COD", ComputePricing(10000))
	}

	t.Run("正常流转", func(t *testing.T) {
		o := newTestOrder()
		assert.Equal(t, StatusPending, o.Status, "初始状态应为Pending")

		require.NoError(t, o.TransitionTo(StatusProcessing))
		require.NoError(t, o.TransitionTo(StatusShipped))
		require.NoError(t, o.TransitionTo(StatusDelivered))
	})

	t.Run("跳级流转应失败", func(t *testing.T) {
		o := newTestOrder()
		err := o.TransitionTo(StatusShipped)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition, "Pending不能直接发货")
		assert.Equal(t, StatusPending, o.Status, "失败后状态不变")
	})

	t.Run("送达前任意状态可取消", func(t *testing.T) {
		o := newTestOrder()
		require.NoError(t, o.TransitionTo(StatusProcessing))
		require.NoError(t, o.Cancel())
		assert.Equal(t, StatusCancelled, o.Status)
	})

	t.Run("终态不可再流转", func(t *testing.T) {
		o := newTestOrder()
		require.NoError(t, o.TransitionTo(StatusProcessing))
		require.NoError(t, o.TransitionTo(StatusShipped))
		require.NoError(t, o.MarkDelivered("TRK123"))

		assert.Error(t, o.Cancel(), "已送达不能取消")
		assert.Error(t, o.TransitionTo(StatusProcessing))

		cancelled := newTestOrder()
		require.NoError(t, cancelled.Cancel())
		assert.Error(t, cancelled.TransitionTo(StatusProcessing), "已取消不能恢复")
	})
}

// TestOrder_MarkPaid 测试支付标记
func TestOrder_MarkPaid(t *testing.T) {
	o := NewOrder(GenerateInvoiceNo(), 1, nil, ShippingAddress{}, "Razorpay", ComputePricing(20000))

	result := PaymentResult{
		PaymentID: "pay_abc",
		OrderID:   "order_abc",
		Signature: "sig",
		Status:    "captured",
	}
	require.NoError(t, o.MarkPaid(result))

	assert.True(t, o.IsPaid)
	assert.NotNil(t, o.PaidAt, "支付时间应被记录")
	assert.Equal(t, StatusProcessing, o.Status, "支付后进入备货状态")
	require.NotNil(t, o.Payment)
	assert.Equal(t, "pay_abc", o.Payment.PaymentID)

	t.Run("重复支付应失败", func(t *testing.T) {
		err := o.MarkPaid(result)
		assert.ErrorIs(t, err, ErrAlreadyPaid)
	})
}

// TestOrder_MarkDelivered 测试送达标记
func TestOrder_MarkDelivered(t *testing.T) {
	o := NewOrder(GenerateInvoiceNo(), 1, nil, ShippingAddress{}, "COD", ComputePricing(10000))
	require.NoError(t, o.TransitionTo(StatusProcessing))
	require.NoError(t, o.TransitionTo(StatusShipped))

	require.NoError(t, o.MarkDelivered("TRK456"))
	assert.True(t, o.IsDelivered)
	assert.NotNil(t, o.DeliveredAt)
	assert.Equal(t, "TRK456", o.TrackingNo)
}

// TestOrder_IsOwnedBy 测试归属校验
func TestOrder_IsOwnedBy(t *testing.T) {
	o := NewOrder(GenerateInvoiceNo(), 42, nil, ShippingAddress{}, "COD", Pricing{})
	assert.True(t, o.IsOwnedBy(42))
	assert.False(t, o.IsOwnedBy(7))
}

// TestGenerateInvoiceNo 测试发票号格式
func TestGenerateInvoiceNo(t *testing.T) {
	pattern := regexp.MustCompile(`^INV-\d+-\d{3}$`)
	for i := 0; i < 10; i++ {
		no := GenerateInvoiceNo()
		assert.Regexp(t, pattern, no, "发票号格式应为INV-<unix秒>-<3位随机数>")
	}
}

// TestStatus_Valid 测试状态值校验
func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, Status("Unknown").Valid())
	assert.False(t, Status("").Valid())
}
