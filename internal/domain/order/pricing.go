package order

// Pricing 订单价格拆解（全部为paise）
type Pricing struct {
	ItemsPrice    int64
	ShippingPrice int64
	TaxPrice      int64
	TotalPrice    int64
}

// 结算规则常量
// 商品总价严格大于500卢比（50000paise）免运费，否则运费50卢比；税率18%（GST）
const (
	freeShippingThreshold = 50000
	flatShippingFee       = 5000
	taxRatePercent        = 18
)

// ComputePricing 由商品总价计算完整价格拆解
// 整数运算示例：
//   40000 -> 运费5000、税7200、合计52200
//   60000 -> 运费0、税10800、合计70800
// 注意阈值是严格大于：恰好50000仍收运费
func ComputePricing(itemsPrice int64) Pricing {
	var shipping int64 = flatShippingFee
	if itemsPrice > freeShippingThreshold {
		shipping = 0
	}
	tax := itemsPrice * taxRatePercent / 100
	return Pricing{
		ItemsPrice:    itemsPrice,
		ShippingPrice: shipping,
		TaxPrice:      tax,
		TotalPrice:    itemsPrice + shipping + tax,
	}
}
