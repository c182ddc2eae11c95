package order

import (
	"time"
)

// Status 订单状态
// 线性流转：Pending -> Processing -> Shipped -> Delivered
// Cancelled是吸收态，Delivered之前任意状态都可取消
type Status string

const (
	StatusPending    Status = "Pending"    // 已创建，未支付
	StatusProcessing Status = "Processing" // 已支付，备货中
	StatusShipped    Status = "Shipped"    // 已发货
	StatusDelivered  Status = "Delivered"  // 已送达（终态）
	StatusCancelled  Status = "Cancelled"  // 已取消（终态）
)

// Valid 校验状态值
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Item 订单明细项
// 下单时从购物车按值拷贝的不可变快照，此后商品改价/改名都不影响订单
type Item struct {
	ID            uint
	OrderID       uint
	BookID        uint
	StudentBookID uint
	Name          string
	Image         string
	Price         int64 // 下单时单价（paise）
	Quantity      int
}

// PaymentResult 支付结果（支付网关回传）
type PaymentResult struct {
	PaymentID string // 网关支付ID
	OrderID   string // 网关订单ID
	Signature string // 网关签名（已验证）
	Status    string // captured | failed
}

// ShippingAddress 收货地址快照
type ShippingAddress struct {
	Name    string
	Phone   string
	Address string
	City    string
	State   string
	Pincode string
}

// Order 订单实体（聚合根）
// 设计说明：
// 1. 订单是购物车在结算时刻的不可变快照
// 2. 四个价格字段独立存储：ItemsPrice + ShippingPrice + TaxPrice = TotalPrice
// 3. InvoiceNo业务主键（时间戳+随机后缀），全局唯一
// 4. 支付与配送各有独立的标志+时间戳（IsPaid/PaidAt、IsDelivered/DeliveredAt）
type Order struct {
	ID            uint
	InvoiceNo     string
	UserID        uint
	Items         []Item
	Address       ShippingAddress
	PaymentMethod string // Razorpay | COD
	ItemsPrice    int64
	ShippingPrice int64
	TaxPrice      int64
	TotalPrice    int64
	IsPaid        bool
	PaidAt        *time.Time
	Payment       *PaymentResult
	Status        Status
	TrackingNo    string
	IsDelivered   bool
	DeliveredAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOrder 创建订单（工厂方法）
// 价格由ComputePricing统一计算后传入，初始状态Pending
func NewOrder(invoiceNo string, userID uint, items []Item, address ShippingAddress, paymentMethod string, pricing Pricing) *Order {
	now := time.Now()
	return &Order{
		InvoiceNo:     invoiceNo,
		UserID:        userID,
		Items:         items,
		Address:       address,
		PaymentMethod: paymentMethod,
		ItemsPrice:    pricing.ItemsPrice,
		ShippingPrice: pricing.ShippingPrice,
		TaxPrice:      pricing.TaxPrice,
		TotalPrice:    pricing.TotalPrice,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// CanTransitionTo 状态机校验
func (o *Order) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusPending:    {StatusProcessing, StatusCancelled},
		StatusProcessing: {StatusShipped, StatusCancelled},
		StatusShipped:    {StatusDelivered, StatusCancelled},
		StatusDelivered:  {},
		StatusCancelled:  {},
	}

	allowed, ok := transitions[o.Status]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// TransitionTo 状态转换，非法跳转返回错误
func (o *Order) TransitionTo(target Status) error {
	if !o.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// MarkPaid 标记已支付（领域行为）
// 支付结果落到订单上并流转到Processing
func (o *Order) MarkPaid(result PaymentResult) error {
	if o.IsPaid {
		return ErrAlreadyPaid
	}
	if err := o.TransitionTo(StatusProcessing); err != nil {
		return err
	}
	now := time.Now()
	o.IsPaid = true
	o.PaidAt = &now
	o.Payment = &result
	return nil
}

// MarkDelivered 标记已送达
func (o *Order) MarkDelivered(trackingNo string) error {
	if err := o.TransitionTo(StatusDelivered); err != nil {
		return err
	}
	now := time.Now()
	o.IsDelivered = true
	o.DeliveredAt = &now
	if trackingNo != "" {
		o.TrackingNo = trackingNo
	}
	return nil
}

// Cancel 取消订单
func (o *Order) Cancel() error {
	return o.TransitionTo(StatusCancelled)
}

// IsOwnedBy 订单归属校验，防止访问他人订单
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}
