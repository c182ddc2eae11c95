package order

import (
	"github.com/navyap013/bookhub/internal/domain/order"
)

const timeLayout = "2006-01-02 15:04:05"

// ItemDTO 订单明细DTO
type ItemDTO struct {
	BookID        uint   `json:"book_id,omitempty"`
	StudentBookID uint   `json:"student_book_id,omitempty"`
	Name          string `json:"name"`
	Image         string `json:"image"`
	Price         int64  `json:"price"`
	Quantity      int    `json:"quantity"`
}

// AddressDTO 收货地址DTO
type AddressDTO struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// OrderDTO 订单DTO
type OrderDTO struct {
	ID            uint       `json:"id"`
	InvoiceNo     string     `json:"invoice_no"`
	Items         []ItemDTO  `json:"items"`
	Address       AddressDTO `json:"address"`
	PaymentMethod string     `json:"payment_method"`
	ItemsPrice    int64      `json:"items_price"`
	ShippingPrice int64      `json:"shipping_price"`
	TaxPrice      int64      `json:"tax_price"`
	TotalPrice    int64      `json:"total_price"`
	IsPaid        bool       `json:"is_paid"`
	PaidAt        string     `json:"paid_at,omitempty"`
	Status        string     `json:"status"`
	TrackingNo    string     `json:"tracking_no,omitempty"`
	IsDelivered   bool       `json:"is_delivered"`
	DeliveredAt   string     `json:"delivered_at,omitempty"`
	CreatedAt     string     `json:"created_at"`
}

// ToOrderDTO 实体转DTO
func ToOrderDTO(o *order.Order) OrderDTO {
	items := make([]ItemDTO, len(o.Items))
	for i, it := range o.Items {
		items[i] = ItemDTO{
			BookID:        it.BookID,
			StudentBookID: it.StudentBookID,
			Name:          it.Name,
			Image:         it.Image,
			Price:         it.Price,
			Quantity:      it.Quantity,
		}
	}

	dto := OrderDTO{
		ID:        o.ID,
		InvoiceNo: o.InvoiceNo,
		Items:     items,
		Address: AddressDTO{
			Name:    o.Address.Name,
			Phone:   o.Address.Phone,
			Address: o.Address.Address,
			City:    o.Address.City,
			State:   o.Address.State,
			Pincode: o.Address.Pincode,
		},
		PaymentMethod: o.PaymentMethod,
		ItemsPrice:    o.ItemsPrice,
		ShippingPrice: o.ShippingPrice,
		TaxPrice:      o.TaxPrice,
		TotalPrice:    o.TotalPrice,
		IsPaid:        o.IsPaid,
		Status:        string(o.Status),
		TrackingNo:    o.TrackingNo,
		IsDelivered:   o.IsDelivered,
		CreatedAt:     o.CreatedAt.Format(timeLayout),
	}
	if o.PaidAt != nil {
		dto.PaidAt = o.PaidAt.Format(timeLayout)
	}
	if o.DeliveredAt != nil {
		dto.DeliveredAt = o.DeliveredAt.Format(timeLayout)
	}
	return dto
}

// ToOrderDTOs 批量转换
func ToOrderDTOs(orders []*order.Order) []OrderDTO {
	list := make([]OrderDTO, len(orders))
	for i, o := range orders {
		list[i] = ToOrderDTO(o)
	}
	return list
}
