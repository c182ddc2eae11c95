package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/navyap013/bookhub/internal/domain/order"
	apperrors "github.com/navyap013/bookhub/pkg/errors"
)

// orderRepository 订单仓储实现（MySQL）
// 同时实现ebook.PurchaseChecker（HasPaidOrderWith*）
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单（头+明细一起落库）
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "发票号已存在")
		}
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	for i := range model.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	return nil
}

// FindByID 根据ID查找订单（含明细）
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).Preload("Items").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// Update 更新订单头（明细不可变，不更新）
func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	updates := map[string]interface{}{
		"status":       string(o.Status),
		"is_paid":      o.IsPaid,
		"paid_at":      o.PaidAt,
		"tracking_no":  o.TrackingNo,
		"is_delivered": o.IsDelivered,
		"delivered_at": o.DeliveredAt,
	}
	if o.Payment != nil {
		updates["payment_id"] = o.Payment.PaymentID
		updates["gateway_order"] = o.Payment.OrderID
		updates["pay_signature"] = o.Payment.Signature
		updates["pay_status"] = o.Payment.Status
	}

	result := getDB(ctx, r.db).Model(&OrderModel{}).Where("id = ?", o.ID).Updates(updates)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// ListByUser 用户订单列表，创建时间倒序
func (r *orderRepository) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	var models []OrderModel
	var total int64

	query := getDB(ctx, r.db).Model(&OrderModel{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Items").Order("created_at DESC").
		Limit(pageSize).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	return toOrderEntities(models), total, nil
}

// List 管理端全量订单列表
func (r *orderRepository) List(ctx context.Context, status order.Status, page, pageSize int) ([]*order.Order, int64, error) {
	var models []OrderModel
	var total int64

	query := getDB(ctx, r.db).Model(&OrderModel{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Items").Order("created_at DESC").
		Limit(pageSize).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	return toOrderEntities(models), total, nil
}

// HasPaidOrderWithBook 用户的已支付订单中是否包含指定图书
// 电子书purchase解锁的判定依据
func (r *orderRepository) HasPaidOrderWithBook(ctx context.Context, userID, bookID uint) (bool, error) {
	return r.hasPaidOrderWith(ctx, userID, "order_items.book_id = ?", bookID)
}

// HasPaidOrderWithStudentBook 同上，教材维度
func (r *orderRepository) HasPaidOrderWithStudentBook(ctx context.Context, userID, studentBookID uint) (bool, error) {
	return r.hasPaidOrderWith(ctx, userID, "order_items.student_book_id = ?", studentBookID)
}

func (r *orderRepository) hasPaidOrderWith(ctx context.Context, userID uint, cond string, id uint) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&OrderItemModel{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.is_paid = ?", userID, true).
		Where(cond, id).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询购买记录失败")
	}
	return count > 0, nil
}

// PaidItemsByUser 用户已支付订单的全部明细（推荐画像提取用）
func (r *orderRepository) PaidItemsByUser(ctx context.Context, userID uint) ([]order.Item, error) {
	var models []OrderItemModel
	err := getDB(ctx, r.db).Model(&OrderItemModel{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.is_paid = ?", userID, true).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询购买明细失败")
	}

	items := make([]order.Item, len(models))
	for i, m := range models {
		items[i] = toOrderItemEntity(&m)
	}
	return items, nil
}

// toOrderModel 领域实体 -> GORM模型
func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			BookID:        item.BookID,
			StudentBookID: item.StudentBookID,
			Name:          item.Name,
			Image:         item.Image,
			Price:         item.Price,
			Quantity:      item.Quantity,
		}
	}

	model := &OrderModel{
		InvoiceNo:     o.InvoiceNo,
		UserID:        o.UserID,
		PaymentMethod: o.PaymentMethod,
		ItemsPrice:    o.ItemsPrice,
		ShippingPrice: o.ShippingPrice,
		TaxPrice:      o.TaxPrice,
		TotalPrice:    o.TotalPrice,
		IsPaid:        o.IsPaid,
		PaidAt:        o.PaidAt,
		Status:        string(o.Status),
		TrackingNo:    o.TrackingNo,
		IsDelivered:   o.IsDelivered,
		DeliveredAt:   o.DeliveredAt,
		ShipName:      o.Address.Name,
		ShipPhone:     o.Address.Phone,
		ShipAddress:   o.Address.Address,
		ShipCity:      o.Address.City,
		ShipState:     o.Address.State,
		ShipPincode:   o.Address.Pincode,
		Items:         items,
	}
	if o.Payment != nil {
		model.PaymentID = o.Payment.PaymentID
		model.GatewayOrder = o.Payment.OrderID
		model.PaySignature = o.Payment.Signature
		model.PayStatus = o.Payment.Status
	}
	return model
}

// toOrderEntity GORM模型 -> 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	items := make([]order.Item, len(model.Items))
	for i := range model.Items {
		items[i] = toOrderItemEntity(&model.Items[i])
	}

	o := &order.Order{
		ID:            model.ID,
		InvoiceNo:     model.InvoiceNo,
		UserID:        model.UserID,
		Items:         items,
		PaymentMethod: model.PaymentMethod,
		ItemsPrice:    model.ItemsPrice,
		ShippingPrice: model.ShippingPrice,
		TaxPrice:      model.TaxPrice,
		TotalPrice:    model.TotalPrice,
		IsPaid:        model.IsPaid,
		PaidAt:        model.PaidAt,
		Status:        order.Status(model.Status),
		TrackingNo:    model.TrackingNo,
		IsDelivered:   model.IsDelivered,
		DeliveredAt:   model.DeliveredAt,
		Address: order.ShippingAddress{
			Name:    model.ShipName,
			Phone:   model.ShipPhone,
			Address: model.ShipAddress,
			City:    model.ShipCity,
			State:   model.ShipState,
			Pincode: model.ShipPincode,
		},
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.PaymentID != "" || model.GatewayOrder != "" {
		o.Payment = &order.PaymentResult{
			PaymentID: model.PaymentID,
			OrderID:   model.GatewayOrder,
			Signature: model.PaySignature,
			Status:    model.PayStatus,
		}
	}
	return o
}

func toOrderItemEntity(m *OrderItemModel) order.Item {
	return order.Item{
		ID:            m.ID,
		OrderID:       m.OrderID,
		BookID:        m.BookID,
		StudentBookID: m.StudentBookID,
		Name:          m.Name,
		Image:         m.Image,
		Price:         m.Price,
		Quantity:      m.Quantity,
	}
}

func toOrderEntities(models []OrderModel) []*order.Order {
	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders
}
