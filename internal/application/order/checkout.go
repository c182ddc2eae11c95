package order

import (
	"context"
	"log"
	"time"

	"github.com/navyap013/bookhub/internal/domain/cart"
	"github.com/navyap013/bookhub/internal/domain/catalog"
	"github.com/navyap013/bookhub/internal/domain/order"
	"github.com/navyap013/bookhub/internal/infrastructure/payment"
	"github.com/navyap013/bookhub/internal/infrastructure/persistence/mysql"
	"github.com/navyap013/bookhub/pkg/metrics"
)

// CheckoutUseCase 结算用例
// 这是整个系统最核心的用例，涉及事务、库存扣减、支付网关
type CheckoutUseCase struct {
	orderRepo       order.Repository
	cartRepo        cart.Repository
	bookRepo        catalog.BookRepository
	studentBookRepo catalog.StudentBookRepository
	txManager       *mysql.TxManager
	gateway         payment.Gateway
}

// NewCheckoutUseCase 创建结算用例
func NewCheckoutUseCase(
	orderRepo order.Repository,
	cartRepo cart.Repository,
	bookRepo catalog.BookRepository,
	studentBookRepo catalog.StudentBookRepository,
	txManager *mysql.TxManager,
	gateway payment.Gateway,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		orderRepo:       orderRepo,
		cartRepo:        cartRepo,
		bookRepo:        bookRepo,
		studentBookRepo: studentBookRepo,
		txManager:       txManager,
		gateway:         gateway,
	}
}

// CheckoutRequest 结算请求DTO
type CheckoutRequest struct {
	UserID        uint
	PaymentMethod string // Razorpay | COD
	Address       AddressDTO
}

// CheckoutResponse 结算响应DTO
// Razorpay订单附带支付会话信息，前端用它拉起收银台；
// COD订单PaymentSession为nil
type CheckoutResponse struct {
	Order          OrderDTO           `json:"order"`
	PaymentSession *PaymentSessionDTO `json:"payment_session,omitempty"`
}

// PaymentSessionDTO 支付会话DTO
type PaymentSessionDTO struct {
	GatewayOrderID string `json:"gateway_order_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"key_id"`
}

// Execute 执行结算
// 业务规则：
// 1. 空购物车不允许结算
// 2. 订单明细是购物车行项在结算时刻的按值拷贝（快照）
// 3. 价格汇总统一由ComputePricing计算（运费、税费）
// 4. 建单、扣库存、清空购物车在同一事务内，任一步失败整体回滚
// 5. 库存扣减由仓储做原子守卫（stock + delta >= 0），并发下不会超卖
// 6. 支付会话创建在事务提交之后：网关失败只记日志，订单保留为
//    Pending待支付，前端可以重新发起支付
func (uc *CheckoutUseCase) Execute(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	start := time.Now()
	defer func() {
		metrics.ObserveHistogram(metrics.CheckoutDuration, time.Since(start).Seconds())
	}()

	if req.PaymentMethod != "Razorpay" && req.PaymentMethod != "COD" {
		return nil, order.ErrInvalidPaymentMethod
	}

	// 1. 读取购物车
	c, err := uc.cartRepo.FindByUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsEmpty() {
		return nil, cart.ErrEmptyCart
	}

	// 2. 拷贝明细、计算价格
	items := make([]order.Item, len(c.Items))
	for i, it := range c.Items {
		items[i] = order.Item{
			BookID:        it.BookID,
			StudentBookID: it.StudentBookID,
			Name:          it.Name,
			Image:         it.Image,
			Price:         it.Price,
			Quantity:      it.Quantity,
		}
	}
	pricing := order.ComputePricing(c.TotalPrice)

	newOrder := order.NewOrder(order.GenerateInvoiceNo(), req.UserID, items, order.ShippingAddress{
		Name:    req.Address.Name,
		Phone:   req.Address.Phone,
		Address: req.Address.Address,
		City:    req.Address.City,
		State:   req.Address.State,
		Pincode: req.Address.Pincode,
	}, req.PaymentMethod, pricing)

	// 3. 事务：建单 + 扣库存 + 清空购物车
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.orderRepo.Create(txCtx, newOrder); err != nil {
			return err
		}

		// 扣减库存：UpdateStock内部执行
		// UPDATE ... SET stock = stock + ? WHERE id = ? AND stock + ? >= 0
		// 不满足时返回ErrInsufficientStock，事务回滚
		for _, it := range items {
			if it.BookID != 0 {
				if err := uc.bookRepo.UpdateStock(txCtx, it.BookID, -it.Quantity); err != nil {
					return err
				}
			} else {
				if err := uc.studentBookRepo.UpdateStock(txCtx, it.StudentBookID, -it.Quantity); err != nil {
					return err
				}
			}
		}

		return uc.cartRepo.Clear(txCtx, c.ID)
	})
	if err != nil {
		metrics.IncCounter(metrics.OrdersFailedTotal)
		return nil, err
	}
	metrics.IncCounter(metrics.OrdersCreatedTotal)

	resp := &CheckoutResponse{Order: ToOrderDTO(newOrder)}

	// 4. 在线支付：创建网关会话（事务外）
	if req.PaymentMethod == "Razorpay" {
		session, err := uc.gateway.CreateSession(newOrder.InvoiceNo, newOrder.TotalPrice)
		if err != nil {
			// 订单已落库，网关失败不回滚，留给前端重试支付
			log.Printf("支付会话创建失败: invoice=%s err=%v", newOrder.InvoiceNo, err)
		} else {
			resp.PaymentSession = &PaymentSessionDTO{
				GatewayOrderID: session.GatewayOrderID,
				Amount:         session.Amount,
				Currency:       session.Currency,
				KeyID:          session.KeyID,
			}
		}
	}

	return resp, nil
}
