// Package payment Razorpay支付网关接入
//
// 设计说明：
// 1. 下单后创建网关支付会话（gateway order），前端用其ID唤起收银台
// 2. 网关调用包在熔断器里：网关故障时快速失败，订单流程不被拖垮
// 3. 支付回调签名用HMAC-SHA256("order_id|payment_id", key_secret)校验，
//    防止伪造支付成功请求
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/navyap013/bookhub/internal/infrastructure/config"
	"github.com/navyap013/bookhub/pkg/circuitbreaker"
	apperrors "github.com/navyap013/bookhub/pkg/errors"
	"github.com/navyap013/bookhub/pkg/metrics"
)

// Session 网关支付会话
type Session struct {
	GatewayOrderID string // 收银台需要的网关订单ID
	Amount         int64  // paise
	Currency       string
	KeyID          string // 前端初始化收银台用的公开key
}

// Gateway 支付网关接口（便于测试注入假实现）
type Gateway interface {
	// CreateSession 为订单创建支付会话
	CreateSession(invoiceNo string, amount int64) (*Session, error)

	// VerifySignature 校验支付回调签名
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

type razorpayGateway struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
	currency  string
	breaker   *circuitbreaker.CircuitBreaker
}

// NewGateway 创建Razorpay网关客户端
func NewGateway(cfg *config.Config) Gateway {
	cb := circuitbreaker.New("razorpay", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(c circuitbreaker.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
	})
	cb.OnStateChange(func(name string, from, to circuitbreaker.State) {
		metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
	})

	return &razorpayGateway{
		client:    razorpay.NewClient(cfg.Payment.KeyID, cfg.Payment.KeySecret),
		keyID:     cfg.Payment.KeyID,
		keySecret: cfg.Payment.KeySecret,
		currency:  cfg.Payment.Currency,
		breaker:   cb,
	}
}

// CreateSession 创建支付会话
func (g *razorpayGateway) CreateSession(invoiceNo string, amount int64) (*Session, error) {
	var gatewayOrderID string

	err := g.breaker.Execute(func() error {
		data := map[string]interface{}{
			"amount":   amount, // Razorpay以最小货币单位计价，与内部paise一致
			"currency": g.currency,
			"receipt":  invoiceNo,
		}
		body, err := g.client.Order.Create(data, nil)
		if err != nil {
			return err
		}

		id, ok := body["id"].(string)
		if !ok || id == "" {
			return fmt.Errorf("网关返回缺少订单ID: %v", body)
		}
		gatewayOrderID = id
		return nil
	})
	if err != nil {
		metrics.IncCounterVec(metrics.PaymentSessionsTotal, map[string]string{"result": "failure"})
		return nil, apperrors.New(apperrors.ErrCodePaymentError, "创建支付会话失败").WithCause(err)
	}

	metrics.IncCounterVec(metrics.PaymentSessionsTotal, map[string]string{"result": "success"})
	return &Session{
		GatewayOrderID: gatewayOrderID,
		Amount:         amount,
		Currency:       g.currency,
		KeyID:          g.keyID,
	}, nil
}

// VerifySignature 校验支付回调签名
// expected = HMAC-SHA256(gatewayOrderID + "|" + paymentID, keySecret)的hex编码
func (g *razorpayGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
