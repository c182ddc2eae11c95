package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(timeout time.Duration, trip func(Counts) bool) *CircuitBreaker {
	return New("test", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     timeout,
		ReadyToTrip: trip,
	})
}

// TestCircuitBreaker_Closed 测试关闭状态下正常放行
func TestCircuitBreaker_Closed(t *testing.T) {
	cb := newTestBreaker(30*time.Second, func(c Counts) bool {
		return c.ConsecutiveFailures >= 5
	})

	for i := 0; i < 10; i++ {
		if err := cb.Execute(func() error { return nil }); err != nil {
			t.Fatalf("期望成功，实际失败: %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED，实际%s", cb.State())
	}
	if counts := cb.Counts(); counts.TotalSuccesses != 10 {
		t.Errorf("期望成功10次，实际%d次", counts.TotalSuccesses)
	}
}

// TestCircuitBreaker_Open 测试连续失败触发熔断
func TestCircuitBreaker_Open(t *testing.T) {
	cb := newTestBreaker(30*time.Second, func(c Counts) bool {
		return c.ConsecutiveFailures >= 5
	})

	for i := 0; i < 5; i++ {
		_ = cb.Execute(func() error {
			return errors.New("gateway timeout")
		})
	}

	if cb.State() != StateOpen {
		t.Errorf("期望状态为OPEN，实际%s", cb.State())
	}

	// 熔断后快速失败，实际函数不被调用
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	if err != ErrOpenState {
		t.Errorf("期望返回ErrOpenState，实际%v", err)
	}
	if called {
		t.Error("熔断器打开时不应该调用实际函数")
	}
}

// TestCircuitBreaker_HalfOpenRecovery 测试半开探测成功后恢复
func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := newTestBreaker(100*time.Millisecond, func(c Counts) bool {
		return c.ConsecutiveFailures >= 3
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}
	if cb.State() != StateOpen {
		t.Fatalf("期望状态为OPEN，实际%s", cb.State())
	}

	// 超时后转半开，探测请求被放行
	time.Sleep(150 * time.Millisecond)

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	if err != nil {
		t.Errorf("半开状态探测请求期望成功，实际%v", err)
	}
	if !called {
		t.Error("半开状态应该放行探测请求")
	}
	if cb.State() != StateClosed {
		t.Errorf("探测成功后期望状态转为CLOSED，实际%s", cb.State())
	}
}

// TestCircuitBreaker_HalfOpenFailure 测试半开探测失败后转回打开
func TestCircuitBreaker_HalfOpenFailure(t *testing.T) {
	cb := newTestBreaker(100*time.Millisecond, func(c Counts) bool {
		return c.ConsecutiveFailures >= 3
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}

	time.Sleep(150 * time.Millisecond)

	_ = cb.Execute(func() error { return errors.New("still down") })

	if cb.State() != StateOpen {
		t.Errorf("探测失败后期望状态转回OPEN，实际%s", cb.State())
	}
}

// TestCircuitBreaker_OnStateChange 测试状态变化回调
func TestCircuitBreaker_OnStateChange(t *testing.T) {
	cb := newTestBreaker(100*time.Millisecond, func(c Counts) bool {
		return c.ConsecutiveFailures >= 3
	})

	var changes []string
	cb.OnStateChange(func(name string, from, to State) {
		changes = append(changes, from.String()+"->"+to.String())
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}
	time.Sleep(150 * time.Millisecond)
	_ = cb.Execute(func() error { return nil })

	expected := []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}
	if len(changes) != len(expected) {
		t.Fatalf("期望%d次状态变化，实际%d次: %v", len(expected), len(changes), changes)
	}
	for i, want := range expected {
		if changes[i] != want {
			t.Errorf("第%d次状态变化期望%s，实际%s", i+1, want, changes[i])
		}
	}
}

// TestCircuitBreaker_FailureRate 测试基于失败率的熔断策略
func TestCircuitBreaker_FailureRate(t *testing.T) {
	cb := New("test", Config{
		MaxRequests: 3,
		Interval:    time.Hour, // 长窗口避免统计被重置
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c Counts) bool {
			return c.Requests >= 10 && c.FailureRate() > 0.5
		},
	})

	// 10次请求里6次失败，失败率60%
	for i := 0; i < 10; i++ {
		ok := i < 4
		_ = cb.Execute(func() error {
			if ok {
				return nil
			}
			return errors.New("fail")
		})
	}

	if cb.State() != StateOpen {
		t.Errorf("失败率超过50%%时期望状态为OPEN，实际%s", cb.State())
	}
}

// mockGateway 模拟不稳定的支付网关
type mockGateway struct {
	failCount int
	callCount int
}

func (g *mockGateway) CreateSession() error {
	g.callCount++
	if g.callCount <= g.failCount {
		return errors.New("gateway unavailable")
	}
	return nil
}

// TestCircuitBreaker_PaymentGateway 模拟支付网关故障与恢复
func TestCircuitBreaker_PaymentGateway(t *testing.T) {
	gw := &mockGateway{failCount: 5}

	cb := New("razorpay", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     200 * time.Millisecond,
		ReadyToTrip: func(c Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
	})
	cb.OnStateChange(func(name string, from, to State) {
		t.Logf("[%s] 状态变化: %s -> %s", name, from, to)
	})

	// 前5次失败触发熔断，之后的请求快速失败不触达网关
	for i := 1; i <= 10; i++ {
		err := cb.Execute(gw.CreateSession)
		if err == ErrOpenState {
			t.Logf("请求#%d: 熔断器打开，快速失败", i)
		} else if err != nil {
			t.Logf("请求#%d: 网关调用失败 (%v)", i, err)
		}
	}
	if gw.callCount != 5 {
		t.Errorf("期望网关实际被调用5次，实际%d次", gw.callCount)
	}

	// 网关恢复，熔断器探测后闭合
	time.Sleep(250 * time.Millisecond)
	if err := cb.Execute(gw.CreateSession); err != nil {
		t.Errorf("网关恢复后期望成功，实际失败: %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("期望状态恢复为CLOSED，实际%s", cb.State())
	}
}

// BenchmarkCircuitBreaker 闭合状态下的执行开销
func BenchmarkCircuitBreaker(b *testing.B) {
	cb := newTestBreaker(30*time.Second, func(c Counts) bool {
		return c.ConsecutiveFailures >= 5
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cb.Execute(func() error { return nil })
	}
}
