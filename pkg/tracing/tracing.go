// Package tracing OpenTelemetry分布式追踪
//
// BookHub中的用途：串联一次请求经过的各层调用
// （HTTP入口 -> 应用服务 -> 仓储 -> 外部支付网关），
// 排查慢请求时可以在Jaeger/Tempo里看到完整调用链。
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// Config 追踪配置
type Config struct {
	ServiceName string
	// Endpoint OTLP gRPC收集端地址，如 localhost:4317
	Endpoint string
	// SampleRate 采样率，0-1之间；生产环境建议0.1以内
	SampleRate float64
}

// InitTracer 初始化全局TracerProvider
// 返回的关闭函数应在进程退出前调用，确保缓冲的span都已上报
func InitTracer(cfg Config) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRate))),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// Tracer 获取业务层使用的tracer
func Tracer() trace.Tracer {
	return otel.Tracer("bookhub")
}

// StartSpan 开启一个子span，业务代码中手动埋点用
//
//	ctx, span := tracing.StartSpan(ctx, "order.checkout")
//	defer span.End()
func StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name)
}

// TraceID 从上下文提取当前trace ID，没有有效trace时返回空串
// 写入响应头或日志，方便用户反馈问题时定位
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
