package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/navyap013/bookhub/pkg/metrics"
)

// Metrics HTTP请求指标中间件
// 按方法/路由模板/状态码维度统计请求数与耗时
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		if metrics.HTTPRequestsInProgress != nil {
			metrics.HTTPRequestsInProgress.Inc()
			defer metrics.HTTPRequestsInProgress.Dec()
		}

		c.Next()

		// FullPath返回路由模板（/api/v1/books/:id），避免指标基数爆炸
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		labels := map[string]string{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		}
		metrics.IncCounterVec(metrics.HTTPRequestsTotal, labels)
		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
			"method": c.Request.Method,
			"path":   path,
		}, time.Since(start).Seconds())
	}
}
