package order

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateInvoiceNo 生成发票号
// 格式：INV-<unix秒>-<3位随机数>
// 示例：INV-1767072000-042
// 时间戳保证粗粒度有序，随机后缀避免同秒冲突；
// 唯一性最终由数据库UNIQUE索引兜底
func GenerateInvoiceNo() string {
	return fmt.Sprintf("INV-%d-%03d", time.Now().Unix(), rand.Intn(1000))
}
