package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	appforum "github.com/navyap013/bookhub/internal/application/forum"
	"github.com/navyap013/bookhub/internal/infrastructure/config"
	"github.com/navyap013/bookhub/pkg/metrics"
	"github.com/navyap013/bookhub/pkg/mq"
)

// 论坛通知服务
// 订阅forum.*事件并生成通知（当前实现落到日志，推送渠道后续接入）。
// 尽力而为语义：处理失败的消息Nack不重入队。
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if cfg.MQ.URL == "" {
		log.Fatal("未配置MQ地址（mq.url）")
	}

	metrics.InitMetrics()

	queue := cfg.MQ.Queue
	if queue == "" {
		queue = "bookhub.forum.notifications"
	}

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, queue, []string{
		"forum.comment",
		"forum.reply",
		"forum.vote",
	})
	if err != nil {
		log.Fatalf("初始化消费者失败: %v", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("✓ 论坛通知服务已启动（queue=%s）\n", queue)

	if err := consumer.Consume(ctx, handleEvent); err != nil && ctx.Err() == nil {
		log.Fatalf("消费中断: %v", err)
	}
	log.Println("通知服务已退出")
}

// handleEvent 将互动事件转成通知文案
func handleEvent(routingKey string, body []byte) error {
	var event appforum.InteractionEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("事件解析失败: %w", err)
	}

	switch routingKey {
	case "forum.comment":
		log.Printf("[通知] %s 评论了帖子#%d", event.UserName, event.PostID)
	case "forum.reply":
		log.Printf("[通知] %s 回复了帖子#%d下的评论#%d", event.UserName, event.PostID, event.CommentID)
	case "forum.vote":
		direction := "赞"
		if event.Vote < 0 {
			direction = "踩"
		}
		log.Printf("[通知] %s 对帖子#%d点了%s", event.UserName, event.PostID, direction)
	default:
		log.Printf("[通知] 未知事件类型: %s", routingKey)
	}
	return nil
}
