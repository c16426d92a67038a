package event

import (
	"encoding/json"
	"time"

	"skillreel_backend/pkg/logger"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// 路由键约定：watch.reported / quiz.attempted / skill.passed
const (
	WatchReported = "watch.reported"
	QuizAttempted = "quiz.attempted"
	SkillPassed   = "skill.passed"
)

// EventPublisher 把观看/答题领域事件发到 RabbitMQ topic 交换机，
// 供外部分析与推荐子系统消费。未配置时整个发布层为空操作。
type EventPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewEventPublisher(amqpURL, exchange string) (*EventPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &EventPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish 发布失败只记日志，决不影响主流程
func (p *EventPublisher) Publish(eventType string, payload interface{}) {
	if p == nil {
		return
	}

	event := map[string]interface{}{
		"type":      eventType,
		"payload":   payload,
		"timestamp": time.Now(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		logger.Log.Error("Failed to marshal event", zap.String("type", eventType), zap.Error(err))
		return
	}

	err = p.channel.Publish(
		p.exchange,
		eventType, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		logger.Log.Error("Failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}

func (p *EventPublisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
