package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Kafka 生产者服务
// 定义接口，方便测试和替换
type ProducerService interface {
	Produce(ctx context.Context, key, value []byte) error
	Close()
}

type auditProducer struct {
	writer *kafka.Writer
}

// NewAuditProducer 创建审计事件生产者，批量操作的结果报告会写入该topic
// broker为空时返回空实现，本地开发不依赖kafka
func NewAuditProducer(brokerURL, topic string) ProducerService {
	if brokerURL == "" {
		return &nopProducer{}
	}
	if topic == "" {
		topic = "stockadmin_audit"
	}
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokerURL),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{}, // 保证写入负载均衡
	}
	return &auditProducer{writer: writer}
}

func (p *auditProducer) Produce(ctx context.Context, key, value []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
}

func (p *auditProducer) Close() {
	_ = p.writer.Close()
}

type nopProducer struct{}

func (n *nopProducer) Produce(ctx context.Context, key, value []byte) error { return nil }

func (n *nopProducer) Close() {}
