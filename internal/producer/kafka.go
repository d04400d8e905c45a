package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher builds a publisher writing to topic on the given
// comma-separated broker list.
func NewKafkaPublisher(brokers, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(strings.Split(brokers, ",")...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *KafkaPublisher) PublishBetPlaced(ctx context.Context, e BetPlaced) error {
	e.TsUnixMs = time.Now().UnixMilli()

	return p.publish(ctx, e.MatchID, e)
}

func (p *KafkaPublisher) PublishMatchSettled(ctx context.Context, e MatchSettled) error {
	e.TsUnixMs = time.Now().UnixMilli()

	return p.publish(ctx, e.MatchID, e)
}

// publish keys messages by match id so all events of one match land on
// one partition, in order.
func (p *KafkaPublisher) publish(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: b})
	if err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
