package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/CSCI-GA-2820-SP25-003/customers/internal/model"
	"github.com/segmentio/kafka-go"
)

// Producer publishes customer lifecycle events, keyed by customer id so that
// events for one customer stay ordered within a partition.
type Producer struct {
	w *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// Publish writes ev synchronously.
func (p *Producer) Publish(ctx context.Context, ev model.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.CustomerID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
		},
	})
}

func (p *Producer) Close() error { return p.w.Close() }
