package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/CSCI-GA-2820-SP25-003/customers/internal/kafka"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/model"
	"go.uber.org/zap"
)

// Source is the part of kafka.Consumer the tailer needs.
type Source interface {
	Fetch(ctx context.Context) (kafka.Message, error)
	Commit(ctx context.Context, m kafka.Message) error
}

var _ Source = (*kafka.Consumer)(nil)

// EventTailer reads lifecycle events and hands each decoded event to Handle.
// Undecodable messages are logged and committed so they are not redelivered.
type EventTailer struct {
	Source Source
	Log    *zap.Logger
	Handle func(model.Event)
}

func NewEventTailer(src Source, log *zap.Logger) *EventTailer {
	t := &EventTailer{Source: src, Log: log}
	t.Handle = t.logEvent
	return t
}

// Run blocks until ctx is cancelled or the source fails.
func (t *EventTailer) Run(ctx context.Context) error {
	for {
		m, err := t.Source.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var ev model.Event
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			t.Log.Warn("skip undecodable event",
				zap.Int("partition", m.Partition),
				zap.Int64("offset", m.Offset),
				zap.Error(err),
			)
		} else {
			t.Handle(ev)
		}

		if err := t.Source.Commit(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func (t *EventTailer) logEvent(ev model.Event) {
	t.Log.Info("event",
		zap.String("id", ev.ID),
		zap.String("type", ev.Type.String()),
		zap.Int64("customer_id", ev.CustomerID),
		zap.String("name", ev.Customer.Name),
		zap.Time("occurred_at", ev.OccurredAt),
	)
}
