package events

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CSCI-GA-2820-SP25-003/customers/internal/config"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/kafka"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/logger"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/worker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewEventsCmd returns the parent "events" command.
func NewEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect customer lifecycle events",
	}
	cmd.AddCommand(tailCmd)
	return cmd
}

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Consume and log lifecycle events until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if len(cfg.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers is empty")
		}

		log, err := logger.New(cfg.App.LogLevel, cfg.App.LogEncoding)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		consumer := kafka.NewConsumer(kafka.Config{
			Brokers:        cfg.Kafka.Brokers,
			Topic:          cfg.Kafka.Topic,
			GroupID:        cfg.Kafka.GroupID,
			MinBytes:       cfg.Kafka.MinBytes,
			MaxBytes:       cfg.Kafka.MaxBytes,
			CommitInterval: time.Duration(cfg.Kafka.CommitInterval) * time.Millisecond,
		})
		defer consumer.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info("tailing events",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
			zap.String("group", cfg.Kafka.GroupID),
		)
		return worker.NewEventTailer(consumer, log).Run(ctx)
	},
}
