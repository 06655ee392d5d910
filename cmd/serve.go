package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/CSCI-GA-2820-SP25-003/customers/internal/config"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/db"
	httpSrv "github.com/CSCI-GA-2820-SP25-003/customers/internal/http"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/kafka"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/logger"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/metrics"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/repository"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/service/customer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log, err := logger.New(cfg.App.LogLevel, cfg.App.LogEncoding)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = log.Sync() }()
		log = log.With(zap.String("app", cfg.App.Name))

		sqlDB, err := openDB(cfg.Database)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		redisClient, err := db.NewRedisClient(db.RedisOpts{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: cfg.Redis.DialTimeout,
		})
		if err != nil {
			return fmt.Errorf("redis connect: %w", err)
		}
		if redisClient != nil {
			defer func() { _ = redisClient.Close() }()
		} else {
			log.Info("redis not configured, rate limiting disabled")
		}

		var publisher customer.Publisher = customer.NopPublisher{}
		if len(cfg.Kafka.Brokers) > 0 {
			producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
			defer func() { _ = producer.Close() }()
			publisher = producer
		} else {
			log.Info("kafka not configured, lifecycle events disabled")
		}

		metrics.MustRegister(prometheus.DefaultRegisterer)

		svc := customer.New(repository.NewCustomersRepository(sqlDB), publisher, log.Named("customers"))
		server := httpSrv.NewServer(cfg, svc, redisClient, log.Named("http"))

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start(cfg.HTTP.Addr)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			log.Info("signal received, shutting down", zap.String("signal", sig.String()))
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("http server exited", zap.Error(err))
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Warn("http shutdown", zap.Error(err))
		}
		return nil
	},
}
