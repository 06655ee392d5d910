package cmd

import (
	"fmt"
	"os"

	"github.com/CSCI-GA-2820-SP25-003/customers/cmd/events"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/config"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/db"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	rootCmd = &cobra.Command{
		Use:   "customers",
		Short: "Customer REST API service",
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(events.NewEventsCmd())
}

func openDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dbx, err := db.NewSQLConnection(cfg.Driver, cfg.DSN, db.SQLOpts{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		PingTimeout:     cfg.PingTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("%s connect: %w", cfg.Driver, err)
	}
	return dbx, nil
}
