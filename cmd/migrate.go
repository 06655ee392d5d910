package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CSCI-GA-2820-SP25-003/customers/internal/config"
	"github.com/spf13/cobra"
)

var migrationsDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations (dev: DROP & CREATE tables)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		sqlDB, err := openDB(cfg.Database)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		sqlPath := filepath.Join(migrationsDir, cfg.Database.Driver, "001_init.sql")
		sqlBytes, err := os.ReadFile(sqlPath)
		if err != nil {
			return fmt.Errorf("read migration file %s: %w", sqlPath, err)
		}

		// one statement per Exec; the mysql driver rejects multi-statement strings by default
		for _, stmt := range splitStatements(string(sqlBytes)) {
			if _, err := sqlDB.Exec(stmt); err != nil {
				return fmt.Errorf("exec migration: %w", err)
			}
		}

		fmt.Println(">> Migration complete")
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsDir, "dir", "migrations", "directory holding <driver>/001_init.sql")
}

func splitStatements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		var lines []string
		for _, l := range strings.Split(part, "\n") {
			if t := strings.TrimSpace(l); t != "" && !strings.HasPrefix(t, "--") {
				lines = append(lines, l)
			}
		}
		if stmt := strings.TrimSpace(strings.Join(lines, "\n")); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
