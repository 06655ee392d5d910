package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/CSCI-GA-2820-SP25-003/customers/internal/config"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/model"
	"github.com/CSCI-GA-2820-SP25-003/customers/internal/repository"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo customers",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1) load config
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// 2) connect
		sqlDB, err := openDB(cfg.Database)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		log.Println(">> Seeding demo customers...")
		n, err := seedCustomers(cmd.Context(), repository.NewCustomersRepository(sqlDB))
		if err != nil {
			return err
		}
		log.Printf(">> Seed completed: %d customers", n)
		return nil
	},
}

// seedCustomers inserts demo customers whose email is not stored yet.
func seedCustomers(ctx context.Context, repo repository.CustomersRepository) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	customers := []model.Customer{
		{Name: "Acme Corp", Address: "1 Industrial Way, Springfield", Email: "billing@acme.example", PhoneNumber: "+1-555-0100"},
		{Name: "Foobar LLC", Address: "42 Main St, Shelbyville", Email: "ops@foobar.example", PhoneNumber: "+1-555-0142"},
		{Name: "Beta Testers", Address: "7 Lab Rd, Capital City", Email: "qa@beta.example", PhoneNumber: "+1-555-0107"},
		{Name: "Jane Doe", Address: "19 Elm St, Ogdenville", Email: "jane@doe.example", PhoneNumber: "+1-555-0119"},
		{Name: "Express Partner", Address: "100 Harbor Blvd, North Haverbrook", Email: "hello@express.example", PhoneNumber: "+1-555-0200"},
	}

	inserted := 0
	for i := range customers {
		existing, err := repo.FindByField(ctx, model.FieldEmail, customers[i].Email)
		if err != nil {
			return inserted, fmt.Errorf("lookup %q: %w", customers[i].Email, err)
		}
		if len(existing) > 0 {
			continue
		}
		if err := repo.Create(ctx, &customers[i]); err != nil {
			return inserted, fmt.Errorf("insert customer %q: %w", customers[i].Name, err)
		}
		inserted++
	}
	return inserted, nil
}
