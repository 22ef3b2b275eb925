package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/moneymappr/internal/budget"
	budgetPostgres "github.com/frahmantamala/moneymappr/internal/budget/postgres"
	"github.com/frahmantamala/moneymappr/internal/core/common/datetime"
	"github.com/frahmantamala/moneymappr/internal/core/datamodel/category"
	"github.com/frahmantamala/moneymappr/internal/database"
	"github.com/frahmantamala/moneymappr/internal/transaction"
	transactionPostgres "github.com/frahmantamala/moneymappr/internal/transaction/postgres"
	"github.com/frahmantamala/moneymappr/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type seedTransaction struct {
	Amount      string
	Description string
	Date        string
	Category    category.Category
}

type seedBudget struct {
	Category category.Category
	Amount   string
	Month    string
}

var sampleTransactions = []seedTransaction{
	{"150.00", "Groceries", "2025-01-15", category.Food},
	{"42.50", "Lunch with team", "2025-01-21", category.Food},
	{"60.00", "Metro card", "2025-01-03", category.Transport},
	{"200.00", "Electricity", "2025-02-03", category.Bills},
	{"89.99", "Running shoes", "2025-02-10", category.Shopping},
	{"35.00", "Taxi", "2025-02-14", category.Transport},
	{"120.00", "Internet and phone", "2025-03-01", category.Bills},
	{"18.75", "Birthday card", "2025-03-08", category.Other},
}

var sampleBudgets = []seedBudget{
	{category.Food, "300.00", "2025-01"},
	{category.Transport, "50.00", "2025-01"},
	{category.Bills, "250.00", "2025-02"},
	{category.Shopping, "100.00", "2025-02"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample transactions and budgets for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		lg := logger.LoggerWrapper()

		pool := database.NewPool(cfg.Database, lg)
		defer pool.Close()

		db, err := pool.Gorm(ctx)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			if err := clearSeedData(db); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			fmt.Println("Cleared existing transactions and budgets")
		}

		queryTimeout := cfg.Database.QueryTimeout
		transactionService := transaction.NewService(transactionPostgres.NewTransactionRepository(db), nil, lg, queryTimeout)
		for _, st := range sampleTransactions {
			amount := decimal.RequireFromString(st.Amount)
			t, err := transactionService.Create(ctx, transaction.CreateTransactionDTO{
				Amount:      &amount,
				Description: st.Description,
				Date:        datetime.MustParseDate(st.Date),
				Category:    st.Category,
			})
			if err != nil {
				log.Fatalf("failed to insert transaction %q: %v", st.Description, err)
			}
			fmt.Printf("Seeded transaction: %s %s %s\n", t.Date, t.Category, t.Amount)
		}

		// Saving is an upsert, so re-running the seeder leaves one budget per pair.
		budgetService := budget.NewService(budgetPostgres.NewBudgetRepository(db), nil, nil, lg, queryTimeout)
		for _, sb := range sampleBudgets {
			amount := decimal.RequireFromString(sb.Amount)
			b, err := budgetService.Save(ctx, budget.SaveBudgetDTO{
				Category: sb.Category,
				Amount:   &amount,
				Month:    datetime.Month(sb.Month),
			})
			if err != nil {
				log.Fatalf("failed to save budget %s/%s: %v", sb.Category, sb.Month, err)
			}
			fmt.Printf("Seeded budget: %s %s %s\n", b.Month, b.Category, b.Amount)
		}

		fmt.Println("Sample data seeded successfully")
	},
}

func clearSeedData(db *gorm.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM budgets").Error; err != nil {
			return err
		}
		return tx.Exec("DELETE FROM transactions").Error
	})
}
