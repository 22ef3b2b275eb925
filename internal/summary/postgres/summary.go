package postgres

import (
	"context"
	"fmt"

	"github.com/frahmantamala/moneymappr/internal/core/common/datetime"
	"github.com/frahmantamala/moneymappr/internal/core/datamodel/category"
	"github.com/frahmantamala/moneymappr/internal/summary"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// SummaryRepository runs the aggregation queries over the transactions
// table with sqlx. It serves both pgx and sqlite3 handles.
type SummaryRepository struct {
	db *sqlx.DB
}

func NewSummaryRepository(db *sqlx.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

func (r *SummaryRepository) monthExpr() string {
	switch r.db.DriverName() {
	case "pgx", "postgres":
		return "to_char(date, 'YYYY-MM')"
	default:
		return "substr(date, 1, 7)"
	}
}

func (r *SummaryRepository) MonthlyTotals(ctx context.Context) ([]summary.MonthlyTotal, error) {
	query := fmt.Sprintf(`
		SELECT %s AS month, COALESCE(SUM(amount), 0) AS total
		FROM transactions
		GROUP BY 1
		ORDER BY 1 ASC`, r.monthExpr())

	var totals []summary.MonthlyTotal
	if err := r.db.SelectContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	for i := range totals {
		totals[i].Total = totals[i].Total.Round(2)
	}
	return totals, nil
}

func (r *SummaryRepository) CategoryTotals(ctx context.Context) ([]summary.CategoryTotal, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0) AS total
		FROM transactions
		GROUP BY category
		ORDER BY category ASC`

	var totals []summary.CategoryTotal
	if err := r.db.SelectContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	for i := range totals {
		totals[i].Total = totals[i].Total.Round(2)
	}
	return totals, nil
}

func (r *SummaryRepository) Totals(ctx context.Context) (summary.Totals, error) {
	query := `SELECT COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count FROM transactions`

	var totals summary.Totals
	if err := r.db.GetContext(ctx, &totals, query); err != nil {
		return summary.Totals{}, fmt.Errorf("totals: %w", err)
	}
	totals.Total = totals.Total.Round(2)
	return totals, nil
}

// SpentByCategory sums the month's transactions per category.
func (r *SummaryRepository) SpentByCategory(ctx context.Context, month datetime.Month) (map[category.Category]decimal.Decimal, error) {
	start, end, err := month.Bounds()
	if err != nil {
		return nil, err
	}

	query := r.db.Rebind(`
		SELECT category, COALESCE(SUM(amount), 0) AS total
		FROM transactions
		WHERE date >= ? AND date < ?
		GROUP BY category`)

	var rows []summary.CategoryTotal
	if err := r.db.SelectContext(ctx, &rows, query, start, end); err != nil {
		return nil, fmt.Errorf("spending for %s: %w", month, err)
	}

	spent := make(map[category.Category]decimal.Decimal, len(rows))
	for _, row := range rows {
		spent[row.Category] = row.Total.Round(2)
	}
	return spent, nil
}
