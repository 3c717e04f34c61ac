package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// FinancialEntry is one month of consolidated revenue and expense.
type FinancialEntry struct {
	MonthIndex int    // 1-based calendar month
	Month      string // canonical month name
	Receita    decimal.Decimal
	Despesa    decimal.Decimal
}

// FinancialReport backs the financial-detail modal: one month's figures
// plus derived indicators.
type FinancialReport struct {
	Month     string
	Receita   decimal.Decimal
	Despesa   decimal.Decimal
	Saldo     decimal.Decimal // Receita - Despesa
	MargemPct decimal.Decimal // Saldo / Receita * 100, zero when Receita is zero
}

// FinancialService provides the monthly figures shown on the dashboard and
// in the financial-detail modal.
type FinancialService interface {
	// ListMonthly returns all recorded months in calendar order.
	ListMonthly(ctx context.Context) ([]FinancialEntry, error)

	// MonthlyReport returns the report for one canonical month name.
	// The current-period sentinel selects the latest recorded month.
	MonthlyReport(ctx context.Context, month string) (*FinancialReport, error)
}

type financialService struct {
	pool *pgxpool.Pool
}

// NewFinancialService constructs a FinancialService backed by PostgreSQL.
func NewFinancialService(pool *pgxpool.Pool) FinancialService {
	return &financialService{pool: pool}
}

func (s *financialService) ListMonthly(ctx context.Context) ([]FinancialEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT month_index, month_name, receita, despesa
		FROM financial_monthly
		ORDER BY month_index`)
	if err != nil {
		return nil, fmt.Errorf("list financial months: %w", err)
	}
	defer rows.Close()

	var entries []FinancialEntry
	for rows.Next() {
		var e FinancialEntry
		if err := rows.Scan(&e.MonthIndex, &e.Month, &e.Receita, &e.Despesa); err != nil {
			return nil, fmt.Errorf("scan financial month: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *financialService) MonthlyReport(ctx context.Context, month string) (*FinancialReport, error) {
	var e FinancialEntry
	var err error
	if month == "" || month == MonthCurrent {
		err = s.pool.QueryRow(ctx, `
			SELECT month_index, month_name, receita, despesa
			FROM financial_monthly
			ORDER BY month_index DESC
			LIMIT 1`,
		).Scan(&e.MonthIndex, &e.Month, &e.Receita, &e.Despesa)
	} else {
		err = s.pool.QueryRow(ctx, `
			SELECT month_index, month_name, receita, despesa
			FROM financial_monthly
			WHERE month_name = $1
			LIMIT 1`,
			month,
		).Scan(&e.MonthIndex, &e.Month, &e.Receita, &e.Despesa)
	}
	if err != nil {
		return nil, fmt.Errorf("financial month %q not found: %w", month, err)
	}
	return BuildFinancialReport(e), nil
}

// BuildFinancialReport derives the modal indicators from one month's raw
// figures. The margin is zero when revenue is zero, never a division error.
func BuildFinancialReport(e FinancialEntry) *FinancialReport {
	saldo := e.Receita.Sub(e.Despesa)
	margem := decimal.Zero
	if !e.Receita.IsZero() {
		margem = saldo.Div(e.Receita).Mul(decimal.NewFromInt(100)).Round(1)
	}
	return &FinancialReport{
		Month:     e.Month,
		Receita:   e.Receita,
		Despesa:   e.Despesa,
		Saldo:     saldo,
		MargemPct: margem,
	}
}
