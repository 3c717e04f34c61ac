package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LegalStatus is the closed set of columns on the legal case-tracking
// board. Records move between columns via UpdateStatus (drag and drop in
// the UI).
type LegalStatus string

const (
	LegalStatusActive   LegalStatus = "Ativo"
	LegalStatusReview   LegalStatus = "Revisão"
	LegalStatusArchived LegalStatus = "Arquivado"
)

// ValidLegalStatus reports whether s names a board column.
func ValidLegalStatus(s LegalStatus) bool {
	switch s {
	case LegalStatusActive, LegalStatusReview, LegalStatusArchived:
		return true
	}
	return false
}

// LegalRecord is one tracked legal matter (contract, power of attorney,
// license, labor case).
type LegalRecord struct {
	ID        int
	Name      string
	Category  string
	Status    LegalStatus
	RiskLevel string
	UpdatedBy string
	UpdatedAt time.Time
}

// LegalSummary backs the legal-summary modal: board column counts and
// per-category contract totals.
type LegalSummary struct {
	Total      int
	Active     int
	InReview   int
	Archived   int
	ByCategory map[string]int
}

// LegalService manages the legal case-tracking board.
type LegalService interface {
	// List returns all records, newest update first.
	List(ctx context.Context) ([]LegalRecord, error)

	// UpdateStatus moves a record to another board column and stamps the
	// acting user. Rejects unknown columns.
	UpdateStatus(ctx context.Context, id int, status LegalStatus, updatedBy string) (*LegalRecord, error)

	// Summary aggregates the board for the legal-summary modal.
	Summary(ctx context.Context) (*LegalSummary, error)
}

type legalService struct {
	pool *pgxpool.Pool
}

// NewLegalService constructs a LegalService backed by PostgreSQL.
func NewLegalService(pool *pgxpool.Pool) LegalService {
	return &legalService{pool: pool}
}

func (s *legalService) List(ctx context.Context) ([]LegalRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, category, status, risk_level, updated_by, updated_at
		FROM legal_records
		ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list legal records: %w", err)
	}
	defer rows.Close()

	var records []LegalRecord
	for rows.Next() {
		var r LegalRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Category, &r.Status, &r.RiskLevel, &r.UpdatedBy, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan legal record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *legalService) UpdateStatus(ctx context.Context, id int, status LegalStatus, updatedBy string) (*LegalRecord, error) {
	if !ValidLegalStatus(status) {
		return nil, fmt.Errorf("invalid legal status %q", status)
	}

	r := &LegalRecord{}
	err := s.pool.QueryRow(ctx, `
		UPDATE legal_records
		SET status = $1, updated_by = $2, updated_at = now()
		WHERE id = $3
		RETURNING id, name, category, status, risk_level, updated_by, updated_at`,
		status, updatedBy, id,
	).Scan(&r.ID, &r.Name, &r.Category, &r.Status, &r.RiskLevel, &r.UpdatedBy, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("legal record id=%d not found: %w", id, err)
	}
	return r, nil
}

func (s *legalService) Summary(ctx context.Context) (*LegalSummary, error) {
	summary := &LegalSummary{ByCategory: make(map[string]int)}

	rows, err := s.pool.Query(ctx, `
		SELECT category, status, count(*)
		FROM legal_records
		GROUP BY category, status`)
	if err != nil {
		return nil, fmt.Errorf("legal summary: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var status LegalStatus
		var count int
		if err := rows.Scan(&category, &status, &count); err != nil {
			return nil, fmt.Errorf("scan legal summary: %w", err)
		}
		summary.Total += count
		summary.ByCategory[category] += count
		switch status {
		case LegalStatusActive:
			summary.Active += count
		case LegalStatusReview:
			summary.InReview += count
		case LegalStatusArchived:
			summary.Archived += count
		}
	}
	return summary, rows.Err()
}
