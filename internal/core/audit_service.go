package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditEntry is one line of the access log shown in the legal center.
type AuditEntry struct {
	ID        int
	UserEmail string
	Action    string
	Resource  string
	CreatedAt time.Time
}

// AuditService records and lists access-trail entries.
type AuditService interface {
	// List returns the trail, newest first, capped at a sane page size.
	List(ctx context.Context) ([]AuditEntry, error)

	// Record appends an entry. Failures here must not abort the audited
	// operation; callers log and continue.
	Record(ctx context.Context, userEmail, action, resource string) error
}

type auditService struct {
	pool *pgxpool.Pool
}

// NewAuditService constructs an AuditService backed by PostgreSQL.
func NewAuditService(pool *pgxpool.Pool) AuditService {
	return &auditService{pool: pool}
}

func (s *auditService) List(ctx context.Context) ([]AuditEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_email, action, resource, created_at
		FROM audit_log
		ORDER BY created_at DESC, id DESC
		LIMIT 200`)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.UserEmail, &e.Action, &e.Resource, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *auditService) Record(ctx context.Context, userEmail, action, resource string) error {
	if action == "" {
		return fmt.Errorf("audit action is required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO audit_log (user_email, action, resource)
		VALUES ($1, $2, $3)`,
		userEmail, action, resource)
	if err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}
