package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Document is an entry in the shared document library.
type Document struct {
	ID         int
	Name       string
	Department string
	Category   string
	Version    string
	UploadedBy string
	UploadDate time.Time
}

// DocumentService lists the document library.
type DocumentService interface {
	List(ctx context.Context) ([]Document, error)
}

type documentService struct {
	pool *pgxpool.Pool
}

// NewDocumentService constructs a DocumentService backed by PostgreSQL.
func NewDocumentService(pool *pgxpool.Pool) DocumentService {
	return &documentService{pool: pool}
}

func (s *documentService) List(ctx context.Context) ([]Document, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, department, category, version, uploaded_by, upload_date
		FROM documents
		ORDER BY upload_date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Name, &d.Department, &d.Category, &d.Version, &d.UploadedBy, &d.UploadDate); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
