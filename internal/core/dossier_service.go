package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Employee is the HR identity at the head of a dossier.
type Employee struct {
	ID              string
	Name            string
	CPF             string
	JobTitle        string
	Department      string
	Status          string // "Ativo", "Afastado", "Desligado"
	RiskLevel       string // "Baixo", "Médio", "Alto"
	AdmissionDate   time.Time
	TerminationDate *time.Time
}

// Occurrence is one HR/legal event in an employee's history.
type Occurrence struct {
	ID          int
	Type        string // "Advertência", "Suspensão", "Atestado", "Promoção", "Rescisão"
	Date        time.Time
	Description string
}

// DossierDocument is a file attached to an employee's record.
type DossierDocument struct {
	ID   int
	Name string
	Type string
	Date time.Time
}

// Dossier is the composite read-only view of one employee assembled from
// the HR record, occurrence history, and attached documents.
type Dossier struct {
	Employee    Employee
	Occurrences []Occurrence
	Documents   []DossierDocument
}

// DossierService assembles employee dossiers for the legal center.
type DossierService interface {
	// Search finds employees by name or CPF fragment and returns their
	// full dossiers. An empty query returns no results.
	Search(ctx context.Context, query string) ([]Dossier, error)
}

type dossierService struct {
	pool *pgxpool.Pool
}

// NewDossierService constructs a DossierService backed by PostgreSQL.
func NewDossierService(pool *pgxpool.Pool) DossierService {
	return &dossierService{pool: pool}
}

func (s *dossierService) Search(ctx context.Context, query string) ([]Dossier, error) {
	if query == "" {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, name, cpf, job_title, department, status, risk_level, admission_date, termination_date
		FROM employees
		WHERE name ILIKE '%' || $1 || '%' OR cpf LIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT 10`,
		query)
	if err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.CPF, &e.JobTitle, &e.Department,
			&e.Status, &e.RiskLevel, &e.AdmissionDate, &e.TerminationDate); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	dossiers := make([]Dossier, 0, len(employees))
	for _, e := range employees {
		occurrences, err := s.occurrences(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		documents, err := s.documents(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		dossiers = append(dossiers, Dossier{
			Employee:    e,
			Occurrences: occurrences,
			Documents:   documents,
		})
	}
	return dossiers, nil
}

func (s *dossierService) occurrences(ctx context.Context, employeeID string) ([]Occurrence, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, type, occurred_on, description
		FROM employee_occurrences
		WHERE employee_id = $1
		ORDER BY occurred_on DESC`,
		employeeID)
	if err != nil {
		return nil, fmt.Errorf("list occurrences for %s: %w", employeeID, err)
	}
	defer rows.Close()

	var out []Occurrence
	for rows.Next() {
		var o Occurrence
		if err := rows.Scan(&o.ID, &o.Type, &o.Date, &o.Description); err != nil {
			return nil, fmt.Errorf("scan occurrence: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *dossierService) documents(ctx context.Context, employeeID string) ([]DossierDocument, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, type, document_date
		FROM employee_documents
		WHERE employee_id = $1
		ORDER BY document_date DESC`,
		employeeID)
	if err != nil {
		return nil, fmt.Errorf("list dossier documents for %s: %w", employeeID, err)
	}
	defer rows.Close()

	var out []DossierDocument
	for rows.Next() {
		var d DossierDocument
		if err := rows.Scan(&d.ID, &d.Name, &d.Type, &d.Date); err != nil {
			return nil, fmt.Errorf("scan dossier document: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
