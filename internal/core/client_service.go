package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Client is a trade-marketing account with its shelf KPIs.
type Client struct {
	ID           string
	Name         string
	Segment      string
	Status       string // "Ativo" or "Inativo"
	SellOut      decimal.Decimal
	ShareOfShelf decimal.Decimal // percentage
	Ruptura      decimal.Decimal // out-of-stock percentage
	Visitas      int
	SKUsAtivos   int
	LastUpdate   time.Time
}

// ClientService lists the client-center accounts.
type ClientService interface {
	List(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id string) (*Client, error)
}

type clientService struct {
	pool *pgxpool.Pool
}

// NewClientService constructs a ClientService backed by PostgreSQL.
func NewClientService(pool *pgxpool.Pool) ClientService {
	return &clientService{pool: pool}
}

const clientColumns = `id, name, segment, status, sell_out, share_of_shelf, ruptura, visitas, skus_ativos, last_update`

func (s *clientService) List(ctx context.Context) ([]Client, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Segment, &c.Status, &c.SellOut,
			&c.ShareOfShelf, &c.Ruptura, &c.Visitas, &c.SKUsAtivos, &c.LastUpdate); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (s *clientService) GetByID(ctx context.Context, id string) (*Client, error) {
	c := &Client{}
	err := s.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Segment, &c.Status, &c.SellOut,
		&c.ShareOfShelf, &c.Ruptura, &c.Visitas, &c.SKUsAtivos, &c.LastUpdate)
	if err != nil {
		return nil, fmt.Errorf("client %q not found: %w", id, err)
	}
	return c, nil
}
