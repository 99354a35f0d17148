package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements port.Store using pgxpool for PostgreSQL.
// Getters return nil, nil when the row is absent; all mutations for a
// single campaign step are single statements or transactions, so each
// step is applied atomically.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns a new repository instance.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}
