package merchant

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL merchant repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, m *Merchant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO merchants (id, email, password_hash, store_name)
		VALUES ($1, $2, $3, $4)`,
		m.ID, m.Email, m.PasswordHash, m.StoreName)
	return err
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*Merchant, error) {
	m := &Merchant{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, store_name, created_at, updated_at
		FROM merchants WHERE email = $1`, email).Scan(
		&m.ID, &m.Email, &m.PasswordHash, &m.StoreName, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*Merchant, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	m := &Merchant{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, store_name, created_at, updated_at
		FROM merchants WHERE id = $1`, uid).Scan(
		&m.ID, &m.Email, &m.PasswordHash, &m.StoreName, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}
