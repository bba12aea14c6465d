package cart

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Get(ctx context.Context, ownerID string) ([]LineItem, error) {
	uid, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, err
	}
	var doc []byte
	err = r.db.QueryRowContext(ctx, `
		SELECT items FROM carts WHERE owner_id=$1`, uid).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []LineItem
	if err := json.Unmarshal(doc, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *postgresRepo) Replace(ctx context.Context, ownerID string, items []LineItem) error {
	uid, err := uuid.Parse(ownerID)
	if err != nil {
		return err
	}
	if items == nil {
		items = []LineItem{}
	}
	doc, err := json.Marshal(items)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO carts (owner_id, items) VALUES ($1,$2)
		ON CONFLICT (owner_id) DO UPDATE SET items=$2, updated_at=NOW()`,
		uid, doc)
	return err
}
