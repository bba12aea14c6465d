package catalog

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Upsert(ctx context.Context, e *Entry) error {
	images, err := json.Marshal(e.VariationImages)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO catalog_entries (id, product_id, source, external_id, variation_images)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (product_id) DO UPDATE
		SET source=$3, external_id=$4, variation_images=$5, updated_at=NOW()`,
		e.ID, e.ProductID, e.Source, e.ExternalID, images)
	return err
}

func (r *postgresRepo) GetByProductID(ctx context.Context, productID string) (*Entry, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}
	e := &Entry{}
	var images []byte
	err = r.db.QueryRowContext(ctx, `
		SELECT id, product_id, source, external_id, variation_images, created_at, updated_at
		FROM catalog_entries WHERE product_id=$1`, pid).Scan(
		&e.ID, &e.ProductID, &e.Source, &e.ExternalID, &images, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if images != nil {
		if err := json.Unmarshal(images, &e.VariationImages); err != nil {
			return nil, err
		}
	}
	return e, nil
}
