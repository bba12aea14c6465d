package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository stores definitions as jsonb documents keyed by
// (owner, product). The document holds everything the authoring UI edits;
// owner and pricing columns are extracted for querying.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, def *Definition) error {
	doc, err := json.Marshal(def)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO product_definitions (id, owner_id, name, base_price, document)
		VALUES ($1,$2,$3,$4,$5)`,
		def.ID, def.OwnerID, def.Name, def.BasePrice, doc)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Definition, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT document, created_at, updated_at
		FROM product_definitions WHERE id=$1`, uid)
	return scanDefinition(row.Scan)
}

func (r *postgresRepo) ListByOwner(ctx context.Context, ownerID string) ([]*Definition, error) {
	uid, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT document, created_at, updated_at
		FROM product_definitions WHERE owner_id=$1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []*Definition
	for rows.Next() {
		def, err := scanDefinition(rows.Scan)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, def *Definition) error {
	doc, err := json.Marshal(def)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE product_definitions
		SET name=$1, base_price=$2, document=$3, updated_at=NOW()
		WHERE id=$4`,
		def.Name, def.BasePrice, doc, def.ID)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM product_definitions WHERE id=$1`, uid)
	return err
}

func scanDefinition(scan func(...interface{}) error) (*Definition, error) {
	var doc []byte
	var createdAt, updatedAt time.Time
	if err := scan(&doc, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	def := &Definition{}
	if err := json.Unmarshal(doc, def); err != nil {
		return nil, err
	}
	def.CreatedAt = createdAt
	def.UpdatedAt = updatedAt
	return def, nil
}
