package db

import (
	"context"

	"github.com/itemvault/backend/internal/model"
)

const itemColumns = `id, name, description, price, owner_id, created_at, updated_at`

func (db *Postgres) CreateItem(ctx context.Context, item *model.Item) (*model.Item, error) {
	query := `
		INSERT INTO items (name, description, price, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + itemColumns
	var created model.Item
	err := db.Pool.QueryRow(ctx, query,
		item.Name, item.Description, item.Price, item.OwnerID,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Description,
		&created.Price,
		&created.OwnerID,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (db *Postgres) ListItemsByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]model.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE owner_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3`
	rows, err := db.Pool.Query(ctx, query, ownerID, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var i model.Item
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Description,
			&i.Price,
			&i.OwnerID,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}

	if items == nil {
		items = []model.Item{}
	}
	return items, rows.Err()
}

func (db *Postgres) GetItemByID(ctx context.Context, id int64) (*model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	var item model.Item
	err := db.Pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.OwnerID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem applies only the fields set in upd. COALESCE keeps the
// stored value for nil parameters.
func (db *Postgres) UpdateItem(ctx context.Context, id int64, upd model.ItemUpdate) (*model.Item, error) {
	query := `
		UPDATE items
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    price = COALESCE($4, price),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + itemColumns
	var item model.Item
	err := db.Pool.QueryRow(ctx, query, id, upd.Name, upd.Description, upd.Price).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.OwnerID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (db *Postgres) DeleteItem(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	return err
}
