package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"storefront/internal/domain/model"
)

type productMapper struct{}

func (productMapper) Table() string {
	return "products"
}

func (productMapper) Columns() []string {
	return []string{"id", "name", "picture_url", "price"}
}

func (productMapper) Scan(row RowScanner) (*model.Product, error) {
	var p model.Product
	if err := row.Scan(&p.ID, &p.Name, &p.PictureURL, &p.Price); err != nil {
		return nil, err
	}
	return &p, nil
}

func (productMapper) Insert(ctx context.Context, tx *sql.Tx, p *model.Product) (int64, error) {
	err := tx.QueryRowContext(ctx, `
        INSERT INTO products (name, picture_url, price)
        VALUES ($1, $2, $3)
        RETURNING id`,
		p.Name, p.PictureURL, p.Price,
	).Scan(&p.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}
	return 1, nil
}

func (productMapper) Update(ctx context.Context, tx *sql.Tx, p *model.Product) (int64, error) {
	res, err := tx.ExecContext(ctx, `
        UPDATE products SET name = $1, picture_url = $2, price = $3
        WHERE id = $4`,
		p.Name, p.PictureURL, p.Price, p.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update product: %w", err)
	}
	return res.RowsAffected()
}

func (productMapper) Delete(ctx context.Context, tx *sql.Tx, p *model.Product) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, p.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete product: %w", err)
	}
	return res.RowsAffected()
}

func (productMapper) LoadRelation(_ context.Context, _ Querier, relation string, _ []*model.Product) error {
	return fmt.Errorf("unknown product relation %q", relation)
}

type deliveryMethodMapper struct{}

func (deliveryMethodMapper) Table() string {
	return "delivery_methods"
}

func (deliveryMethodMapper) Columns() []string {
	return []string{"id", "short_name", "delivery_time", "description", "price"}
}

func (deliveryMethodMapper) Scan(row RowScanner) (*model.DeliveryMethod, error) {
	var dm model.DeliveryMethod
	if err := row.Scan(&dm.ID, &dm.ShortName, &dm.DeliveryTime, &dm.Description, &dm.Price); err != nil {
		return nil, err
	}
	return &dm, nil
}

func (deliveryMethodMapper) Insert(ctx context.Context, tx *sql.Tx, dm *model.DeliveryMethod) (int64, error) {
	err := tx.QueryRowContext(ctx, `
        INSERT INTO delivery_methods (short_name, delivery_time, description, price)
        VALUES ($1, $2, $3, $4)
        RETURNING id`,
		dm.ShortName, dm.DeliveryTime, dm.Description, dm.Price,
	).Scan(&dm.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert delivery method: %w", err)
	}
	return 1, nil
}

func (deliveryMethodMapper) Update(ctx context.Context, tx *sql.Tx, dm *model.DeliveryMethod) (int64, error) {
	res, err := tx.ExecContext(ctx, `
        UPDATE delivery_methods SET short_name = $1, delivery_time = $2, description = $3, price = $4
        WHERE id = $5`,
		dm.ShortName, dm.DeliveryTime, dm.Description, dm.Price, dm.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update delivery method: %w", err)
	}
	return res.RowsAffected()
}

func (deliveryMethodMapper) Delete(ctx context.Context, tx *sql.Tx, dm *model.DeliveryMethod) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM delivery_methods WHERE id = $1`, dm.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete delivery method: %w", err)
	}
	return res.RowsAffected()
}

func (deliveryMethodMapper) LoadRelation(_ context.Context, _ Querier, relation string, _ []*model.DeliveryMethod) error {
	return fmt.Errorf("unknown delivery method relation %q", relation)
}
