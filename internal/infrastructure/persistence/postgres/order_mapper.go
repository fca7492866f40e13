package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"storefront/internal/domain/model"
	"storefront/internal/specification"
)

// orderMapper persists the order aggregate: the shipping address is owned
// by the orders row (ship_to_* columns) and items live in order_items,
// cascade-deleted with their order.
type orderMapper struct{}

func (orderMapper) Table() string {
	return "orders"
}

func (orderMapper) Columns() []string {
	return []string{
		"id", "buyer_email",
		"ship_to_first_name", "ship_to_last_name", "ship_to_street",
		"ship_to_city", "ship_to_state", "ship_to_zip_code",
		"delivery_method_id", "subtotal", "status", "created_at",
	}
}

func (orderMapper) Scan(row RowScanner) (*model.Order, error) {
	var order model.Order
	var status string
	if err := row.Scan(
		&order.ID, &order.BuyerEmail,
		&order.ShipToAddress.FirstName, &order.ShipToAddress.LastName, &order.ShipToAddress.Street,
		&order.ShipToAddress.City, &order.ShipToAddress.State, &order.ShipToAddress.ZipCode,
		&order.DeliveryMethodID, &order.Subtotal, &status, &order.CreatedAt,
	); err != nil {
		return nil, err
	}
	parsed, err := model.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	order.Status = parsed
	return &order, nil
}

func (orderMapper) Insert(ctx context.Context, tx *sql.Tx, order *model.Order) (int64, error) {
	err := tx.QueryRowContext(ctx, `
        INSERT INTO orders (
            buyer_email, ship_to_first_name, ship_to_last_name, ship_to_street,
            ship_to_city, ship_to_state, ship_to_zip_code,
            delivery_method_id, subtotal, status, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id`,
		order.BuyerEmail,
		order.ShipToAddress.FirstName, order.ShipToAddress.LastName, order.ShipToAddress.Street,
		order.ShipToAddress.City, order.ShipToAddress.State, order.ShipToAddress.ZipCode,
		order.DeliveryMethodID, order.Subtotal, order.Status.String(), order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	affected := int64(1)
	for i := range order.Items {
		item := &order.Items[i]
		err := tx.QueryRowContext(ctx, `
            INSERT INTO order_items (
                order_id, product_id, product_name, picture_url, price, quantity
            ) VALUES ($1, $2, $3, $4, $5, $6)
            RETURNING id`,
			order.ID, item.ItemOrdered.ProductID, item.ItemOrdered.ProductName,
			item.ItemOrdered.PictureURL, item.Price, item.Quantity,
		).Scan(&item.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert order item: %w", err)
		}
		affected++
	}
	return affected, nil
}

func (orderMapper) Update(ctx context.Context, tx *sql.Tx, order *model.Order) (int64, error) {
	res, err := tx.ExecContext(ctx, `
        UPDATE orders SET status = $1, subtotal = $2, delivery_method_id = $3
        WHERE id = $4`,
		order.Status.String(), order.Subtotal, order.DeliveryMethodID, order.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update order: %w", err)
	}
	return res.RowsAffected()
}

func (orderMapper) Delete(ctx context.Context, tx *sql.Tx, order *model.Order) (int64, error) {
	// order_items go with the order via ON DELETE CASCADE.
	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, order.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete order: %w", err)
	}
	return res.RowsAffected()
}

func (m orderMapper) LoadRelation(ctx context.Context, q Querier, relation string, orders []*model.Order) error {
	switch relation {
	case specification.IncludeOrderItems:
		return m.loadItems(ctx, q, orders)
	case specification.IncludeDeliveryMethod:
		return m.loadDeliveryMethods(ctx, q, orders)
	}
	return fmt.Errorf("unknown order relation %q", relation)
}

func (orderMapper) loadItems(ctx context.Context, q Querier, orders []*model.Order) error {
	byID := make(map[int64]*model.Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, order := range orders {
		order.Items = []model.OrderItem{}
		byID[order.ID] = order
		ids = append(ids, order.ID)
	}

	rows, err := q.QueryContext(ctx, `
        SELECT order_id, id, product_id, product_name, picture_url, price, quantity
        FROM order_items
        WHERE order_id = ANY($1)
        ORDER BY order_id, id`, ids)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var item model.OrderItem
		if err := rows.Scan(
			&orderID, &item.ID, &item.ItemOrdered.ProductID, &item.ItemOrdered.ProductName,
			&item.ItemOrdered.PictureURL, &item.Price, &item.Quantity,
		); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if order, exists := byID[orderID]; exists {
			order.Items = append(order.Items, item)
		}
	}
	return rows.Err()
}

func (orderMapper) loadDeliveryMethods(ctx context.Context, q Querier, orders []*model.Order) error {
	ids := make([]int64, 0, len(orders))
	seen := make(map[int64]bool, len(orders))
	for _, order := range orders {
		if !seen[order.DeliveryMethodID] {
			seen[order.DeliveryMethodID] = true
			ids = append(ids, order.DeliveryMethodID)
		}
	}

	rows, err := q.QueryContext(ctx, `
        SELECT id, short_name, delivery_time, description, price
        FROM delivery_methods
        WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("failed to query delivery methods: %w", err)
	}
	defer rows.Close()

	methods := make(map[int64]*model.DeliveryMethod, len(ids))
	for rows.Next() {
		var dm model.DeliveryMethod
		if err := rows.Scan(&dm.ID, &dm.ShortName, &dm.DeliveryTime, &dm.Description, &dm.Price); err != nil {
			return fmt.Errorf("failed to scan delivery method: %w", err)
		}
		methods[dm.ID] = &dm
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, order := range orders {
		order.DeliveryMethod = methods[order.DeliveryMethodID]
	}
	return nil
}
