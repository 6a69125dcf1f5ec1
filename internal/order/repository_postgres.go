package order

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lifestylemart/storefront-backend/internal/database"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `id, user_id, order_number, subtotal, gift_discount, delivery_fee, total_amount,
	status, payment_method, payment_status, shipping_address, COALESCE(billing_address, ''), COALESCE(notes, ''),
	is_gift, COALESCE(gift_message, ''), gift_wrap, delivery_type,
	COALESCE(tracking_number, ''), COALESCE(courier_name, ''), estimated_delivery, actual_delivery,
	COALESCE(delivery_rating, 0), COALESCE(delivery_review, ''), created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.UserID, &o.OrderNumber, &o.Subtotal, &o.GiftDiscount, &o.DeliveryFee,
		&o.TotalAmount, &o.Status, &o.PaymentMethod, &o.PaymentStatus, &o.ShippingAddress,
		&o.BillingAddress, &o.Notes, &o.IsGift, &o.GiftMessage, &o.GiftWrap, &o.DeliveryType,
		&o.TrackingNumber, &o.CourierName, &o.EstimatedDelivery, &o.ActualDelivery,
		&o.DeliveryRating, &o.DeliveryReview, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

// Create converts a cart snapshot into a persisted order inside one
// serializable transaction: lock and re-check each product, drop
// unavailable lines, price the remainder, insert the order and its items,
// and consume stock with a conditional decrement. A unique-violation on the
// order number restarts the whole transaction with a fresh number.
func (r *PostgresRepository) Create(ctx context.Context, draft Draft) (Order, []DroppedLine, error) {
	ids := make([]int, 0, len(draft.Lines))
	for pid := range draft.Lines {
		ids = append(ids, pid)
	}
	// locking products in id order avoids deadlocks between checkouts
	sort.Ints(ids)

	var created Order
	var dropped []DroppedLine

	attempt := func() error {
		created = Order{}
		dropped = dropped[:0]

		return database.WithRetry(ctx, r.db, database.TxOptions{
			IsolationLevel: sql.LevelSerializable,
			MaxRetries:     3,
		}, func(tx *sql.Tx) error {
			var items []Item
			for _, pid := range ids {
				qty := draft.Lines[pid]
				var price decimal.Decimal
				var stock int
				var status string
				err := tx.QueryRowContext(ctx,
					`SELECT price, stock, status FROM products WHERE id = $1 FOR UPDATE`,
					pid).Scan(&price, &stock, &status)
				if err == sql.ErrNoRows {
					dropped = append(dropped, DroppedLine{ProductID: pid, Requested: qty, Reason: "product missing"})
					continue
				}
				if err != nil {
					return fmt.Errorf("lock product %d: %w", pid, err)
				}
				if status != "active" {
					dropped = append(dropped, DroppedLine{ProductID: pid, Requested: qty, Reason: "product inactive"})
					continue
				}
				if stock < qty {
					dropped = append(dropped, DroppedLine{ProductID: pid, Requested: qty, Reason: "insufficient stock"})
					continue
				}
				items = append(items, Item{
					ProductID: pid,
					Quantity:  qty,
					UnitPrice: price,
					LineTotal: price.Mul(decimal.NewFromInt(int64(qty))),
				})
			}

			if len(items) == 0 {
				return ErrNoValidItems
			}

			pricing := ComputePricing(items, draft)
			var orderID int
			err := tx.QueryRowContext(ctx,
				`INSERT INTO orders (user_id, order_number, subtotal, gift_discount, delivery_fee, total_amount,
					status, payment_method, payment_status, shipping_address, billing_address, notes,
					is_gift, gift_message, gift_wrap, delivery_type)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
				 RETURNING id`,
				draft.UserID, NewOrderNumber(), pricing.Subtotal, pricing.GiftDiscount, pricing.DeliveryFee,
				pricing.Total, StatusPending, draft.PaymentMethod, PaymentStatusFor(draft.PaymentMethod),
				draft.ShippingAddress, draft.BillingAddress, draft.Notes,
				draft.IsGift, draft.GiftMessage, draft.GiftWrap, draft.DeliveryType).Scan(&orderID)
			if err != nil {
				return fmt.Errorf("create order: %w", err)
			}

			for i := range items {
				items[i].OrderID = orderID
				err := tx.QueryRowContext(ctx,
					`INSERT INTO order_items (order_id, product_id, quantity, unit_price, line_total)
					 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
					orderID, items[i].ProductID, items[i].Quantity, items[i].UnitPrice, items[i].LineTotal).
					Scan(&items[i].ID)
				if err != nil {
					return fmt.Errorf("create order item: %w", err)
				}
			}

			for _, item := range items {
				result, err := tx.ExecContext(ctx,
					`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
					item.Quantity, item.ProductID)
				if err != nil {
					return fmt.Errorf("decrement stock: %w", err)
				}
				affected, err := result.RowsAffected()
				if err != nil {
					return fmt.Errorf("decrement stock rows: %w", err)
				}
				if affected == 0 {
					return ErrStockConflict
				}
			}

			created, err = scanOrder(tx.QueryRowContext(ctx,
				`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID))
			if err != nil {
				return fmt.Errorf("fetch created order: %w", err)
			}
			created.Items = items
			return nil
		})
	}

	var err error
	for i := 0; i < maxNumberAttempts; i++ {
		err = attempt()
		if err != nil && database.IsUniqueViolation(err) {
			continue
		}
		break
	}
	if err != nil {
		return Order{}, dropped, err
	}
	return created, dropped, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (Order, error) {
	ord, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("get order: %w", err)
	}

	items, err := r.itemsFor(ctx, id)
	if err != nil {
		return Order{}, err
	}
	ord.Items = items
	return ord, nil
}

func (r *PostgresRepository) itemsFor(ctx context.Context, orderID int) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, product_id, quantity, unit_price, line_total
		 FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.LineTotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

// UpdateStatus applies a validated transition. The expected current status
// in the WHERE clause rejects a concurrent admin update, and COALESCE makes
// the delivery timestamp stick on the first arrival into delivered.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int, from, to string) (Order, error) {
	query := `UPDATE orders SET status = $3, updated_at = NOW()`
	if to == StatusDelivered {
		query += `, actual_delivery = COALESCE(actual_delivery, NOW())`
	}
	query += ` WHERE id = $1 AND status = $2 RETURNING ` + orderColumns

	ord, err := scanOrder(r.db.QueryRowContext(ctx, query, id, from, to))
	if err == sql.ErrNoRows {
		// either the order is gone or its status moved underneath us
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return Order{}, getErr
		}
		return Order{}, ErrInvalidTransition
	}
	return ord, err
}

func (r *PostgresRepository) UpdateTracking(ctx context.Context, id int, t Tracking) (Order, error) {
	ord, err := scanOrder(r.db.QueryRowContext(ctx,
		`UPDATE orders SET tracking_number = $2, courier_name = $3, estimated_delivery = $4, updated_at = NOW()
		 WHERE id = $1 RETURNING `+orderColumns,
		id, t.TrackingNumber, t.CourierName, t.EstimatedDelivery))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) UpdateRating(ctx context.Context, id int, rating int, review string) (Order, error) {
	ord, err := scanOrder(r.db.QueryRowContext(ctx,
		`UPDATE orders SET delivery_rating = $2, delivery_review = $3, updated_at = NOW()
		 WHERE id = $1 RETURNING `+orderColumns,
		id, rating, review))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := r.db.QueryRowContext(ctx, `SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM orders),
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders)`).
		Scan(&stats.TotalUsers, &stats.TotalProducts, &stats.TotalOrders, &stats.TotalRevenue)
	if err != nil {
		return Stats{}, fmt.Errorf("dashboard stats: %w", err)
	}
	return stats, nil
}
