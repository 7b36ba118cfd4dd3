package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pawhaven/internal/db"
	"pawhaven/internal/entities"
)

type OrderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(database *sql.DB) *OrderRepository {
	return &OrderRepository{DB: database}
}

// CreateOrder inserts the order and its items in one transaction.
func (r *OrderRepository) CreateOrder(order *db.Order, items []db.OrderItem) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting order transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO orders (code, user_id, total_cents, status, payment_status, stripe_session_id, stripe_payment_intent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id, created_at, updated_at`,
		order.Code, order.UserID, order.TotalCents, order.Status, order.PaymentStatus,
		order.StripeSessionID, order.StripePaymentIntentID, time.Now().UTC(),
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting order: %w", err)
	}

	for _, it := range items {
		if _, err := tx.Exec(`
			INSERT INTO order_items (order_id, product_id, quantity, unit_price_cents)
			VALUES ($1, $2, $3, $4)`,
			order.ID, it.ProductID, it.Quantity, it.UnitPriceCents); err != nil {
			return fmt.Errorf("error inserting order item: %w", err)
		}
	}
	return tx.Commit()
}

func (r *OrderRepository) GetOrderByCode(code string) (*db.Order, error) {
	var o db.Order
	err := r.DB.QueryRow(`
		SELECT id, code, user_id, total_cents, status, payment_status, stripe_session_id, stripe_payment_intent_id, created_at, updated_at
		FROM orders WHERE code = $1`, code).
		Scan(&o.ID, &o.Code, &o.UserID, &o.TotalCents, &o.Status, &o.PaymentStatus,
			&o.StripeSessionID, &o.StripePaymentIntentID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %q not found: %w", code, err)
		}
		return nil, fmt.Errorf("error querying order: %w", err)
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderByStripeSessionID(sessionID string) (*db.Order, error) {
	var o db.Order
	err := r.DB.QueryRow(`
		SELECT id, code, user_id, total_cents, status, payment_status, stripe_session_id, stripe_payment_intent_id, created_at, updated_at
		FROM orders WHERE stripe_session_id = $1`, sessionID).
		Scan(&o.ID, &o.Code, &o.UserID, &o.TotalCents, &o.Status, &o.PaymentStatus,
			&o.StripeSessionID, &o.StripePaymentIntentID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order for session %q not found: %w", sessionID, err)
		}
		return nil, fmt.Errorf("error querying order by session: %w", err)
	}
	return &o, nil
}

func (r *OrderRepository) ListOrdersByUser(userID int) ([]entities.OrderResponse, error) {
	rows, err := r.DB.Query(`
		SELECT code, total_cents, status, payment_status, created_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing orders: %w", err)
	}
	defer rows.Close()

	var orders []entities.OrderResponse
	for rows.Next() {
		var o entities.OrderResponse
		if err := rows.Scan(&o.Code, &o.TotalCents, &o.Status, &o.PaymentStatus, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning order: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating order rows: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) ListOrderItems(orderID int) ([]entities.OrderItemResponse, error) {
	rows, err := r.DB.Query(`
		SELECT oi.product_id, p.name, oi.quantity, oi.unit_price_cents
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("error listing order items: %w", err)
	}
	defer rows.Close()

	var items []entities.OrderItemResponse
	for rows.Next() {
		var it entities.OrderItemResponse
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPriceCents); err != nil {
			return nil, fmt.Errorf("error scanning order item: %w", err)
		}
		items = append(items, it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating order item rows: %w", err)
	}
	return items, nil
}

func (r *OrderRepository) UpdateOrderAndPaymentStatus(orderID int, status, paymentStatus string) error {
	_, err := r.DB.Exec(`
		UPDATE orders SET status = $2, payment_status = $3, updated_at = NOW() WHERE id = $1`,
		orderID, status, paymentStatus)
	if err != nil {
		return fmt.Errorf("error updating order %d status: %w", orderID, err)
	}
	return nil
}

// MarkPaidAndDecrementStock settles a paid order: status flips, each line's
// stock is decremented, and the buyer's cart is emptied, atomically.
func (r *OrderRepository) MarkPaidAndDecrementStock(orderID, userID int, paymentIntentID string) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting settlement transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE orders
		SET status = 'paid', payment_status = 'succeeded', stripe_payment_intent_id = $2, updated_at = NOW()
		WHERE id = $1`, orderID, paymentIntentID); err != nil {
		return fmt.Errorf("error marking order %d paid: %w", orderID, err)
	}
	if _, err := tx.Exec(`
		UPDATE products p
		SET stock = p.stock - oi.quantity, updated_at = NOW()
		FROM order_items oi
		WHERE oi.order_id = $1 AND oi.product_id = p.id`, orderID); err != nil {
		return fmt.Errorf("error decrementing stock for order %d: %w", orderID, err)
	}
	if _, err := tx.Exec(`DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error clearing cart for user %d: %w", userID, err)
	}
	return tx.Commit()
}
