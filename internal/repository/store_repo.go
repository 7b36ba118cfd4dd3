package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pawhaven/internal/db"
	"pawhaven/internal/entities"
)

type StoreRepository struct {
	DB *sql.DB
}

func NewStoreRepository(database *sql.DB) *StoreRepository {
	return &StoreRepository{DB: database}
}

func (r *StoreRepository) CreateProduct(p *db.Product) error {
	query := `
		INSERT INTO products (name, description, category, price_cents, stock, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query, p.Name, p.Description, p.Category, p.PriceCents, p.Stock, p.PhotoURL, time.Now().UTC()).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *StoreRepository) GetProductByID(id int) (*db.Product, error) {
	var p db.Product
	err := r.DB.QueryRow(
		`SELECT id, name, description, category, price_cents, stock, photo_url, created_at, updated_at
		 FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.PriceCents, &p.Stock, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying product: %w", err)
	}
	return &p, nil
}

func (r *StoreRepository) ListProducts(category string) ([]db.Product, error) {
	query := `SELECT id, name, description, category, price_cents, stock, photo_url, created_at, updated_at FROM products`
	var args []interface{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY name`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	defer rows.Close()

	var products []db.Product
	for rows.Next() {
		var p db.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.PriceCents, &p.Stock, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating product rows: %w", err)
	}
	return products, nil
}

func (r *StoreRepository) UpdateProduct(p *db.Product) error {
	_, err := r.DB.Exec(`
		UPDATE products SET name = $2, description = $3, category = $4, price_cents = $5, stock = $6, photo_url = $7, updated_at = NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Category, p.PriceCents, p.Stock, p.PhotoURL)
	return err
}

func (r *StoreRepository) DeleteProduct(id int) error {
	_, err := r.DB.Exec(`DELETE FROM products WHERE id = $1`, id)
	return err
}

func (r *StoreRepository) UpsertCartItem(userID, productID, quantity int) error {
	_, err := r.DB.Exec(`
		INSERT INTO cart_items (user_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity`,
		userID, productID, quantity)
	return err
}

func (r *StoreRepository) RemoveCartItem(userID, productID int) error {
	_, err := r.DB.Exec(`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	return err
}

func (r *StoreRepository) ClearCart(userID int) error {
	_, err := r.DB.Exec(`DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}

func (r *StoreRepository) GetCart(userID int) ([]entities.CartItemResponse, error) {
	query := `
		SELECT ci.id, ci.product_id, p.name, p.price_cents, ci.quantity
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying cart: %w", err)
	}
	defer rows.Close()

	var items []entities.CartItemResponse
	for rows.Next() {
		var it entities.CartItemResponse
		if err := rows.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.UnitPriceCents, &it.Quantity); err != nil {
			return nil, fmt.Errorf("error scanning cart item: %w", err)
		}
		it.LineTotalCents = it.UnitPriceCents * it.Quantity
		items = append(items, it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating cart rows: %w", err)
	}
	return items, nil
}
