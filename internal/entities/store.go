package entities

import "time"

type ProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceCents  int    `json:"price_cents" validate:"gt=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
	PhotoURL    string `json:"photo_url" validate:"omitempty,url"`
}

type ProductResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	PriceCents  int    `json:"price_cents"`
	Stock       int    `json:"stock"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

type CartItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,gt=0"`
}

type CartItemResponse struct {
	ID             int    `json:"id"`
	ProductID      int    `json:"product_id"`
	ProductName    string `json:"product_name"`
	UnitPriceCents int    `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	LineTotalCents int    `json:"line_total_cents"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalCents int                `json:"total_cents"`
}

type CheckoutResponse struct {
	OrderCode string `json:"order_code"`
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

type OrderItemResponse struct {
	ProductID      int    `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int    `json:"unit_price_cents"`
}

type OrderResponse struct {
	Code          string              `json:"code"`
	TotalCents    int                 `json:"total_cents"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status,omitempty"`
	Items         []OrderItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

type OrderEmailData struct {
	UserName       string
	OrderCode      string
	TotalFormatted string
	Status         string
	CurrentYear    int
}
