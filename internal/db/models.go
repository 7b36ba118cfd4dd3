package db

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Pet struct {
	ID          int
	Name        string
	Species     string
	Breed       string
	AgeMonths   int
	Gender      string
	Description string
	PhotoURL    string
	Latitude    float64
	Longitude   float64
	Status      string
	CreatedBy   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type AdoptionRequest struct {
	ID        int
	PetID     int
	UserID    int
	Message   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Doctor holds the provider profile plus its availability configuration.
// WorkDays are weekday names; LeaveDates are ISO dates (2006-01-02).
type Doctor struct {
	ID         int
	UserID     int
	Name       string
	Specialty  string
	Bio        string
	FeeCents   int
	WorkDays   []string
	DayStart   string
	DayEnd     string
	LeaveDates []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Appointment struct {
	ID              int
	Code            string
	DoctorID        int
	UserID          int
	StartTime       time.Time
	DurationMinutes sql.NullInt64
	Reason          string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Product struct {
	ID          int
	Name        string
	Description string
	Category    string
	PriceCents  int
	Stock       int
	PhotoURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CartItem struct {
	ID        int
	UserID    int
	ProductID int
	Quantity  int
	CreatedAt time.Time
}

type Order struct {
	ID                    int
	Code                  string
	UserID                int
	TotalCents            int
	Status                string
	PaymentStatus         string
	StripeSessionID       string
	StripePaymentIntentID string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type OrderItem struct {
	ID             int
	OrderID        int
	ProductID      int
	Quantity       int
	UnitPriceCents int
}

type RescueReport struct {
	ID           int
	Reference    string
	ReporterID   int
	Description  string
	Latitude     float64
	Longitude    float64
	Address      string
	PhotoURL     string
	ContactPhone string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Post struct {
	ID          int
	Title       string
	Slug        string
	Body        string
	AuthorID    int
	PublishedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Event struct {
	ID          int
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type WishlistItem struct {
	ID        int
	UserID    int
	ItemType  string
	ItemID    int
	CreatedAt time.Time
}

type ChatMessage struct {
	ID        int
	UserID    int
	Role      string
	Content   string
	CreatedAt time.Time
}
