package entities

import "time"

type PetRequest struct {
	Name        string  `json:"name" validate:"required"`
	Species     string  `json:"species" validate:"required"`
	Breed       string  `json:"breed"`
	AgeMonths   int     `json:"age_months" validate:"gte=0"`
	Gender      string  `json:"gender" validate:"omitempty,oneof=male female"`
	Description string  `json:"description"`
	PhotoURL    string  `json:"photo_url" validate:"omitempty,url"`
	Latitude    float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

type PetResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed,omitempty"`
	AgeMonths   int       `json:"age_months"`
	Gender      string    `json:"gender,omitempty"`
	Description string    `json:"description,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// PetFilter carries the public listing query parameters.
type PetFilter struct {
	Species     string
	Breed       string
	MinAgeMonths int
	MaxAgeMonths int
	Status      string
	Limit       int
	Offset      int
}

type NearbyPet struct {
	PetResponse
	DistanceKm float64 `json:"distance_km"`
}

type AdoptionRequestCreate struct {
	Message string `json:"message" validate:"max=2000"`
}

type AdoptionRequestResponse struct {
	ID        int       `json:"id"`
	PetID     int       `json:"pet_id"`
	PetName   string    `json:"pet_name"`
	UserID    int       `json:"user_id"`
	Message   string    `json:"message,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
