package entities

import "time"

type RescueReportRequest struct {
	Description  string  `json:"description" validate:"required,max=4000"`
	Latitude     float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude    float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Address      string  `json:"address"`
	PhotoURL     string  `json:"photo_url" validate:"omitempty,url"`
	ContactPhone string  `json:"contact_phone" validate:"omitempty,e164"`
}

type RescueReportResponse struct {
	Reference    string    `json:"reference"`
	Description  string    `json:"description"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Address      string    `json:"address,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
