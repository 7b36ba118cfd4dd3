package entities

import "time"

type DoctorProfileRequest struct {
	Specialty  string   `json:"specialty" validate:"required"`
	Bio        string   `json:"bio"`
	FeeCents   int      `json:"fee_cents" validate:"gte=0"`
	WorkDays   []string `json:"work_days" validate:"dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	DayStart   string   `json:"day_start" validate:"omitempty,datetime=15:04"`
	DayEnd     string   `json:"day_end" validate:"omitempty,datetime=15:04"`
	LeaveDates []string `json:"leave_dates" validate:"dive,datetime=2006-01-02"`
}

type DoctorResponse struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Specialty  string   `json:"specialty"`
	Bio        string   `json:"bio,omitempty"`
	FeeCents   int      `json:"fee_cents"`
	WorkDays   []string `json:"work_days,omitempty"`
	DayStart   string   `json:"day_start,omitempty"`
	DayEnd     string   `json:"day_end,omitempty"`
	LeaveDates []string `json:"leave_dates,omitempty"`
}

type AppointmentRequest struct {
	DoctorID        int    `json:"doctor_id" validate:"required,gt=0"`
	StartTime       string `json:"start_time" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"gte=0"`
	Reason          string `json:"reason" validate:"max=2000"`
}

type AppointmentResponse struct {
	Code            string    `json:"code"`
	DoctorID        int       `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	UserID          int       `json:"user_id"`
	UserName        string    `json:"user_name,omitempty"`
	UserEmail       string    `json:"user_email,omitempty"`
	UserPhone       string    `json:"user_phone,omitempty"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Reason          string    `json:"reason,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type AppointmentEmailData struct {
	UserName           string
	AppointmentCode    string
	DoctorName         string
	StartTimeFormatted string
	DurationMinutes    int
	Status             string
	CurrentYear        int
}
