package entities

import "time"

// SlotsResponse is the payload of the doctor availability endpoint. Slots are
// advisory: a booking created between this read and the caller's booking
// attempt wins, and booking creation re-validates overlap transactionally.
type SlotsResponse struct {
	DoctorID        int         `json:"doctor_id"`
	Date            string      `json:"date"`
	DurationMinutes int         `json:"duration_minutes"`
	Slots           []time.Time `json:"slots"`
	Note            string      `json:"note,omitempty"`
}
