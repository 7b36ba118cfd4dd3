package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pawhaven/internal/db"
	"pawhaven/internal/entities"
)

type AppointmentRepository struct {
	DB *sql.DB
}

func NewAppointmentRepository(database *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{DB: database}
}

// ListForDoctorDay returns the doctor's non-canceled appointments whose start
// falls inside the local calendar day [dayStart, dayStart+24h).
func (r *AppointmentRepository) ListForDoctorDay(doctorID int, dayStart time.Time) ([]db.Appointment, error) {
	query := `
		SELECT id, code, doctor_id, user_id, start_time, duration_minutes, reason, status, created_at, updated_at
		FROM appointments
		WHERE doctor_id = $1
		  AND status <> 'canceled'
		  AND start_time >= $2
		  AND start_time < $3
		ORDER BY start_time`
	rows, err := r.DB.Query(query, doctorID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("error querying appointments for doctor %d: %w", doctorID, err)
	}
	defer rows.Close()

	var appts []db.Appointment
	for rows.Next() {
		var a db.Appointment
		if err := rows.Scan(&a.ID, &a.Code, &a.DoctorID, &a.UserID, &a.StartTime,
			&a.DurationMinutes, &a.Reason, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning appointment: %w", err)
		}
		appts = append(appts, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating appointment rows: %w", err)
	}
	return appts, nil
}

// CreateIfFree inserts the appointment only if it does not overlap an existing
// non-canceled appointment for the same doctor. The day's rows are locked so
// the check and the insert are atomic; the slot list shown to the user earlier
// is advisory only.
func (r *AppointmentRepository) CreateIfFree(appt *db.Appointment) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting booking transaction: %w", err)
	}
	defer tx.Rollback()

	dayStart := time.Date(appt.StartTime.Year(), appt.StartTime.Month(), appt.StartTime.Day(), 0, 0, 0, 0, time.UTC)
	rows, err := tx.Query(`
		SELECT start_time, duration_minutes
		FROM appointments
		WHERE doctor_id = $1
		  AND status <> 'canceled'
		  AND start_time >= $2
		  AND start_time < $3
		FOR UPDATE`,
		appt.DoctorID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return fmt.Errorf("error locking doctor day: %w", err)
	}
	defer rows.Close()

	minutes := int64(30)
	if appt.DurationMinutes.Valid {
		minutes = appt.DurationMinutes.Int64
	}
	newEnd := appt.StartTime.Add(time.Duration(minutes) * time.Minute)
	for rows.Next() {
		var start time.Time
		var dur sql.NullInt64
		if err := rows.Scan(&start, &dur); err != nil {
			return fmt.Errorf("error scanning locked appointment: %w", err)
		}
		existing := int64(30)
		if dur.Valid {
			existing = dur.Int64
		}
		end := start.Add(time.Duration(existing) * time.Minute)
		if appt.StartTime.Before(end) && newEnd.After(start) {
			return ErrSlotTaken
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("error after iterating locked rows: %w", err)
	}

	err = tx.QueryRow(`
		INSERT INTO appointments
		(code, doctor_id, user_id, start_time, duration_minutes, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id, created_at, updated_at`,
		appt.Code, appt.DoctorID, appt.UserID, appt.StartTime, appt.DurationMinutes,
		appt.Reason, appt.Status, time.Now().UTC(),
	).Scan(&appt.ID, &appt.CreatedAt, &appt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting appointment: %w", err)
	}
	return tx.Commit()
}

// ErrSlotTaken is returned when the requested interval was booked between the
// availability read and the booking attempt.
var ErrSlotTaken = errors.New("requested time is no longer available")

func (r *AppointmentRepository) GetByCode(code string) (*entities.AppointmentResponse, error) {
	var a entities.AppointmentResponse
	var dur sql.NullInt64
	query := `
		SELECT a.code, a.doctor_id, du.name, a.user_id, u.name, u.email, u.phone,
		       a.start_time, a.duration_minutes, a.reason, a.status, a.created_at
		FROM appointments a
		JOIN users u ON a.user_id = u.id
		JOIN doctors d ON a.doctor_id = d.id
		JOIN users du ON d.user_id = du.id
		WHERE a.code = $1`
	err := r.DB.QueryRow(query, code).Scan(
		&a.Code, &a.DoctorID, &a.DoctorName, &a.UserID, &a.UserName, &a.UserEmail, &a.UserPhone,
		&a.StartTime, &dur, &a.Reason, &a.Status, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("appointment %q not found: %w", code, err)
		}
		return nil, fmt.Errorf("error querying appointment: %w", err)
	}
	a.DurationMinutes = 30
	if dur.Valid {
		a.DurationMinutes = int(dur.Int64)
	}
	return &a, nil
}

func (r *AppointmentRepository) ListByUser(userID int) ([]entities.AppointmentResponse, error) {
	query := `
		SELECT a.code, a.doctor_id, du.name, a.user_id, a.start_time, a.duration_minutes, a.reason, a.status, a.created_at
		FROM appointments a
		JOIN doctors d ON a.doctor_id = d.id
		JOIN users du ON d.user_id = du.id
		WHERE a.user_id = $1
		ORDER BY a.start_time DESC`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	defer rows.Close()

	var out []entities.AppointmentResponse
	for rows.Next() {
		var a entities.AppointmentResponse
		var dur sql.NullInt64
		if err := rows.Scan(&a.Code, &a.DoctorID, &a.DoctorName, &a.UserID,
			&a.StartTime, &dur, &a.Reason, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning appointment: %w", err)
		}
		a.DurationMinutes = 30
		if dur.Valid {
			a.DurationMinutes = int(dur.Int64)
		}
		out = append(out, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating appointment rows: %w", err)
	}
	return out, nil
}

func (r *AppointmentRepository) UpdateStatus(code, status string) error {
	_, err := r.DB.Exec(
		`UPDATE appointments SET status = $2, updated_at = NOW() WHERE code = $1`, code, status)
	return err
}
