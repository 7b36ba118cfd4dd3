package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pawhaven/internal/db"
	"pawhaven/internal/entities"

	"github.com/lib/pq"
)

type DoctorRepository struct {
	DB *sql.DB
}

func NewDoctorRepository(database *sql.DB) *DoctorRepository {
	return &DoctorRepository{DB: database}
}

func (r *DoctorRepository) GetDoctorByID(id int) (*db.Doctor, error) {
	var d db.Doctor
	query := `
		SELECT d.id, d.user_id, u.name, d.specialty, d.bio, d.fee_cents, d.work_days, d.day_start, d.day_end, d.leave_dates, d.created_at, d.updated_at
		FROM doctors d
		JOIN users u ON d.user_id = u.id
		WHERE d.id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&d.ID, &d.UserID, &d.Name, &d.Specialty, &d.Bio, &d.FeeCents,
		pq.Array(&d.WorkDays), &d.DayStart, &d.DayEnd, pq.Array(&d.LeaveDates),
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("doctor %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying doctor: %w", err)
	}
	return &d, nil
}

func (r *DoctorRepository) GetDoctorByUserID(userID int) (*db.Doctor, error) {
	var d db.Doctor
	query := `
		SELECT d.id, d.user_id, u.name, d.specialty, d.bio, d.fee_cents, d.work_days, d.day_start, d.day_end, d.leave_dates, d.created_at, d.updated_at
		FROM doctors d
		JOIN users u ON d.user_id = u.id
		WHERE d.user_id = $1`
	err := r.DB.QueryRow(query, userID).Scan(
		&d.ID, &d.UserID, &d.Name, &d.Specialty, &d.Bio, &d.FeeCents,
		pq.Array(&d.WorkDays), &d.DayStart, &d.DayEnd, pq.Array(&d.LeaveDates),
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying doctor by user: %w", err)
	}
	return &d, nil
}

func (r *DoctorRepository) ListDoctors() ([]entities.DoctorResponse, error) {
	query := `
		SELECT d.id, u.name, d.specialty, d.bio, d.fee_cents, d.work_days, d.day_start, d.day_end
		FROM doctors d
		JOIN users u ON d.user_id = u.id
		ORDER BY u.name`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error listing doctors: %w", err)
	}
	defer rows.Close()

	var doctors []entities.DoctorResponse
	for rows.Next() {
		var d entities.DoctorResponse
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialty, &d.Bio, &d.FeeCents,
			pq.Array(&d.WorkDays), &d.DayStart, &d.DayEnd); err != nil {
			return nil, fmt.Errorf("error scanning doctor: %w", err)
		}
		doctors = append(doctors, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating doctor rows: %w", err)
	}
	return doctors, nil
}

func (r *DoctorRepository) UpsertDoctorProfile(d *db.Doctor) error {
	query := `
		INSERT INTO doctors (user_id, specialty, bio, fee_cents, work_days, day_start, day_end, leave_dates, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			specialty = EXCLUDED.specialty,
			bio = EXCLUDED.bio,
			fee_cents = EXCLUDED.fee_cents,
			work_days = EXCLUDED.work_days,
			day_start = EXCLUDED.day_start,
			day_end = EXCLUDED.day_end,
			leave_dates = EXCLUDED.leave_dates,
			updated_at = NOW()
		RETURNING id`
	return r.DB.QueryRow(query,
		d.UserID, d.Specialty, d.Bio, d.FeeCents,
		pq.Array(d.WorkDays), d.DayStart, d.DayEnd, pq.Array(d.LeaveDates),
		time.Now().UTC(),
	).Scan(&d.ID)
}
