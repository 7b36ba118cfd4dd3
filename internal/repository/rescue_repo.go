package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pawhaven/internal/db"
)

type RescueRepository struct {
	DB *sql.DB
}

func NewRescueRepository(database *sql.DB) *RescueRepository {
	return &RescueRepository{DB: database}
}

func (r *RescueRepository) CreateReport(report *db.RescueReport) error {
	query := `
		INSERT INTO rescue_reports
		(reference, reporter_id, description, latitude, longitude, address, photo_url, contact_phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		report.Reference, report.ReporterID, report.Description,
		report.Latitude, report.Longitude, report.Address,
		report.PhotoURL, report.ContactPhone, report.Status, time.Now().UTC(),
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
}

func (r *RescueRepository) GetReportByReference(reference string) (*db.RescueReport, error) {
	var rep db.RescueReport
	query := `
		SELECT id, reference, reporter_id, description, latitude, longitude, address, photo_url, contact_phone, status, created_at, updated_at
		FROM rescue_reports WHERE reference = $1`
	err := r.DB.QueryRow(query, reference).Scan(
		&rep.ID, &rep.Reference, &rep.ReporterID, &rep.Description,
		&rep.Latitude, &rep.Longitude, &rep.Address,
		&rep.PhotoURL, &rep.ContactPhone, &rep.Status, &rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("rescue report %q not found: %w", reference, err)
		}
		return nil, fmt.Errorf("error querying rescue report: %w", err)
	}
	return &rep, nil
}

func (r *RescueRepository) ListReports(status string) ([]db.RescueReport, error) {
	query := `
		SELECT id, reference, reporter_id, description, latitude, longitude, address, photo_url, contact_phone, status, created_at, updated_at
		FROM rescue_reports`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing rescue reports: %w", err)
	}
	defer rows.Close()

	var reports []db.RescueReport
	for rows.Next() {
		var rep db.RescueReport
		if err := rows.Scan(
			&rep.ID, &rep.Reference, &rep.ReporterID, &rep.Description,
			&rep.Latitude, &rep.Longitude, &rep.Address,
			&rep.PhotoURL, &rep.ContactPhone, &rep.Status, &rep.CreatedAt, &rep.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning rescue report: %w", err)
		}
		reports = append(reports, rep)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rescue report rows: %w", err)
	}
	return reports, nil
}

func (r *RescueRepository) UpdateReportStatus(reference, status string) error {
	_, err := r.DB.Exec(
		`UPDATE rescue_reports SET status = $2, updated_at = NOW() WHERE reference = $1`,
		reference, status)
	return err
}
