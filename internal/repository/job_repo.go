package repository

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetConfirmedAppointmentIDsPastEnd finds confirmed appointments whose end
// time (start + duration, default 30 minutes) has already passed.
func (r *JobRepository) GetConfirmedAppointmentIDsPastEnd() ([]int, error) {
	query := `
		SELECT id FROM appointments
		WHERE status = 'confirmed'
		  AND start_time + (COALESCE(duration_minutes, 30) * interval '1 minute') < NOW()`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying confirmed appointments past end time: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning appointment ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

func (r *JobRepository) UpdateAppointmentStatuses(ids []int, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.DB.Exec(query, newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating appointment statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d appointments to '%s'", rowsAffected, newStatus)
	}
	return nil
}

// DeletePendingOrdersOlderThan removes never-paid orders abandoned at checkout.
// Stock is only taken when payment succeeds, so nothing needs restoring.
func (r *JobRepository) DeletePendingOrdersOlderThan(before time.Time) (int64, error) {
	result, err := r.DB.Exec(
		`DELETE FROM orders WHERE status = 'pending' AND created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("error deleting old pending orders: %w", err)
	}
	return result.RowsAffected()
}
