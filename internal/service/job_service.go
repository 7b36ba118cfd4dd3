package service

import (
	"fmt"
	"log"
	"time"

	"pawhaven/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// CompleteFinishedAppointments marks confirmed appointments whose end time
// has passed as completed.
func (s *JobService) CompleteFinishedAppointments() error {
	log.Println("Cron Job: Checking for appointments to mark as 'completed'...")

	ids, err := s.Repo.GetConfirmedAppointmentIDsPastEnd()
	if err != nil {
		return fmt.Errorf("cron job: failed to get confirmed appointments past end time: %w", err)
	}

	if len(ids) == 0 {
		log.Println("Cron Job: No confirmed appointments found past their end time.")
		return nil
	}

	log.Printf("Cron Job: Found %d appointments to mark as 'completed'. IDs: %v", len(ids), ids)

	if err := s.Repo.UpdateAppointmentStatuses(ids, "completed"); err != nil {
		return fmt.Errorf("cron job: failed to update appointment statuses: %w", err)
	}

	log.Printf("Cron Job: Successfully updated %d appointments to 'completed'.", len(ids))
	return nil
}

// PurgeAbandonedOrders deletes pending orders whose checkout was never paid.
func (s *JobService) PurgeAbandonedOrders() error {
	deleted, err := s.Repo.DeletePendingOrdersOlderThan(time.Now().UTC().Add(-24 * time.Hour))
	if err != nil {
		return fmt.Errorf("cron job: failed to purge abandoned orders: %w", err)
	}
	if deleted > 0 {
		log.Printf("Cron Job: Purged %d abandoned pending orders.", deleted)
	}
	return nil
}
