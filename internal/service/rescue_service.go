package service

import (
	"fmt"

	"pawhaven/internal/db"
	"pawhaven/internal/entities"
	"pawhaven/internal/repository"

	"github.com/google/uuid"
)

var rescueTransitions = map[string][]string{
	"reported":   {"dispatched", "closed"},
	"dispatched": {"rescued", "closed"},
	"rescued":    {"closed"},
}

type RescueService struct {
	Repo   *repository.RescueRepository
	sender *SenderService
}

func NewRescueService(repo *repository.RescueRepository, sender *SenderService) *RescueService {
	return &RescueService{Repo: repo, sender: sender}
}

func (s *RescueService) Report(reporterID int, req entities.RescueReportRequest) (*entities.RescueReportResponse, error) {
	report := &db.RescueReport{
		Reference:    uuid.NewString(),
		ReporterID:   reporterID,
		Description:  req.Description,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Address:      req.Address,
		PhotoURL:     req.PhotoURL,
		ContactPhone: req.ContactPhone,
		Status:       "reported",
	}
	if err := s.Repo.CreateReport(report); err != nil {
		return nil, fmt.Errorf("error creating rescue report: %w", err)
	}
	return toRescueResponse(report), nil
}

func (s *RescueService) Get(reference string) (*entities.RescueReportResponse, error) {
	report, err := s.Repo.GetReportByReference(reference)
	if err != nil {
		return nil, err
	}
	return toRescueResponse(report), nil
}

func (s *RescueService) List(status string) ([]entities.RescueReportResponse, error) {
	reports, err := s.Repo.ListReports(status)
	if err != nil {
		return nil, err
	}
	out := make([]entities.RescueReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, *toRescueResponse(&reports[i]))
	}
	return out, nil
}

// Advance moves a report through reported → dispatched → rescued | closed.
// The reporter gets an SMS when a team is dispatched.
func (s *RescueService) Advance(reference, newStatus string) error {
	report, err := s.Repo.GetReportByReference(reference)
	if err != nil {
		return err
	}
	if !allowedTransition(report.Status, newStatus) {
		return fmt.Errorf("cannot move rescue report from %q to %q", report.Status, newStatus)
	}
	if err := s.Repo.UpdateReportStatus(reference, newStatus); err != nil {
		return err
	}
	if newStatus == "dispatched" {
		s.sender.SendRescueSMS(report.ContactPhone, report.Reference, newStatus)
	}
	return nil
}

func allowedTransition(from, to string) bool {
	for _, next := range rescueTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func toRescueResponse(r *db.RescueReport) *entities.RescueReportResponse {
	return &entities.RescueReportResponse{
		Reference:    r.Reference,
		Description:  r.Description,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		Address:      r.Address,
		PhotoURL:     r.PhotoURL,
		ContactPhone: r.ContactPhone,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
	}
}
