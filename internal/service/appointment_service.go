package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"pawhaven/internal/db"
	"pawhaven/internal/entities"
	apperrors "pawhaven/internal/errors"
	"pawhaven/internal/repository"
)

const (
	statusConfirmed = "confirmed"
	statusCanceled  = "canceled"
)

// Appointments can only be canceled with enough notice for the slot to be
// rebooked.
const cancelNotice = 12 * time.Hour

type AppointmentService struct {
	Repo       *repository.AppointmentRepository
	DoctorRepo *repository.DoctorRepository
	sender     *SenderService
}

func NewAppointmentService(repo *repository.AppointmentRepository, doctorRepo *repository.DoctorRepository, sender *SenderService) *AppointmentService {
	return &AppointmentService{
		Repo:       repo,
		DoctorRepo: doctorRepo,
		sender:     sender,
	}
}

func (s *AppointmentService) ListDoctors() ([]entities.DoctorResponse, error) {
	return s.DoctorRepo.ListDoctors()
}

func (s *AppointmentService) GetDoctor(id int) (*entities.DoctorResponse, error) {
	doc, err := s.DoctorRepo.GetDoctorByID(id)
	if err != nil {
		return nil, err
	}
	return &entities.DoctorResponse{
		ID:         doc.ID,
		Name:       doc.Name,
		Specialty:  doc.Specialty,
		Bio:        doc.Bio,
		FeeCents:   doc.FeeCents,
		WorkDays:   doc.WorkDays,
		DayStart:   doc.DayStart,
		DayEnd:     doc.DayEnd,
		LeaveDates: doc.LeaveDates,
	}, nil
}

// GetDoctorProfile returns the caller's own provider profile, including the
// leave dates the public doctor listing leaves out.
func (s *AppointmentService) GetDoctorProfile(userID int) (*entities.DoctorResponse, error) {
	doc, err := s.DoctorRepo.GetDoctorByUserID(userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.ErrNotFound("doctor profile not configured yet")
	}
	return &entities.DoctorResponse{
		ID:         doc.ID,
		Name:       doc.Name,
		Specialty:  doc.Specialty,
		Bio:        doc.Bio,
		FeeCents:   doc.FeeCents,
		WorkDays:   doc.WorkDays,
		DayStart:   doc.DayStart,
		DayEnd:     doc.DayEnd,
		LeaveDates: doc.LeaveDates,
	}, nil
}

// UpdateDoctorProfile is the doctor's own profile mutation; it is the only
// writer of the schedule/window/leave configuration the resolver reads.
func (s *AppointmentService) UpdateDoctorProfile(userID int, req entities.DoctorProfileRequest) (int, error) {
	doc := &db.Doctor{
		UserID:     userID,
		Specialty:  req.Specialty,
		Bio:        req.Bio,
		FeeCents:   req.FeeCents,
		WorkDays:   req.WorkDays,
		DayStart:   req.DayStart,
		DayEnd:     req.DayEnd,
		LeaveDates: req.LeaveDates,
	}
	if doc.DayStart != "" && doc.DayEnd != "" && doc.DayStart >= doc.DayEnd {
		return 0, apperrors.ErrBadRequest("day_start must be before day_end")
	}
	if err := s.DoctorRepo.UpsertDoctorProfile(doc); err != nil {
		return 0, fmt.Errorf("error saving doctor profile: %w", err)
	}
	return doc.ID, nil
}

// AvailableSlots answers "what start times are bookable for this doctor on
// this date". The date-level checks run first so unavailable dates never hit
// the appointment query.
func (s *AppointmentService) AvailableSlots(doctorID int, date string, durationMinutes int) (*entities.SlotsResponse, error) {
	doc, err := s.DoctorRepo.GetDoctorByID(doctorID)
	if err != nil {
		return nil, apperrors.ErrNotFound(fmt.Sprintf("doctor %d not found", doctorID))
	}
	cfg := SlotConfig{
		WorkDays:   doc.WorkDays,
		DayStart:   doc.DayStart,
		DayEnd:     doc.DayEnd,
		LeaveDates: doc.LeaveDates,
	}
	if durationMinutes == 0 {
		durationMinutes = defaultConsultationMinutes
	}

	resp := &entities.SlotsResponse{
		DoctorID:        doctorID,
		Date:            date,
		DurationMinutes: durationMinutes,
	}

	ok, note, err := CheckDayAvailable(cfg, date)
	if err != nil {
		return nil, apperrors.ErrBadRequest(err.Error())
	}
	if !ok {
		resp.Note = note
		return resp, nil
	}

	day, _ := time.Parse("2006-01-02", date)
	appts, err := s.Repo.ListForDoctorDay(doctorID, day)
	if err != nil {
		return nil, fmt.Errorf("internal error checking availability: %w", err)
	}
	bookings := make([]BookedInterval, 0, len(appts))
	for _, a := range appts {
		b := BookedInterval{Start: a.StartTime}
		if a.DurationMinutes.Valid {
			b.Minutes = int(a.DurationMinutes.Int64)
		}
		bookings = append(bookings, b)
	}

	slots, note, err := ResolveSlots(cfg, bookings, date, durationMinutes)
	if err != nil {
		return nil, err
	}
	resp.Slots = slots
	resp.Note = note
	return resp, nil
}

func (s *AppointmentService) BookAppointment(userID int, req entities.AppointmentRequest) (*entities.AppointmentResponse, error) {
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, apperrors.ErrBadRequest(fmt.Sprintf("invalid start_time %q, expected RFC3339", req.StartTime))
	}
	start = start.UTC()
	if req.DurationMinutes < 0 {
		return nil, apperrors.ErrBadRequest("duration must be a positive number of minutes")
	}

	doc, err := s.DoctorRepo.GetDoctorByID(req.DoctorID)
	if err != nil {
		return nil, apperrors.ErrNotFound(fmt.Sprintf("doctor %d not found", req.DoctorID))
	}
	cfg := SlotConfig{
		WorkDays:   doc.WorkDays,
		DayStart:   doc.DayStart,
		DayEnd:     doc.DayEnd,
		LeaveDates: doc.LeaveDates,
	}
	date := start.Format("2006-01-02")
	ok, note, err := CheckDayAvailable(cfg, date)
	if err != nil {
		return nil, err
	}
	if !ok {
		if note == "" {
			note = "doctor has no availability configured"
		}
		return nil, apperrors.ErrConflict("doctor not available: " + note)
	}

	code := fmt.Sprintf("%08X", time.Now().UnixNano()%100000000)
	appt := &db.Appointment{
		Code:      code,
		DoctorID:  req.DoctorID,
		UserID:    userID,
		StartTime: start,
		Reason:    req.Reason,
		Status:    statusConfirmed,
	}
	if req.DurationMinutes > 0 {
		appt.DurationMinutes = sql.NullInt64{Int64: int64(req.DurationMinutes), Valid: true}
	}

	if err := s.Repo.CreateIfFree(appt); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, apperrors.ErrConflict(err.Error())
		}
		return nil, err
	}

	resp, err := s.Repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	s.sender.SendAppointmentEmail(*resp, statusConfirmed)
	s.sender.SendAppointmentSMS(*resp, statusConfirmed)
	return resp, nil
}

func (s *AppointmentService) GetAppointment(code string, userID int) (*entities.AppointmentResponse, error) {
	appt, err := s.Repo.GetByCode(code)
	if err != nil {
		return nil, apperrors.ErrNotFound(fmt.Sprintf("appointment %q not found", code))
	}
	if appt.UserID != userID {
		return nil, apperrors.ErrForbidden(fmt.Sprintf("appointment %q does not belong to caller", code))
	}
	return appt, nil
}

func (s *AppointmentService) ListAppointments(userID int) ([]entities.AppointmentResponse, error) {
	return s.Repo.ListByUser(userID)
}

func (s *AppointmentService) CancelAppointment(code string, userID int) error {
	appt, err := s.Repo.GetByCode(code)
	if err != nil {
		return apperrors.ErrNotFound(fmt.Sprintf("appointment %q not found", code))
	}
	if appt.UserID != userID {
		return apperrors.ErrForbidden(fmt.Sprintf("appointment %q does not belong to caller", code))
	}
	if appt.Status == statusCanceled {
		return apperrors.ErrConflict(fmt.Sprintf("appointment %q is already canceled", code))
	}

	if time.Until(appt.StartTime) < cancelNotice {
		log.Printf("Appointment %s cancel rejected: less than %v before start", code, cancelNotice)
		return apperrors.ErrConflict(fmt.Sprintf("appointments can only be canceled more than %d hours before the start time", int(cancelNotice.Hours())))
	}

	if err := s.Repo.UpdateStatus(code, statusCanceled); err != nil {
		return err
	}
	s.sender.SendAppointmentEmail(*appt, statusCanceled)
	s.sender.SendAppointmentSMS(*appt, statusCanceled)
	return nil
}
