package service

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	apperrors "pawhaven/internal/errors"
	"pawhaven/internal/repository"
)

var doctorColumns = []string{
	"id", "user_id", "name", "specialty", "bio", "fee_cents",
	"work_days", "day_start", "day_end", "leave_dates", "created_at", "updated_at",
}

func newTestAppointmentService(t *testing.T) (*AppointmentService, sqlmock.Sqlmock) {
	t.Helper()
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	svc := NewAppointmentService(
		repository.NewAppointmentRepository(database),
		repository.NewDoctorRepository(database),
		NewSenderService(),
	)
	return svc, mock
}

func expectDoctorByID(mock sqlmock.Sqlmock, doctorID int, workDays, dayStart, dayEnd, leaveDates string) {
	now := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(doctorColumns).
		AddRow(doctorID, 3, "Dr. Ada Rossi", "general", "Small animals", 4500,
			workDays, dayStart, dayEnd, leaveDates, now, now)
	mock.ExpectQuery(`SELECT d.id, d.user_id, u.name`).
		WithArgs(doctorID).
		WillReturnRows(rows)
}

// Unavailable dates must be answered from the doctor's configuration alone;
// sqlmock fails the test if the appointment query runs anyway.
func TestAvailableSlotsDateChecksShortCircuit(t *testing.T) {
	tests := []struct {
		name       string
		date       string
		workDays   string
		leaveDates string
		wantNote   string
	}{
		{
			name:       "leave day",
			date:       "2026-03-02",
			workDays:   "{Monday,Wednesday,Friday}",
			leaveDates: "{2026-03-02}",
			wantNote:   "provider on leave for this date",
		},
		{
			name:       "off weekday",
			date:       "2026-03-03", // a Tuesday
			workDays:   "{Monday,Wednesday,Friday}",
			leaveDates: "{}",
			wantNote:   "provider does not work on Tuesday",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, mock := newTestAppointmentService(t)
			expectDoctorByID(mock, 7, tc.workDays, "09:00", "17:00", tc.leaveDates)

			resp, err := svc.AvailableSlots(7, tc.date, 0)
			require.NoError(t, err)
			require.Empty(t, resp.Slots)
			require.Equal(t, tc.wantNote, resp.Note)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// A booked row with NULL duration shades the default 30 minutes; an explicit
// duration shades every grid slot it touches.
func TestAvailableSlotsMapsBookedDurations(t *testing.T) {
	svc, mock := newTestAppointmentService(t)
	expectDoctorByID(mock, 7, "{Monday}", "09:00", "11:30", "{}")

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)
	apptRows := sqlmock.NewRows([]string{
		"id", "code", "doctor_id", "user_id", "start_time",
		"duration_minutes", "reason", "status", "created_at", "updated_at",
	}).
		AddRow(1, "A1B2C3D4", 7, 12, day.Add(9*time.Hour), nil, "checkup", "confirmed", created, created).
		AddRow(2, "E5F6A7B8", 7, 13, day.Add(10*time.Hour), 45, "surgery", "confirmed", created, created)
	mock.ExpectQuery(`SELECT id, code, doctor_id, user_id, start_time`).
		WithArgs(7, day, day.Add(24*time.Hour)).
		WillReturnRows(apptRows)

	resp, err := svc.AvailableSlots(7, "2026-03-02", 30)
	require.NoError(t, err)
	require.Empty(t, resp.Note)
	// 09:00 is shaded by the NULL-duration booking, 10:00 and 10:30 by the
	// 45-minute one.
	require.Equal(t, []time.Time{
		day.Add(9*time.Hour + 30*time.Minute),
		day.Add(11 * time.Hour),
	}, resp.Slots)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDoctorIncludesName(t *testing.T) {
	svc, mock := newTestAppointmentService(t)
	expectDoctorByID(mock, 7, "{Monday}", "09:00", "17:00", "{}")

	doc, err := svc.GetDoctor(7)
	require.NoError(t, err)
	require.Equal(t, "Dr. Ada Rossi", doc.Name)
	require.Equal(t, "general", doc.Specialty)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDoctorProfile(t *testing.T) {
	t.Run("returns own profile", func(t *testing.T) {
		svc, mock := newTestAppointmentService(t)
		now := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows(doctorColumns).
			AddRow(7, 3, "Dr. Ada Rossi", "general", "Small animals", 4500,
				"{Monday}", "09:00", "17:00", "{2026-03-02}", now, now)
		mock.ExpectQuery(`WHERE d.user_id = \$1`).
			WithArgs(3).
			WillReturnRows(rows)

		profile, err := svc.GetDoctorProfile(3)
		require.NoError(t, err)
		require.Equal(t, 7, profile.ID)
		require.Equal(t, "Dr. Ada Rossi", profile.Name)
		require.Equal(t, []string{"2026-03-02"}, profile.LeaveDates)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not configured yet", func(t *testing.T) {
		svc, mock := newTestAppointmentService(t)
		mock.ExpectQuery(`WHERE d.user_id = \$1`).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows(doctorColumns))

		_, err := svc.GetDoctorProfile(3)
		var httpErr *apperrors.HTTPError
		require.True(t, errors.As(err, &httpErr))
		require.Equal(t, http.StatusNotFound, httpErr.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
