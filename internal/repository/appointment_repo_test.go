package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"pawhaven/internal/db"
)

func TestAppointmentRepository_ListForDoctorDay(t *testing.T) {
	dayStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	start := dayStart.Add(9 * time.Hour)
	now := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		mock     func(mock sqlmock.Sqlmock)
		wantLen  int
		wantErr  bool
	}{
		{
			name: "returns day's appointments",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "code", "doctor_id", "user_id", "start_time",
					"duration_minutes", "reason", "status", "created_at", "updated_at",
				}).
					AddRow(1, "A1B2C3D4", 7, 12, start, 30, "checkup", "confirmed", now, now).
					AddRow(2, "E5F6A7B8", 7, 13, start.Add(time.Hour), nil, "vaccines", "confirmed", now, now)
				mock.ExpectQuery(`SELECT id, code, doctor_id, user_id, start_time`).
					WithArgs(7, dayStart, dayStart.Add(24*time.Hour)).
					WillReturnRows(rows)
			},
			wantLen: 2,
		},
		{
			name: "empty day",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, code, doctor_id, user_id, start_time`).
					WithArgs(7, dayStart, dayStart.Add(24*time.Hour)).
					WillReturnRows(sqlmock.NewRows([]string{
						"id", "code", "doctor_id", "user_id", "start_time",
						"duration_minutes", "reason", "status", "created_at", "updated_at",
					}))
			},
			wantLen: 0,
		},
		{
			name: "query error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, code, doctor_id, user_id, start_time`).
					WithArgs(7, dayStart, dayStart.Add(24*time.Hour)).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer mockDB.Close()
			tt.mock(mock)

			repo := NewAppointmentRepository(mockDB)
			got, err := repo.ListForDoctorDay(7, dayStart)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAppointmentRepository_CreateIfFree(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	dayStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)

	newAppt := func() *db.Appointment {
		return &db.Appointment{
			Code:      "A1B2C3D4",
			DoctorID:  7,
			UserID:    12,
			StartTime: start,
			Reason:    "checkup",
			Status:    "confirmed",
		}
	}

	t.Run("inserts when the interval is free", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT start_time, duration_minutes`).
			WithArgs(7, dayStart, dayStart.Add(24*time.Hour)).
			WillReturnRows(sqlmock.NewRows([]string{"start_time", "duration_minutes"}).
				AddRow(start.Add(time.Hour), 30))
		mock.ExpectQuery(`INSERT INTO appointments`).
			WithArgs("A1B2C3D4", 7, 12, start, nil, "checkup", "confirmed", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(42, now, now))
		mock.ExpectCommit()

		appt := newAppt()
		require.NoError(t, NewAppointmentRepository(mockDB).CreateIfFree(appt))
		require.Equal(t, 42, appt.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects an overlapping interval", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT start_time, duration_minutes`).
			WithArgs(7, dayStart, dayStart.Add(24*time.Hour)).
			WillReturnRows(sqlmock.NewRows([]string{"start_time", "duration_minutes"}).
				AddRow(start.Add(15*time.Minute), 30))
		mock.ExpectRollback()

		err = NewAppointmentRepository(mockDB).CreateIfFree(newAppt())
		require.ErrorIs(t, err, ErrSlotTaken)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("accepts a back to back interval", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT start_time, duration_minutes`).
			WithArgs(7, dayStart, dayStart.Add(24*time.Hour)).
			WillReturnRows(sqlmock.NewRows([]string{"start_time", "duration_minutes"}).
				AddRow(start.Add(30*time.Minute), 30))
		mock.ExpectQuery(`INSERT INTO appointments`).
			WithArgs("A1B2C3D4", 7, 12, start, nil, "checkup", "confirmed", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(43, now, now))
		mock.ExpectCommit()

		require.NoError(t, NewAppointmentRepository(mockDB).CreateIfFree(newAppt()))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
