package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"pawhaven/internal/repository"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantKm                 float64
		tolerance              float64
	}{
		{"same point", 45.4642, 9.19, 45.4642, 9.19, 0, 0.001},
		{"milan to rome", 45.4642, 9.19, 41.9028, 12.4964, 477, 5},
		{"milan to turin", 45.4642, 9.19, 45.0703, 7.6869, 125, 5},
		{"across the antimeridian", 0, 179.5, 0, -179.5, 111, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := haversineKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			require.InDelta(t, tt.wantKm, got, tt.tolerance)
		})
	}
}

func TestNearbyPets(t *testing.T) {
	now := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)
	petColumns := []string{
		"id", "name", "species", "breed", "age_months", "gender", "description",
		"photo_url", "latitude", "longitude", "status", "created_by", "created_at", "updated_at",
	}

	t.Run("sorts by distance and applies the limit", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		// Caller is in Milan; Rome is further than Turin.
		mock.ExpectQuery(`SELECT id, name, species`).
			WithArgs("available").
			WillReturnRows(sqlmock.NewRows(petColumns).
				AddRow(1, "Romeo", "dog", "mixed", 24, "male", "", "", 41.9028, 12.4964, "available", 1, now, now).
				AddRow(2, "Bianca", "cat", "european", 12, "female", "", "", 45.0703, 7.6869, "available", 1, now, now).
				AddRow(3, "Gigio", "dog", "beagle", 36, "male", "", "", 45.4642, 9.19, "available", 1, now, now))

		svc := NewPetService(repository.NewPetRepository(mockDB))
		got, err := svc.NearbyPets(45.4642, 9.19, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "Gigio", got[0].Name)
		require.Equal(t, "Bianca", got[1].Name)
		require.Less(t, got[0].DistanceKm, got[1].DistanceKm)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects out of range coordinates", func(t *testing.T) {
		mockDB, _, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		svc := NewPetService(repository.NewPetRepository(mockDB))
		_, err = svc.NearbyPets(91, 0, 0)
		require.Error(t, err)
		_, err = svc.NearbyPets(0, 181, 0)
		require.Error(t, err)
	})
}
