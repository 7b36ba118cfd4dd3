package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pawhaven/internal/db"
	"pawhaven/internal/entities"
)

type PetRepository struct {
	DB *sql.DB
}

func NewPetRepository(database *sql.DB) *PetRepository {
	return &PetRepository{DB: database}
}

func (r *PetRepository) CreatePet(pet *db.Pet) error {
	query := `
		INSERT INTO pets
		(name, species, breed, age_months, gender, description, photo_url, latitude, longitude, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		pet.Name,
		pet.Species,
		pet.Breed,
		pet.AgeMonths,
		pet.Gender,
		pet.Description,
		pet.PhotoURL,
		pet.Latitude,
		pet.Longitude,
		pet.Status,
		pet.CreatedBy,
		pet.CreatedAt,
		pet.UpdatedAt,
	).Scan(&pet.ID, &pet.CreatedAt, &pet.UpdatedAt)
}

func (r *PetRepository) GetPetByID(id int) (*db.Pet, error) {
	var p db.Pet
	query := `
		SELECT id, name, species, breed, age_months, gender, description, photo_url, latitude, longitude, status, created_by, created_at, updated_at
		FROM pets WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&p.ID, &p.Name, &p.Species, &p.Breed, &p.AgeMonths, &p.Gender, &p.Description,
		&p.PhotoURL, &p.Latitude, &p.Longitude, &p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("pet %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying pet: %w", err)
	}
	return &p, nil
}

// ListPets applies the public listing filters. Empty string / zero filter
// fields are skipped.
func (r *PetRepository) ListPets(filter entities.PetFilter) ([]db.Pet, error) {
	query := `
		SELECT id, name, species, breed, age_months, gender, description, photo_url, latitude, longitude, status, created_by, created_at, updated_at
		FROM pets WHERE 1=1`
	var args []interface{}
	idx := 1
	if filter.Species != "" {
		query += fmt.Sprintf(" AND species = $%d", idx)
		args = append(args, filter.Species)
		idx++
	}
	if filter.Breed != "" {
		query += fmt.Sprintf(" AND breed = $%d", idx)
		args = append(args, filter.Breed)
		idx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, filter.Status)
		idx++
	}
	if filter.MinAgeMonths > 0 {
		query += fmt.Sprintf(" AND age_months >= $%d", idx)
		args = append(args, filter.MinAgeMonths)
		idx++
	}
	if filter.MaxAgeMonths > 0 {
		query += fmt.Sprintf(" AND age_months <= $%d", idx)
		args = append(args, filter.MaxAgeMonths)
		idx++
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", idx)
		args = append(args, filter.Limit)
		idx++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", idx)
		args = append(args, filter.Offset)
	}

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing pets: %w", err)
	}
	defer rows.Close()

	var pets []db.Pet
	for rows.Next() {
		var p db.Pet
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Species, &p.Breed, &p.AgeMonths, &p.Gender, &p.Description,
			&p.PhotoURL, &p.Latitude, &p.Longitude, &p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning pet: %w", err)
		}
		pets = append(pets, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating pet rows: %w", err)
	}
	return pets, nil
}

func (r *PetRepository) UpdatePet(pet *db.Pet) error {
	query := `
		UPDATE pets SET
			name = $2, species = $3, breed = $4, age_months = $5, gender = $6,
			description = $7, photo_url = $8, latitude = $9, longitude = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.DB.Exec(query,
		pet.ID, pet.Name, pet.Species, pet.Breed, pet.AgeMonths, pet.Gender,
		pet.Description, pet.PhotoURL, pet.Latitude, pet.Longitude, time.Now().UTC())
	return err
}

func (r *PetRepository) UpdatePetStatus(id int, status string) error {
	_, err := r.DB.Exec(`UPDATE pets SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

func (r *PetRepository) DeletePet(id int) error {
	_, err := r.DB.Exec(`DELETE FROM pets WHERE id = $1`, id)
	return err
}
