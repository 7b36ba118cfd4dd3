package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pawhaven/internal/db"
	"pawhaven/internal/entities"
)

type AdoptionRepository struct {
	DB *sql.DB
}

func NewAdoptionRepository(database *sql.DB) *AdoptionRepository {
	return &AdoptionRepository{DB: database}
}

func (r *AdoptionRepository) CreateRequest(req *db.AdoptionRequest) error {
	query := `
		INSERT INTO adoption_requests (pet_id, user_id, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query, req.PetID, req.UserID, req.Message, req.Status, time.Now().UTC()).
		Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

// HasOpenRequest reports whether the user already has a pending request for the pet.
func (r *AdoptionRepository) HasOpenRequest(petID, userID int) (bool, error) {
	var id int
	err := r.DB.QueryRow(
		`SELECT id FROM adoption_requests WHERE pet_id = $1 AND user_id = $2 AND status = 'pending'`,
		petID, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *AdoptionRepository) GetRequestByID(id int) (*db.AdoptionRequest, error) {
	var req db.AdoptionRequest
	err := r.DB.QueryRow(
		`SELECT id, pet_id, user_id, message, status, created_at, updated_at
		 FROM adoption_requests WHERE id = $1`, id).
		Scan(&req.ID, &req.PetID, &req.UserID, &req.Message, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("adoption request %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying adoption request: %w", err)
	}
	return &req, nil
}

func (r *AdoptionRepository) ListRequestsByUser(userID int) ([]entities.AdoptionRequestResponse, error) {
	query := `
		SELECT ar.id, ar.pet_id, p.name, ar.user_id, ar.message, ar.status, ar.created_at
		FROM adoption_requests ar
		JOIN pets p ON ar.pet_id = p.id
		WHERE ar.user_id = $1
		ORDER BY ar.created_at DESC`
	return r.scanRequests(r.DB.Query(query, userID))
}

func (r *AdoptionRepository) ListRequestsByPet(petID int) ([]entities.AdoptionRequestResponse, error) {
	query := `
		SELECT ar.id, ar.pet_id, p.name, ar.user_id, ar.message, ar.status, ar.created_at
		FROM adoption_requests ar
		JOIN pets p ON ar.pet_id = p.id
		WHERE ar.pet_id = $1
		ORDER BY ar.created_at ASC`
	return r.scanRequests(r.DB.Query(query, petID))
}

func (r *AdoptionRepository) scanRequests(rows *sql.Rows, err error) ([]entities.AdoptionRequestResponse, error) {
	if err != nil {
		return nil, fmt.Errorf("error listing adoption requests: %w", err)
	}
	defer rows.Close()

	var out []entities.AdoptionRequestResponse
	for rows.Next() {
		var ar entities.AdoptionRequestResponse
		if err := rows.Scan(&ar.ID, &ar.PetID, &ar.PetName, &ar.UserID, &ar.Message, &ar.Status, &ar.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning adoption request: %w", err)
		}
		out = append(out, ar)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating adoption request rows: %w", err)
	}
	return out, nil
}

// ApproveRequest marks one request approved, rejects every other open request
// for the same pet and flips the pet to adopted, all in one transaction.
func (r *AdoptionRepository) ApproveRequest(requestID, petID int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting approval transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`UPDATE adoption_requests SET status = 'approved', updated_at = NOW() WHERE id = $1`,
		requestID); err != nil {
		return fmt.Errorf("error approving request %d: %w", requestID, err)
	}
	if _, err := tx.Exec(
		`UPDATE adoption_requests SET status = 'rejected', updated_at = NOW()
		 WHERE pet_id = $1 AND id <> $2 AND status = 'pending'`,
		petID, requestID); err != nil {
		return fmt.Errorf("error rejecting competing requests for pet %d: %w", petID, err)
	}
	if _, err := tx.Exec(
		`UPDATE pets SET status = 'adopted', updated_at = NOW() WHERE id = $1`,
		petID); err != nil {
		return fmt.Errorf("error marking pet %d adopted: %w", petID, err)
	}
	return tx.Commit()
}

func (r *AdoptionRepository) UpdateRequestStatus(id int, status string) error {
	_, err := r.DB.Exec(
		`UPDATE adoption_requests SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}
