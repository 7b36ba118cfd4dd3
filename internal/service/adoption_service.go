package service

import (
	"fmt"
	"time"

	"pawhaven/internal/db"
	"pawhaven/internal/entities"
	"pawhaven/internal/repository"
)

type AdoptionService struct {
	Repo     *repository.AdoptionRepository
	PetRepo  *repository.PetRepository
	UserRepo repository.UserRepository
	sender   *SenderService
}

func NewAdoptionService(repo *repository.AdoptionRepository, petRepo *repository.PetRepository, userRepo repository.UserRepository, sender *SenderService) *AdoptionService {
	return &AdoptionService{
		Repo:     repo,
		PetRepo:  petRepo,
		UserRepo: userRepo,
		sender:   sender,
	}
}

func (s *AdoptionService) Apply(userID, petID int, message string) (*db.AdoptionRequest, error) {
	pet, err := s.PetRepo.GetPetByID(petID)
	if err != nil {
		return nil, err
	}
	if pet.Status != "available" {
		return nil, fmt.Errorf("pet %q is not available for adoption", pet.Name)
	}
	open, err := s.Repo.HasOpenRequest(petID, userID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, fmt.Errorf("you already have a pending request for this pet")
	}

	req := &db.AdoptionRequest{
		PetID:     petID,
		UserID:    userID,
		Message:   message,
		Status:    "pending",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.Repo.CreateRequest(req); err != nil {
		return nil, fmt.Errorf("error creating adoption request: %w", err)
	}
	return req, nil
}

func (s *AdoptionService) ListMine(userID int) ([]entities.AdoptionRequestResponse, error) {
	return s.Repo.ListRequestsByUser(userID)
}

func (s *AdoptionService) ListForPet(petID int) ([]entities.AdoptionRequestResponse, error) {
	return s.Repo.ListRequestsByPet(petID)
}

// Approve grants the request; competing pending requests for the pet are
// rejected and the pet marked adopted in the same transaction.
func (s *AdoptionService) Approve(requestID int) error {
	req, err := s.Repo.GetRequestByID(requestID)
	if err != nil {
		return err
	}
	if req.Status != "pending" {
		return fmt.Errorf("adoption request %d is not pending", requestID)
	}

	if err := s.Repo.ApproveRequest(requestID, req.PetID); err != nil {
		return err
	}
	s.notify(req, "approved")
	return nil
}

func (s *AdoptionService) Reject(requestID int) error {
	req, err := s.Repo.GetRequestByID(requestID)
	if err != nil {
		return err
	}
	if req.Status != "pending" {
		return fmt.Errorf("adoption request %d is not pending", requestID)
	}
	if err := s.Repo.UpdateRequestStatus(requestID, "rejected"); err != nil {
		return err
	}
	s.notify(req, "rejected")
	return nil
}

func (s *AdoptionService) notify(req *db.AdoptionRequest, status string) {
	user, err := s.UserRepo.GetByID(req.UserID)
	if err != nil || user == nil {
		return
	}
	pet, err := s.PetRepo.GetPetByID(req.PetID)
	if err != nil {
		return
	}
	s.sender.SendAdoptionEmail(user.Email, user.Name, pet.Name, status)
	s.sender.SendAdoptionSMS(user.Phone, pet.Name, status)
}
