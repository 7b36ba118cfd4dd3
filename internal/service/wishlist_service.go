package service

import (
	"fmt"

	"pawhaven/internal/entities"
	"pawhaven/internal/repository"
)

type WishlistService struct {
	Repo      *repository.WishlistRepository
	PetRepo   *repository.PetRepository
	StoreRepo *repository.StoreRepository
}

func NewWishlistService(repo *repository.WishlistRepository, petRepo *repository.PetRepository, storeRepo *repository.StoreRepository) *WishlistService {
	return &WishlistService{Repo: repo, PetRepo: petRepo, StoreRepo: storeRepo}
}

func (s *WishlistService) Add(userID int, req entities.WishlistItemRequest) error {
	// the referenced item must exist
	switch req.ItemType {
	case "pet":
		if _, err := s.PetRepo.GetPetByID(req.ItemID); err != nil {
			return err
		}
	case "product":
		if _, err := s.StoreRepo.GetProductByID(req.ItemID); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown wishlist item type %q", req.ItemType)
	}
	return s.Repo.AddItem(userID, req.ItemType, req.ItemID)
}

func (s *WishlistService) Remove(userID int, itemType string, itemID int) error {
	return s.Repo.RemoveItem(userID, itemType, itemID)
}

func (s *WishlistService) List(userID int) ([]entities.WishlistItemResponse, error) {
	return s.Repo.ListItems(userID)
}
