package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"pawhaven/internal/db"
	"pawhaven/internal/entities"
	"pawhaven/internal/repository"
)

const earthRadiusKm = 6371.0

type PetService struct {
	Repo *repository.PetRepository
}

func NewPetService(repo *repository.PetRepository) *PetService {
	return &PetService{Repo: repo}
}

func (s *PetService) CreatePet(req entities.PetRequest, createdBy int) (*entities.PetResponse, error) {
	pet := &db.Pet{
		Name:        req.Name,
		Species:     req.Species,
		Breed:       req.Breed,
		AgeMonths:   req.AgeMonths,
		Gender:      req.Gender,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      "available",
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.CreatePet(pet); err != nil {
		return nil, fmt.Errorf("error creating pet: %w", err)
	}
	resp := toPetResponse(*pet)
	return &resp, nil
}

func (s *PetService) GetPet(id int) (*entities.PetResponse, error) {
	pet, err := s.Repo.GetPetByID(id)
	if err != nil {
		return nil, err
	}
	resp := toPetResponse(*pet)
	return &resp, nil
}

func (s *PetService) ListPets(filter entities.PetFilter) ([]entities.PetResponse, error) {
	pets, err := s.Repo.ListPets(filter)
	if err != nil {
		return nil, err
	}
	out := make([]entities.PetResponse, 0, len(pets))
	for _, p := range pets {
		out = append(out, toPetResponse(p))
	}
	return out, nil
}

// NearbyPets returns available pets sorted by Haversine distance from the
// caller's coordinates.
func (s *PetService) NearbyPets(lat, lng float64, limit int) ([]entities.NearbyPet, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("invalid coordinates (%f, %f)", lat, lng)
	}
	pets, err := s.Repo.ListPets(entities.PetFilter{Status: "available"})
	if err != nil {
		return nil, err
	}

	nearby := make([]entities.NearbyPet, 0, len(pets))
	for _, p := range pets {
		nearby = append(nearby, entities.NearbyPet{
			PetResponse: toPetResponse(p),
			DistanceKm:  haversineKm(lat, lng, p.Latitude, p.Longitude),
		})
	}
	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})
	if limit > 0 && len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}

func (s *PetService) UpdatePet(id int, req entities.PetRequest) error {
	pet, err := s.Repo.GetPetByID(id)
	if err != nil {
		return err
	}
	pet.Name = req.Name
	pet.Species = req.Species
	pet.Breed = req.Breed
	pet.AgeMonths = req.AgeMonths
	pet.Gender = req.Gender
	pet.Description = req.Description
	pet.PhotoURL = req.PhotoURL
	pet.Latitude = req.Latitude
	pet.Longitude = req.Longitude
	return s.Repo.UpdatePet(pet)
}

func (s *PetService) DeletePet(id int) error {
	return s.Repo.DeletePet(id)
}

// haversineKm computes the great-circle distance between two points.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toPetResponse(p db.Pet) entities.PetResponse {
	return entities.PetResponse{
		ID:          p.ID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		AgeMonths:   p.AgeMonths,
		Gender:      p.Gender,
		Description: p.Description,
		PhotoURL:    p.PhotoURL,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}
