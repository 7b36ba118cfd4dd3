package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pawhaven/internal/auth"
	"pawhaven/internal/entities"
	"pawhaven/internal/service"

	"github.com/gorilla/mux"
)

type PetHandler struct {
	Service *service.PetService
}

func NewPetHandler(svc *service.PetService) *PetHandler {
	return &PetHandler{Service: svc}
}

func (h *PetHandler) ListPets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entities.PetFilter{
		Species: q.Get("species"),
		Breed:   q.Get("breed"),
		Status:  q.Get("status"),
	}
	filter.MinAgeMonths, _ = strconv.Atoi(q.Get("min_age_months"))
	filter.MaxAgeMonths, _ = strconv.Atoi(q.Get("max_age_months"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))

	pets, err := h.Service.ListPets(filter)
	if err != nil {
		http.Error(w, "Could not list pets", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, pets)
}

func (h *PetHandler) GetPet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	pet, err := h.Service.GetPet(id)
	if err != nil {
		http.Error(w, "Pet not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, pet)
}

func (h *PetHandler) NearbyPets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	if errLat != nil || errLng != nil {
		http.Error(w, "lat and lng query parameters are required", http.StatusBadRequest)
		return
	}
	limit, _ := strconv.Atoi(q.Get("limit"))

	pets, err := h.Service.NearbyPets(lat, lng, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, pets)
}

func (h *PetHandler) CreatePet(w http.ResponseWriter, r *http.Request) {
	var req entities.PetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pet, err := h.Service.CreatePet(req, auth.UserIDFromContext(r.Context()))
	if err != nil {
		http.Error(w, "Could not create pet", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, pet)
}

func (h *PetHandler) UpdatePet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req entities.PetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Service.UpdatePet(id, req); err != nil {
		http.Error(w, "Could not update pet", http.StatusInternalServerError)
		return
	}
	respondMessage(w, http.StatusOK, "Pet updated")
}

func (h *PetHandler) DeletePet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.DeletePet(id); err != nil {
		http.Error(w, "Could not delete pet", http.StatusInternalServerError)
		return
	}
	respondMessage(w, http.StatusOK, "Pet deleted")
}
