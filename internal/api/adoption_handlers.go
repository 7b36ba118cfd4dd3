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

type AdoptionHandler struct {
	Service *service.AdoptionService
}

func NewAdoptionHandler(svc *service.AdoptionService) *AdoptionHandler {
	return &AdoptionHandler{Service: svc}
}

func (h *AdoptionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	petID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid pet ID", http.StatusBadRequest)
		return
	}
	var req entities.AdoptionRequestCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.Service.Apply(auth.UserIDFromContext(r.Context()), petID, req.Message)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      created.ID,
		"status":  created.Status,
		"message": "Adoption request submitted.",
	})
}

func (h *AdoptionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.ListMine(auth.UserIDFromContext(r.Context()))
	if err != nil {
		http.Error(w, "Could not list adoption requests", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

func (h *AdoptionHandler) ListForPet(w http.ResponseWriter, r *http.Request) {
	petID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid pet ID", http.StatusBadRequest)
		return
	}
	requests, err := h.Service.ListForPet(petID)
	if err != nil {
		http.Error(w, "Could not list adoption requests", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

func (h *AdoptionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.Approve(id); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	respondMessage(w, http.StatusOK, "Adoption request approved")
}

func (h *AdoptionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.Reject(id); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	respondMessage(w, http.StatusOK, "Adoption request rejected")
}
