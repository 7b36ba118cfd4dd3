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

type WishlistHandler struct {
	Service *service.WishlistService
}

func NewWishlistHandler(svc *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{Service: svc}
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(auth.UserIDFromContext(r.Context()))
	if err != nil {
		http.Error(w, "Could not list wishlist", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req entities.WishlistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Service.Add(auth.UserIDFromContext(r.Context()), req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondMessage(w, http.StatusCreated, "Added to wishlist")
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	itemID, err := strconv.Atoi(vars["item_id"])
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.Remove(auth.UserIDFromContext(r.Context()), vars["item_type"], itemID); err != nil {
		http.Error(w, "Could not remove wishlist item", http.StatusInternalServerError)
		return
	}
	respondMessage(w, http.StatusOK, "Removed from wishlist")
}
