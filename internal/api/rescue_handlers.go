package api

import (
	"encoding/json"
	"net/http"

	"pawhaven/internal/auth"
	"pawhaven/internal/entities"
	"pawhaven/internal/service"

	"github.com/gorilla/mux"
)

type RescueHandler struct {
	Service *service.RescueService
}

func NewRescueHandler(svc *service.RescueService) *RescueHandler {
	return &RescueHandler{Service: svc}
}

func (h *RescueHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req entities.RescueReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.Service.Report(auth.UserIDFromContext(r.Context()), req)
	if err != nil {
		http.Error(w, "Could not create rescue report", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, report)
}

func (h *RescueHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]
	report, err := h.Service.Get(reference)
	if err != nil {
		http.Error(w, "Rescue report not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *RescueHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Service.List(r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, "Could not list rescue reports", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, reports)
}

func (h *RescueHandler) AdvanceReport(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]
	var req struct {
		Status string `json:"status" validate:"required,oneof=dispatched rescued closed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Service.Advance(reference, req.Status); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	respondMessage(w, http.StatusOK, "Rescue report updated")
}
