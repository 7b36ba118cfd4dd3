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

type AppointmentHandler struct {
	Service *service.AppointmentService
}

func NewAppointmentHandler(svc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

func (h *AppointmentHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.Service.ListDoctors()
	if err != nil {
		http.Error(w, "Could not list doctors", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, doctors)
}

func (h *AppointmentHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	doctor, err := h.Service.GetDoctor(id)
	if err != nil {
		http.Error(w, "Doctor not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, doctor)
}

// GetDoctorSlots serves GET /api/doctors/{id}/slots?date=YYYY-MM-DD&duration=30.
func (h *AppointmentHandler) GetDoctorSlots(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		http.Error(w, "date query parameter is required", http.StatusBadRequest)
		return
	}

	duration := 0
	if raw := r.URL.Query().Get("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil || duration <= 0 {
			http.Error(w, "duration must be a positive number of minutes", http.StatusBadRequest)
			return
		}
	}

	slots, err := h.Service.AvailableSlots(id, date, duration)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, slots)
}

func (h *AppointmentHandler) GetDoctorProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Service.GetDoctorProfile(auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *AppointmentHandler) UpdateDoctorProfile(w http.ResponseWriter, r *http.Request) {
	var req entities.DoctorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.Service.UpdateDoctorProfile(auth.UserIDFromContext(r.Context()), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":      id,
		"message": "Doctor profile saved",
	})
}

func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req entities.AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	appt, err := h.Service.BookAppointment(auth.UserIDFromContext(r.Context()), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, appt)
}

func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := h.Service.ListAppointments(auth.UserIDFromContext(r.Context()))
	if err != nil {
		http.Error(w, "Could not list appointments", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, appts)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	appt, err := h.Service.GetAppointment(code, auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, appt)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if err := h.Service.CancelAppointment(code, auth.UserIDFromContext(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Appointment canceled")
}
