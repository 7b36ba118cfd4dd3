package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pawhaven/internal/auth"
	"pawhaven/internal/entities"
	"pawhaven/internal/service"
)

type ChatHandler struct {
	Service *service.ChatService
}

func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{Service: svc}
}

func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req entities.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reply, err := h.Service.Ask(auth.UserIDFromContext(r.Context()), req.Message)
	if err != nil {
		http.Error(w, "Assistant is unavailable, please try again later", http.StatusBadGateway)
		return
	}
	respondJSON(w, http.StatusOK, entities.ChatResponse{Reply: reply})
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	messages, err := h.Service.History(auth.UserIDFromContext(r.Context()), limit)
	if err != nil {
		http.Error(w, "Could not load chat history", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, messages)
}
