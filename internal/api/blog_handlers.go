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

type BlogHandler struct {
	Service *service.BlogService
}

func NewBlogHandler(svc *service.BlogService) *BlogHandler {
	return &BlogHandler{Service: svc}
}

func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	posts, err := h.Service.ListPosts(limit, offset)
	if err != nil {
		http.Error(w, "Could not list posts", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *BlogHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.Service.GetPost(mux.Vars(r)["slug"])
	if err != nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *BlogHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req entities.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.Service.CreatePost(auth.UserIDFromContext(r.Context()), req)
	if err != nil {
		http.Error(w, "Could not create post", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

func (h *BlogHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	var req entities.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Service.UpdatePost(id, req); err != nil {
		http.Error(w, "Could not update post", http.StatusInternalServerError)
		return
	}
	respondMessage(w, http.StatusOK, "Post updated")
}

func (h *BlogHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.DeletePost(id); err != nil {
		http.Error(w, "Could not delete post", http.StatusInternalServerError)
		return
	}
	respondMessage(w, http.StatusOK, "Post deleted")
}

func (h *BlogHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Service.ListUpcomingEvents()
	if err != nil {
		http.Error(w, "Could not list events", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

func (h *BlogHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req entities.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	event, err := h.Service.CreateEvent(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

func (h *BlogHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.DeleteEvent(id); err != nil {
		http.Error(w, "Could not delete event", http.StatusInternalServerError)
		return
	}
	respondMessage(w, http.StatusOK, "Event deleted")
}
