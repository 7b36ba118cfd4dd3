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

type StoreHandler struct {
	Service *service.StoreService
}

func NewStoreHandler(svc *service.StoreService) *StoreHandler {
	return &StoreHandler{Service: svc}
}

func (h *StoreHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.ListProducts(r.URL.Query().Get("category"))
	if err != nil {
		http.Error(w, "Could not list products", http.StatusInternalServerError)
		return
	}
	out := make([]entities.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, entities.ProductResponse{
			ID: p.ID, Name: p.Name, Description: p.Description, Category: p.Category,
			PriceCents: p.PriceCents, Stock: p.Stock, PhotoURL: p.PhotoURL,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *StoreHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	p, err := h.Service.GetProduct(id)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, entities.ProductResponse{
		ID: p.ID, Name: p.Name, Description: p.Description, Category: p.Category,
		PriceCents: p.PriceCents, Stock: p.Stock, PhotoURL: p.PhotoURL,
	})
}

func (h *StoreHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req entities.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.Service.CreateProduct(req)
	if err != nil {
		http.Error(w, "Could not create product", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"id": p.ID, "message": "Product created"})
}

func (h *StoreHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req entities.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Service.UpdateProduct(id, req); err != nil {
		http.Error(w, "Could not update product", http.StatusInternalServerError)
		return
	}
	respondMessage(w, http.StatusOK, "Product updated")
}

func (h *StoreHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.DeleteProduct(id); err != nil {
		http.Error(w, "Could not delete product", http.StatusInternalServerError)
		return
	}
	respondMessage(w, http.StatusOK, "Product deleted")
}

func (h *StoreHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Service.GetCart(auth.UserIDFromContext(r.Context()))
	if err != nil {
		http.Error(w, "Could not load cart", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

func (h *StoreHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req entities.CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Service.AddToCart(auth.UserIDFromContext(r.Context()), req); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	respondMessage(w, http.StatusOK, "Cart updated")
}

func (h *StoreHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(mux.Vars(r)["product_id"])
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.RemoveFromCart(auth.UserIDFromContext(r.Context()), productID); err != nil {
		http.Error(w, "Could not remove item", http.StatusInternalServerError)
		return
	}
	respondMessage(w, http.StatusOK, "Item removed")
}

func (h *StoreHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ClearCart(auth.UserIDFromContext(r.Context())); err != nil {
		http.Error(w, "Could not clear cart", http.StatusInternalServerError)
		return
	}
	respondMessage(w, http.StatusOK, "Cart cleared")
}

func (h *StoreHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.Checkout(auth.UserIDFromContext(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (h *StoreHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Service.ListOrders(auth.UserIDFromContext(r.Context()))
	if err != nil {
		http.Error(w, "Could not list orders", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *StoreHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	order, err := h.Service.GetOrder(auth.UserIDFromContext(r.Context()), code)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *StoreHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if err := h.Service.CancelOrder(auth.UserIDFromContext(r.Context()), code); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	respondMessage(w, http.StatusOK, "Order cancellation requested")
}
