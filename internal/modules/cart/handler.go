package cart

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tavonga/decora-backend/internal/apperr"
	"github.com/tavonga/decora-backend/internal/modules/auth"
)

// Handler exposes the cart endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(auth.RequireMerchant)
		r.Get("/", h.getCart)
		r.Post("/items", h.addToCart)
		r.Delete("/items/{lineItemID}", h.removeLineItem)
	})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetCart(r.Context(), auth.MerchantID(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	if items == nil {
		items = []LineItem{}
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item, err := h.service.AddToCart(r.Context(), auth.MerchantID(r.Context()), req)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	respond(w, http.StatusCreated, item)
}

func (h *Handler) removeLineItem(w http.ResponseWriter, r *http.Request) {
	err := h.service.RemoveLineItem(r.Context(), auth.MerchantID(r.Context()), chi.URLParam(r, "lineItemID"))
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
