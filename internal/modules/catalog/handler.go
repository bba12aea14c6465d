package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tavonga/decora-backend/internal/apperr"
	"github.com/tavonga/decora-backend/internal/modules/auth"
)

// Handler exposes catalog entry endpoints for import flows.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Use(auth.RequireMerchant)
		r.Put("/entries", h.saveEntry)
		r.Get("/entries/{productID}", h.getEntry)
	})
}

func (h *Handler) saveEntry(w http.ResponseWriter, r *http.Request) {
	var req SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e, err := h.service.SaveEntry(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, e)
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.GetEntry(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, e)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
