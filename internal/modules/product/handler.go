package product

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tavonga/decora-backend/internal/apperr"
	"github.com/tavonga/decora-backend/internal/modules/auth"
)

// Handler exposes merchant-facing definition endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(auth.RequireMerchant)
		r.Get("/", h.listProducts)
		r.Post("/", h.createProduct)
		r.Get("/{id}", h.getProduct)
		r.Delete("/{id}", h.deleteProduct)
		r.Patch("/{id}/design", h.saveDesign)
		r.Post("/{id}/variations/regenerate", h.regenerate)
		r.Put("/{id}/variations/{variationID}/price", h.setVariationPrice)
	})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	defs, err := h.service.ListProducts(r.Context(), auth.MerchantID(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, defs)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	def, err := h.service.CreateProduct(r.Context(), auth.MerchantID(r.Context()), req)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	respond(w, http.StatusCreated, def)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	def, err := h.service.GetProduct(r.Context(), auth.MerchantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, def)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), auth.MerchantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) saveDesign(w http.ResponseWriter, r *http.Request) {
	var req SaveDesignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	def, err := h.service.SaveDesign(r.Context(), auth.MerchantID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, def)
}

func (h *Handler) regenerate(w http.ResponseWriter, r *http.Request) {
	def, err := h.service.Regenerate(r.Context(), auth.MerchantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, def)
}

func (h *Handler) setVariationPrice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Price     float64  `json:"price"`
		SalePrice *float64 `json:"sale_price,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	def, err := h.service.SetVariationPrice(r.Context(), auth.MerchantID(r.Context()),
		chi.URLParam(r, "id"), chi.URLParam(r, "variationID"), req.Price, req.SalePrice)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, def)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
