package imageproxy

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler lets the rendering surface swap a cross-origin image URL for an
// embeddable one.
type Handler struct{ proxy *Proxy }

func NewHandler(proxy *Proxy) *Handler { return &Handler{proxy: proxy} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/api/v1/image-proxy", h.fetch)
}

func (h *Handler) fetch(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		http.Error(w, "url query parameter is required", http.StatusBadRequest)
		return
	}
	embeddable := h.proxy.FetchAsEmbeddable(r.Context(), url)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": embeddable})
}
