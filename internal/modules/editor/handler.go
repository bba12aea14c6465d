package editor

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tavonga/decora-backend/internal/apperr"
	"github.com/tavonga/decora-backend/internal/modules/auth"
	"github.com/tavonga/decora-backend/internal/modules/geometry"
)

// Handler drives editors from a thin browser client. Pointer traffic is
// plain POSTs; the coalescer keeps the mutation rate bounded regardless of
// how fast the client sends.
type Handler struct{ manager *Manager }

func NewHandler(manager *Manager) *Handler { return &Handler{manager: manager} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/editor", func(r chi.Router) {
		r.Use(auth.RequireMerchant)
		r.Post("/", h.open)
		r.Get("/{id}", h.state)
		r.Delete("/{id}", h.close)
		r.Post("/{id}/commit", h.commit)
		r.Post("/{id}/container", h.resizeContainer)
		r.Post("/{id}/session/start", h.startSession)
		r.Post("/{id}/session/pointer", h.pointer)
		r.Post("/{id}/session/end", h.endSession)
		r.Post("/{id}/regions", h.addRegion)
		r.Delete("/{id}/regions/{regionID}", h.removeRegion)
		r.Post("/{id}/views", h.addView)
		r.Delete("/{id}/views/{viewID}", h.removeView)
		r.Post("/{id}/views/{viewID}/activate", h.activateView)
	})
}

type stateResponse struct {
	EditorID     string      `json:"editor_id,omitempty"`
	ActiveViewID string      `json:"active_view_id"`
	Views        interface{} `json:"views"`
}

func (h *Handler) open(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID       string  `json:"product_id"`
		ContainerWidth  float64 `json:"container_width"`
		ContainerHeight float64 `json:"container_height"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, e, err := h.manager.Open(r.Context(), auth.MerchantID(r.Context()), req.ProductID, req.ContainerWidth, req.ContainerHeight)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	respond(w, http.StatusCreated, stateResponse{EditorID: id, ActiveViewID: e.ActiveViewID(), Views: e.Views()})
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	e, err := h.editor(r)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, stateResponse{ActiveViewID: e.ActiveViewID(), Views: e.Views()})
}

func (h *Handler) close(w http.ResponseWriter, r *http.Request) {
	h.manager.Close(chi.URLParam(r, "id"), auth.MerchantID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) commit(w http.ResponseWriter, r *http.Request) {
	def, err := h.manager.Commit(r.Context(), chi.URLParam(r, "id"), auth.MerchantID(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, def)
}

func (h *Handler) resizeContainer(w http.ResponseWriter, r *http.Request) {
	e, err := h.editor(r)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	var req struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e.SetContainerSize(req.Width, req.Height)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	e, err := h.editor(r)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	var req struct {
		RegionID string  `json:"region_id"`
		Handle   string  `json:"handle"`
		X        float64 `json:"x"`
		Y        float64 `json:"y"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	regionID, err := uuid.Parse(req.RegionID)
	if err != nil {
		http.Error(w, "invalid region_id", http.StatusBadRequest)
		return
	}
	e.StartSession(regionID, geometry.HandleKind(req.Handle), req.X, req.Y)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pointer(w http.ResponseWriter, r *http.Request) {
	e, err := h.editor(r)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	var req struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e.UpdateSession(req.X, req.Y)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	e, err := h.editor(r)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	e.EndSession()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addRegion(w http.ResponseWriter, r *http.Request) {
	e, err := h.editor(r)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	// Past the cap this is a silent no-op; the client re-reads state to
	// find out, same as the region count staying put.
	e.AddRegion()
	respond(w, http.StatusOK, stateResponse{ActiveViewID: e.ActiveViewID(), Views: e.Views()})
}

func (h *Handler) removeRegion(w http.ResponseWriter, r *http.Request) {
	e, err := h.editor(r)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	regionID, err := uuid.Parse(chi.URLParam(r, "regionID"))
	if err != nil {
		http.Error(w, "invalid region id", http.StatusBadRequest)
		return
	}
	e.RemoveRegion(regionID)
	respond(w, http.StatusOK, stateResponse{ActiveViewID: e.ActiveViewID(), Views: e.Views()})
}

func (h *Handler) addView(w http.ResponseWriter, r *http.Request) {
	e, err := h.editor(r)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	var req struct {
		Name     string `json:"name"`
		ImageURL string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e.AddView(req.Name, req.ImageURL)
	respond(w, http.StatusOK, stateResponse{ActiveViewID: e.ActiveViewID(), Views: e.Views()})
}

func (h *Handler) removeView(w http.ResponseWriter, r *http.Request) {
	e, err := h.editor(r)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	e.RemoveView(chi.URLParam(r, "viewID"))
	respond(w, http.StatusOK, stateResponse{ActiveViewID: e.ActiveViewID(), Views: e.Views()})
}

func (h *Handler) activateView(w http.ResponseWriter, r *http.Request) {
	e, err := h.editor(r)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}
	e.SetActiveView(chi.URLParam(r, "viewID"))
	respond(w, http.StatusOK, stateResponse{ActiveViewID: e.ActiveViewID(), Views: e.Views()})
}

func (h *Handler) editor(r *http.Request) (*Editor, error) {
	return h.manager.Get(chi.URLParam(r, "id"), auth.MerchantID(r.Context()))
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
