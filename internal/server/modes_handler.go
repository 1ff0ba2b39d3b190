package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type createModeRequest struct {
	Title  string `json:"title" validate:"required"`
	Icon   string `json:"icon"`
	Prompt string `json:"prompt" validate:"required"`
}

type createModeResponse struct {
	Success bool   `json:"success"`
	ModeID  string `json:"mode_id"`
}

type reorderRequest struct {
	Order []string `json:"order" validate:"required,min=1"`
}

type updateModeRequest struct {
	Prompt *string `json:"prompt" validate:"required"`
}

func (h *handler) listModes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Modes.Load())
}

func (h *handler) orderedModes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Modes.OrderedModes())
}

func (h *handler) createMode(w http.ResponseWriter, r *http.Request) {
	var req createModeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	id, err := h.svc.Modes.Create(req.Title, req.Icon, req.Prompt)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, createModeResponse{Success: true, ModeID: id})
}

func (h *handler) reorderModes(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.svc.Modes.Reorder(req.Order); err != nil {
		writeServiceError(w, err)
		return
	}
	writeOK(w)
}

func (h *handler) updateMode(w http.ResponseWriter, r *http.Request) {
	var req updateModeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.svc.Modes.UpdatePrompt(chi.URLParam(r, "modeID"), *req.Prompt); err != nil {
		writeServiceError(w, err)
		return
	}
	writeOK(w)
}

func (h *handler) deleteMode(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Modes.Delete(chi.URLParam(r, "modeID")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeOK(w)
}
