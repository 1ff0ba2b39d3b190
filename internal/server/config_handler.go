package server

import (
	"net/http"

	"autocorrect/internal/models"
	"autocorrect/internal/services"
)

type setConfigResponse struct {
	Success         bool `json:"success"`
	ShortcutChanged bool `json:"shortcut_changed"`
}

type customEndpointRequest struct {
	URL       string `json:"url"`
	ModelName string `json:"model_name"`
	Style     string `json:"style" validate:"omitempty,oneof=openai anthropic"`
}

type whatsNewResponse struct {
	Show    bool `json:"show"`
	Version int  `json:"version"`
}

func (h *handler) getConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Config.Settings())
}

func (h *handler) setConfig(w http.ResponseWriter, r *http.Request) {
	var update services.SettingsUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeServiceError(w, err)
		return
	}
	changed, err := h.svc.Config.UpdateSettings(update)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if changed && h.onHotkey != nil {
		h.onHotkey(h.svc.Config.Settings().Shortcut)
	}
	writeJSON(w, http.StatusOK, setConfigResponse{Success: true, ShortcutChanged: changed})
}

func (h *handler) listModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Catalog.ListModels())
}

func (h *handler) whatsNew(w http.ResponseWriter, r *http.Request) {
	show, version, err := h.svc.Config.CheckWhatsNew()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, whatsNewResponse{Show: show, Version: version})
}

func (h *handler) getCustomEndpoint(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Config.CustomEndpoint())
}

func (h *handler) setCustomEndpoint(w http.ResponseWriter, r *http.Request) {
	var req customEndpointRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	endpoint, err := h.svc.Config.SaveCustomEndpoint(req.URL, req.ModelName, models.EndpointStyle(req.Style))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, endpoint)
}
