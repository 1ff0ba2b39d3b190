package server

import (
	"net/http"
	"strconv"
)

func (h *handler) listHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	records, err := h.svc.History.Recent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *handler) clearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.History.Clear(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeOK(w)
}
