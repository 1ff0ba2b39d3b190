package server

import "net/http"

type copyRequest struct {
	Text string `json:"text"`
}

func (h *handler) copy(w http.ResponseWriter, r *http.Request) {
	var req copyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.clipboard.WriteAll(req.Text); err != nil {
		h.logger.Warn("copy to clipboard", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeOK(w)
}
