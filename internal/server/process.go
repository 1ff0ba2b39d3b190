package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"autocorrect/internal/models"
	"autocorrect/internal/services"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type processRequest struct {
	Mode         string  `json:"mode" validate:"required"`
	InputText    string  `json:"input_text"`
	UserResponse *string `json:"user_response"`
}

// process streams a generation as server-sent events. Each event carries the
// whole text generated so far; the stream ends with [END].
func (h *handler) process(w http.ResponseWriter, r *http.Request) {
	req, err := parseProcessRequest(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if _, ok := h.svc.Modes.AllModes()[req.Mode]; !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Mode '%s' non reconnu.", req.Mode))
		return
	}
	if req.Mode != models.ReplyModeID {
		req.UserResponse = nil
	}

	requestID := chimiddleware.GetReqID(r.Context())
	if requestID == "" {
		requestID = uuid.NewString()
	}

	sse := newSSEWriter(w)
	fragments := h.svc.Generation.Generate(r.Context(), services.GenerationInput{
		RequestID:    requestID,
		ModeID:       req.Mode,
		Text:         req.InputText,
		UserResponse: req.UserResponse,
	})
	for text := range services.Cumulative(fragments) {
		if err := sse.Send(text); err != nil {
			h.logger.Debug("client went away", "request_id", requestID, "error", err)
			return
		}
	}
	_ = sse.Send(endOfStream)
}

// parseProcessRequest accepts the form encoding used by the UI as well as JSON.
func parseProcessRequest(r *http.Request) (processRequest, error) {
	var req processRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, fmt.Errorf("%w: invalid JSON body", services.ErrValidation)
		}
	} else {
		if err := r.ParseMultipartForm(10 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return req, fmt.Errorf("%w: invalid form body", services.ErrValidation)
		}
		req.Mode = r.PostFormValue("mode")
		req.InputText = r.PostFormValue("input_text")
		if values, ok := r.PostForm["user_response"]; ok && len(values) > 0 {
			reply := values[0]
			req.UserResponse = &reply
		}
	}
	req.Mode = strings.TrimSpace(req.Mode)
	if err := validate.Struct(&req); err != nil {
		return req, fmt.Errorf("%w: %s", services.ErrValidation, describeValidation(err))
	}
	return req, nil
}
