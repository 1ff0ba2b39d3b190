package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventChunk     EventType = "chunk"
	EventDone      EventType = "done"
	EventCancelled EventType = "cancelled"
)

const (
	GenerationChunk = "generation:chunk"
	GenerationDone  = "generation:done"
)

// GenerationEvent carries the cumulative text of one generation to the UI.
type GenerationEvent struct {
	ID        string    `json:"id"`
	RequestID string    `json:"requestId"`
	Type      EventType `json:"type"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type contextKey string

const requestContextKey contextKey = "autocorrect/events/request"

// WithRequest returns a derived context annotated with the generation request
// id so emitters can scope payloads.
func WithRequest(ctx context.Context, requestID string) context.Context {
	if strings.TrimSpace(requestID) == "" {
		return ctx
	}
	return context.WithValue(ctx, requestContextKey, requestID)
}

func RequestFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestContextKey).(string); ok {
		return v
	}
	return ""
}

func newEvent(eventType EventType, requestID, text string) GenerationEvent {
	return GenerationEvent{
		ID:        uuid.NewString(),
		RequestID: requestID,
		Type:      eventType,
		Text:      text,
		Timestamp: time.Now(),
	}
}

func NewChunk(requestID, text string) GenerationEvent {
	return newEvent(EventChunk, requestID, text)
}

func NewDone(requestID, text string) GenerationEvent {
	return newEvent(EventDone, requestID, text)
}

func NewCancelled(requestID, text string) GenerationEvent {
	return newEvent(EventCancelled, requestID, text)
}
