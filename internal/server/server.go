package server

import (
	"log/slog"
	"net/http"
	"time"

	"autocorrect/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Options configures the router's collaborators. Zero values are usable.
type Options struct {
	Clipboard Clipboard
	Logger    *slog.Logger
	// OnShortcutChanged is called after a settings save changed the global
	// hotkey so the listener can be restarted.
	OnShortcutChanged func(shortcut string)
}

type handler struct {
	svc       *services.Services
	clipboard Clipboard
	logger    *slog.Logger
	onHotkey  func(string)
}

// NewRouter builds the loopback API served behind the window's asset server.
func NewRouter(svc *services.Services, opts Options) http.Handler {
	h := &handler{
		svc:       svc,
		clipboard: opts.Clipboard,
		logger:    opts.Logger,
		onHotkey:  opts.OnShortcutChanged,
	}
	if h.clipboard == nil {
		h.clipboard = SystemClipboard{}
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(h.logger))

	router.Post("/process", h.process)
	router.Post("/copy", h.copy)

	router.Route("/api", func(r chi.Router) {
		r.Get("/config", h.getConfig)
		r.Post("/config", h.setConfig)
		r.Get("/models", h.listModels)
		r.Get("/whatsnew", h.whatsNew)

		r.Get("/custom-endpoint", h.getCustomEndpoint)
		r.Put("/custom-endpoint", h.setCustomEndpoint)

		r.Route("/modes", func(r chi.Router) {
			r.Get("/", h.listModes)
			r.Post("/", h.createMode)
			r.Put("/", h.reorderModes)
			r.Get("/ordered", h.orderedModes)
			r.Patch("/{modeID}", h.updateMode)
			r.Delete("/{modeID}", h.deleteMode)
		})

		r.Get("/history", h.listHistory)
		r.Delete("/history", h.clearHistory)
	})

	return router
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}
