package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"autocorrect/internal/events"
	"autocorrect/internal/models"
	"autocorrect/internal/services"

	"github.com/google/uuid"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

const shortcutChangedEvent = "shortcut:changed"

// App struct
type App struct {
	ctx     context.Context
	svc     *services.Services
	logger  *slog.Logger
	dbClose func() error

	emitShortcut func(ctx context.Context, shortcut string)

	mu      sync.Mutex
	closed  bool
	running map[string]context.CancelFunc
	wg      sync.WaitGroup
}

// WhatsNew tells the UI whether to show the release notice.
type WhatsNew struct {
	Show    bool `json:"show"`
	Version int  `json:"version"`
}

// NewApp creates a new App application struct
func NewApp(svc *services.Services, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	app := &App{
		svc:     svc,
		logger:  logger,
		running: make(map[string]context.CancelFunc),
	}
	app.emitShortcut = func(ctx context.Context, shortcut string) {
		runtime.EventsEmit(ctx, shortcutChangedEvent, shortcut)
	}
	return app
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	events.EnableRuntimeEmitter()
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	a.mu.Lock()
	a.closed = true
	for _, cancel := range a.running {
		cancel()
	}
	a.mu.Unlock()
	a.wg.Wait()

	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			a.logger.Error("failed to close database", "error", err)
		} else {
			a.logger.Info("database closed")
		}
		a.dbClose = nil
	}
}

// Generate starts a generation in the background and returns its request id.
// Progress arrives as generation:chunk events carrying the cumulative text,
// followed by a single generation:done event.
func (a *App) Generate(mode, input string, reply *string) (string, error) {
	if a.ctx == nil || a.svc == nil {
		return "", fmt.Errorf("application not started")
	}
	if mode != models.ReplyModeID {
		reply = nil
	}

	requestID := uuid.NewString()
	ctx, cancel := context.WithCancel(events.WithRequest(a.ctx, requestID))

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		cancel()
		return "", fmt.Errorf("application is shutting down")
	}
	a.running[requestID] = cancel
	a.wg.Add(1)
	a.mu.Unlock()

	go func() {
		defer a.wg.Done()
		defer a.finish(requestID)

		fragments := a.svc.Generation.Generate(ctx, services.GenerationInput{
			RequestID:    requestID,
			ModeID:       mode,
			Text:         input,
			UserResponse: reply,
		})
		var text string
		for cumulative := range services.Cumulative(fragments) {
			text = cumulative
			events.Emit(ctx, events.GenerationChunk, events.NewChunk(requestID, text))
		}

		if ctx.Err() != nil {
			events.Emit(a.ctx, events.GenerationDone, events.NewCancelled(requestID, text))
			return
		}
		events.Emit(ctx, events.GenerationDone, events.NewDone(requestID, text))
	}()

	return requestID, nil
}

// StopGeneration cancels a running generation. It reports whether the
// request was still running.
func (a *App) StopGeneration(requestID string) bool {
	a.mu.Lock()
	cancel, ok := a.running[requestID]
	a.mu.Unlock()
	if ok {
		cancel()
	}
	return ok
}

func (a *App) finish(requestID string) {
	a.mu.Lock()
	cancel, ok := a.running[requestID]
	delete(a.running, requestID)
	a.mu.Unlock()
	if ok {
		cancel()
	}
}

// RecentHistory returns the latest generations, newest first.
func (a *App) RecentHistory(limit int) ([]models.GenerationRecord, error) {
	if a.svc == nil {
		return nil, fmt.Errorf("history service not available")
	}
	return a.svc.History.Recent(a.ctx, limit)
}

func (a *App) ClearHistory() error {
	if a.svc == nil {
		return fmt.Errorf("history service not available")
	}
	return a.svc.History.Clear(a.ctx)
}

// ListModels returns the model catalog in display order
func (a *App) ListModels() []models.ModelDescriptor {
	return a.svc.Catalog.ListModels()
}

func (a *App) Settings() services.Settings {
	return a.svc.Config.Settings()
}

// UpdateSettings saves the settings form. A blank API key erases the
// configuration and the generation history.
func (a *App) UpdateSettings(update services.SettingsUpdate) (bool, error) {
	changed, err := a.svc.Config.UpdateSettings(update)
	if err != nil {
		return false, err
	}
	if changed {
		a.shortcutChanged(a.svc.Config.Settings().Shortcut)
	}
	return changed, nil
}

// ResetShortcut restores the default hotkey after the listener rejected the
// configured one.
func (a *App) ResetShortcut() error {
	previous := a.svc.Config.Settings().Shortcut
	if err := a.svc.Config.ResetShortcut(); err != nil {
		return err
	}
	if previous != models.DefaultShortcut {
		a.shortcutChanged(models.DefaultShortcut)
	}
	return nil
}

func (a *App) CustomEndpoint() models.CustomEndpoint {
	return a.svc.Config.CustomEndpoint()
}

func (a *App) SaveCustomEndpoint(url, modelName string, style models.EndpointStyle) (models.CustomEndpoint, error) {
	return a.svc.Config.SaveCustomEndpoint(url, modelName, style)
}

func (a *App) CheckWhatsNew() (WhatsNew, error) {
	show, version, err := a.svc.Config.CheckWhatsNew()
	return WhatsNew{Show: show, Version: version}, err
}

// shortcutChanged tells the hotkey listener to re-register.
func (a *App) shortcutChanged(shortcut string) {
	a.logger.Info("global shortcut changed", "shortcut", shortcut)
	if a.ctx != nil && a.emitShortcut != nil {
		a.emitShortcut(a.ctx, shortcut)
	}
}
