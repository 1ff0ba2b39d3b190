package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"autocorrect/internal/database"
	"autocorrect/internal/llm/client"
	"autocorrect/internal/models"
	"autocorrect/internal/repositories"
	"autocorrect/internal/services"
	"autocorrect/internal/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type testEnv struct {
	router    http.Handler
	svc       *services.Services
	repo      repositories.ConfigRepository
	prompts   []string
	clipboard *fakeClipboard
	shortcuts []string
}

func newTestEnv(t *testing.T, fragments ...string) *testEnv {
	t.Helper()
	return newTestEnvWithHistory(t, nil, fragments...)
}

func newTestEnvWithHistory(t *testing.T, history repositories.GenerationRecordRepository, fragments ...string) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env := &testEnv{
		repo:      repositories.NewConfigRepository(filepath.Join(t.TempDir(), "gemini.json"), logger),
		clipboard: &fakeClipboard{},
	}

	adapter := &mocks.AdapterMock{
		StreamFunc: func(ctx context.Context, req client.Request) (*client.FragmentStream, error) {
			env.prompts = append(env.prompts, req.Prompt)
			return mocks.Fragments(fragments...), nil
		},
	}
	registry := client.Registry{}
	for _, kind := range []client.Kind{client.KindGoogle, client.KindOpenAI, client.KindAnthropic, client.KindCustomOpenAI, client.KindCustomAnthropic} {
		registry[kind] = adapter
	}

	catalog, err := services.NewModelCatalog()
	require.NoError(t, err)
	env.svc = services.NewServices(catalog, env.repo, history, registry, logger)
	env.router = NewRouter(env.svc, Options{
		Clipboard:         env.clipboard,
		Logger:            logger,
		OnShortcutChanged: func(s string) { env.shortcuts = append(env.shortcuts, s) },
	})
	return env
}

func (e *testEnv) configure(t *testing.T) {
	t.Helper()
	_, err := e.svc.Config.UpdateSettings(services.SettingsUpdate{APIKey: "sk-test", Model: "gpt-4o-mini"})
	require.NoError(t, err)
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestProcess_StreamsCumulativeText(t *testing.T) {
	env := newTestEnv(t, "Je suis", " allé")
	env.configure(t)

	rec := env.postForm(t, "/process", url.Values{"mode": {"corriger"}, "input_text": {"je suis aller"}, "user_response": {"ignored"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "data: Je suis\n\ndata: Je suis allé\n\ndata: [END]\n\n", rec.Body.String())
	require.Len(t, env.prompts, 1)
	assert.True(t, strings.HasSuffix(env.prompts[0], "\n\nje suis aller"))
}

func TestProcess_MultilineFragments(t *testing.T) {
	env := newTestEnv(t, "ligne 1\r\nligne 2")
	env.configure(t)

	rec := env.postForm(t, "/process", url.Values{"mode": {"corriger"}, "input_text": {"x"}})
	assert.Equal(t, "data: ligne 1\ndata: ligne 2\n\ndata: [END]\n\n", rec.Body.String())
}

func TestProcess_ErrorsAreStreamedAsText(t *testing.T) {
	env := newTestEnv(t, "unused")

	rec := env.postForm(t, "/process", url.Values{"mode": {"corriger"}, "input_text": {"x"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "data: Erreur: Clé API non configurée\n\ndata: [END]\n\n", rec.Body.String())
	assert.Empty(t, env.prompts)
}

func TestProcess_UnknownModeIsRejectedBeforeStreaming(t *testing.T) {
	env := newTestEnv(t)
	env.configure(t)

	rec := env.postForm(t, "/process", url.Values{"mode": {"chanter"}, "input_text": {"x"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[errorResponse](t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Mode 'chanter' non reconnu.", body.Error)

	rec = env.postForm(t, "/process", url.Values{"input_text": {"x"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcess_ReplyModeAcceptsJSON(t *testing.T) {
	env := newTestEnv(t, "Avec plaisir")
	env.configure(t)

	rec := env.do(t, http.MethodPost, "/process", `{"mode":"repondre","input_text":"Tu viens ?","user_response":"oui, 18h"}`)
	assert.Equal(t, "data: Avec plaisir\n\ndata: [END]\n\n", rec.Body.String())
	require.Len(t, env.prompts, 1)
	assert.Contains(t, env.prompts[0], "Tu viens ?")
	assert.Contains(t, env.prompts[0], "oui, 18h")

	rec = env.do(t, http.MethodPost, "/process", `{"mode":"repondre","input_text":"Tu viens ?"}`)
	assert.Equal(t, "data: Erreur: Réponse utilisateur manquante pour le mode 'répondre'.\n\ndata: [END]\n\n", rec.Body.String())
}

func TestConfigEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/config", "")
	require.Equal(t, http.StatusOK, rec.Code)
	settings := decodeBody[services.Settings](t, rec)
	assert.False(t, settings.HasKey)
	assert.Equal(t, models.DefaultShortcut, settings.Shortcut)

	rec = env.do(t, http.MethodPost, "/api/config", `{"api_key":"k","model":"claude-3-5-haiku-latest","theme":"dark","shortcut":"Ctrl+Shift+A"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBody[setConfigResponse](t, rec).ShortcutChanged)
	assert.Equal(t, []string{"Ctrl+Shift+A"}, env.shortcuts)

	settings = decodeBody[services.Settings](t, env.do(t, http.MethodGet, "/api/config", ""))
	assert.True(t, settings.HasKey)
	assert.Equal(t, "dark", settings.Theme)

	rec = env.do(t, http.MethodPost, "/api/config", `{"api_key":"k","model":"","theme":"dark"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/config", `{"api_key":"k","model":"gpt-4o-mini","theme":"blue"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/config", `{"api_key":"","model":"gpt-4o-mini"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeBody[services.Settings](t, env.do(t, http.MethodGet, "/api/config", "")).HasKey)

	rec = env.do(t, http.MethodPost, "/api/config", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestModelsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	list := decodeBody[[]models.ModelDescriptor](t, env.do(t, http.MethodGet, "/api/models", ""))
	require.Len(t, list, 4)
	assert.Equal(t, "custom", list[3].ID)
	assert.True(t, list[3].Configurable)
}

func TestModesEndpoints(t *testing.T) {
	env := newTestEnv(t)

	reg := decodeBody[models.ModeRegistry](t, env.do(t, http.MethodGet, "/api/modes", ""))
	assert.Len(t, reg.System, 8)

	rec := env.do(t, http.MethodPost, "/api/modes", `{"title":"Poème","icon":"fas fa-feather","prompt":"En vers :"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	created := decodeBody[createModeResponse](t, rec)
	assert.Equal(t, "custom_1", created.ModeID)

	rec = env.do(t, http.MethodPost, "/api/modes", `{"title":"","prompt":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPatch, "/api/modes/custom_1", `{"prompt":"En alexandrins :"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "En alexandrins :", env.svc.Modes.Load().Custom["custom_1"].Prompt)

	rec = env.do(t, http.MethodPatch, "/api/modes/traduire", `{"prompt":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/modes", `{"order":["custom_1","traduire"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	ordered := decodeBody[[]models.Mode](t, env.do(t, http.MethodGet, "/api/modes/ordered", ""))
	require.Len(t, ordered, 2)
	assert.Equal(t, "custom_1", ordered[0].ID)

	rec = env.do(t, http.MethodPut, "/api/modes", `{"order":["nope"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = env.do(t, http.MethodPut, "/api/modes", `{"order":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/modes/custom_1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, env.svc.Modes.Load().Order, "custom_1")

	rec = env.do(t, http.MethodDelete, "/api/modes/traduire", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomEndpointEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/custom-endpoint", `{"url":" http://localhost:11434/v1 ","model_name":"llama3","style":"anthropic"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody[models.CustomEndpoint](t, env.do(t, http.MethodGet, "/api/custom-endpoint", ""))
	assert.Equal(t, models.CustomEndpoint{URL: "http://localhost:11434/v1", ModelName: "llama3", Style: models.StyleAnthropic}, got)

	rec = env.do(t, http.MethodPut, "/api/custom-endpoint", `{"url":"x","model_name":"y","style":"grpc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWhatsNewEndpoint(t *testing.T) {
	env := newTestEnv(t)

	first := decodeBody[whatsNewResponse](t, env.do(t, http.MethodGet, "/api/whatsnew", ""))
	assert.True(t, first.Show)
	assert.Equal(t, models.CurrentVersion, first.Version)

	second := decodeBody[whatsNewResponse](t, env.do(t, http.MethodGet, "/api/whatsnew", ""))
	assert.False(t, second.Show)
}

func TestHistoryEndpoints(t *testing.T) {
	var limit int
	cleared := false
	repo := &mocks.GenerationRecordRepositoryMock{
		ListRecentFunc: func(ctx context.Context, n int) ([]models.GenerationRecord, error) {
			limit = n
			return []models.GenerationRecord{{ID: 1, ModeID: "corriger", Output: "ok"}}, nil
		},
		DeleteAllFunc: func(ctx context.Context) error {
			cleared = true
			return nil
		},
	}
	env := newTestEnvWithHistory(t, repo)

	records := decodeBody[[]models.GenerationRecord](t, env.do(t, http.MethodGet, "/api/history?limit=5", ""))
	require.Len(t, records, 1)
	assert.Equal(t, 5, limit)

	rec := env.do(t, http.MethodGet, "/api/history?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/history", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, cleared)
}

func TestSetConfig_EmptyKeyErasesHistory(t *testing.T) {
	db, err := database.Init(database.Config{Path: filepath.Join(t.TempDir(), "history.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	env := newTestEnvWithHistory(t, repositories.NewGenerationRecordRepository(db), "corrigé")
	env.configure(t)

	rec := env.postForm(t, "/process", url.Values{"mode": {"corriger"}, "input_text": {"mon mot de passe secret"}})
	require.Equal(t, http.StatusOK, rec.Code)
	records := decodeBody[[]models.GenerationRecord](t, env.do(t, http.MethodGet, "/api/history", ""))
	require.Len(t, records, 1)
	assert.Equal(t, "mon mot de passe secret", records[0].InputText)

	rec = env.do(t, http.MethodPost, "/api/config", `{"api_key":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeBody[services.Settings](t, env.do(t, http.MethodGet, "/api/config", "")).HasKey)

	records = decodeBody[[]models.GenerationRecord](t, env.do(t, http.MethodGet, "/api/history", ""))
	assert.Empty(t, records)
}

func TestCopyEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/copy", `{"text":"Bonjour"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bonjour", env.clipboard.text)

	env.clipboard.err = errors.New("no clipboard utility")
	rec = env.do(t, http.MethodPost, "/copy", `{"text":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "no clipboard utility", decodeBody[errorResponse](t, rec).Error)
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, errorStatus(services.ErrIncompleteConfig))
	assert.Equal(t, http.StatusNotFound, errorStatus(services.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, errorStatus(errors.New("disk full")))
}
