package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"autocorrect/internal/llm/client"
	"autocorrect/internal/models"
	"autocorrect/internal/repositories"
)

const (
	msgMissingAPIKey     = "Erreur: Clé API non configurée"
	msgUnknownMode       = "Erreur: Mode '%s' non reconnu."
	msgMissingPrompt     = "Erreur: Prompt non défini pour le mode '%s'."
	msgMissingReply      = "Erreur: Réponse utilisateur manquante pour le mode 'répondre'."
	msgUnknownModel      = "Erreur: Modèle '%s' non reconnu."
	msgIncompleteCustom  = "Erreur: Configuration de l'endpoint personnalisé incomplète"
	msgUnsupportedVendor = "Erreur: Fournisseur non supporté pour le modèle %s"
	msgProviderFailure   = "Erreur AI: %s"
)

// GenerationInput is what the UI submits for one generation.
// UserResponse is only read by the reply mode; nil means it was not provided.
type GenerationInput struct {
	RequestID    string
	ModeID       string
	Text         string
	UserResponse *string
}

// GenerationRequest is a fully resolved generation: input plus the
// credentials, model and modes it runs against.
type GenerationRequest struct {
	GenerationInput
	ModelID  string
	APIKey   string
	Modes    map[string]models.Mode
	Endpoint models.CustomEndpoint
}

// GenerationService turns a request into a stream of text fragments. The
// stream is total: every failure becomes a single final error fragment.
type GenerationService interface {
	Stream(ctx context.Context, req GenerationRequest) iter.Seq[string]
	// Generate resolves the request from the stored configuration and modes.
	Generate(ctx context.Context, in GenerationInput) iter.Seq[string]
}

type generationService struct {
	config   repositories.ConfigRepository
	modes    ModeService
	catalog  ModelCatalog
	adapters client.Registry
	history  HistoryService
	logger   *slog.Logger
}

func NewGenerationService(
	config repositories.ConfigRepository,
	modes ModeService,
	catalog ModelCatalog,
	adapters client.Registry,
	history HistoryService,
	logger *slog.Logger,
) GenerationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &generationService{
		config:   config,
		modes:    modes,
		catalog:  catalog,
		adapters: adapters,
		history:  history,
		logger:   logger,
	}
}

func (s *generationService) Generate(ctx context.Context, in GenerationInput) iter.Seq[string] {
	cfg := s.config.Load()
	req := GenerationRequest{
		GenerationInput: in,
		ModelID:         cfg.Model,
		APIKey:          cfg.Key(),
		Modes:           s.modes.AllModes(),
	}
	if cfg.CustomEndpoint != nil {
		req.Endpoint = *cfg.CustomEndpoint
	}
	return s.Stream(ctx, req)
}

type dispatch struct {
	kind     client.Kind
	request  client.Request
	provider models.Provider
}

func (s *generationService) Stream(ctx context.Context, req GenerationRequest) iter.Seq[string] {
	return func(yield func(string) bool) {
		var output strings.Builder
		failed := false
		recorded := false
		var provider models.Provider

		emit := func(fragment string) bool {
			output.WriteString(fragment)
			return yield(fragment)
		}
		fail := func(msg string) {
			failed = true
			emit(msg)
		}
		defer func() {
			if recorded {
				s.record(ctx, req, provider, output.String(), failed)
			}
		}()

		if req.APIKey == "" {
			fail(msgMissingAPIKey)
			return
		}
		mode, ok := req.Modes[req.ModeID]
		if !ok {
			fail(fmt.Sprintf(msgUnknownMode, req.ModeID))
			return
		}
		recorded = true

		plan, errMsg := s.plan(req, mode)
		if errMsg != "" {
			fail(errMsg)
			return
		}
		provider = plan.provider

		adapter, ok := s.adapters.Adapter(plan.kind)
		if !ok {
			fail(fmt.Sprintf(msgUnsupportedVendor, req.ModelID))
			return
		}

		s.logger.Debug("generation started",
			"request_id", req.RequestID, "mode", req.ModeID, "model", req.ModelID, "adapter", plan.kind)

		stream, err := adapter.Stream(ctx, plan.request)
		if err != nil {
			if ctx.Err() == nil {
				fail(fmt.Sprintf(msgProviderFailure, err))
			}
			return
		}
		defer stream.Close()

		for {
			fragment, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				// A cancelled consumer is not a provider failure.
				if ctx.Err() == nil {
					s.logger.Warn("generation failed", "request_id", req.RequestID, "error", err)
					fail(fmt.Sprintf(msgProviderFailure, err))
				}
				return
			}
			if !emit(fragment) {
				return
			}
		}
	}
}

// plan renders the prompt and picks the adapter. A non-empty string is the
// user facing error to emit instead.
func (s *generationService) plan(req GenerationRequest, mode models.Mode) (dispatch, string) {
	if strings.TrimSpace(mode.Prompt) == "" {
		return dispatch{}, fmt.Sprintf(msgMissingPrompt, req.ModeID)
	}

	var prompt string
	if req.ModeID == models.ReplyModeID {
		if req.UserResponse == nil {
			return dispatch{}, msgMissingReply
		}
		prompt = RenderReplyPrompt(mode.Prompt, req.Text, *req.UserResponse)
	} else {
		prompt = mode.Prompt + "\n\n" + req.Text
	}

	descriptor, ok := s.catalog.GetModel(req.ModelID)
	if !ok {
		return dispatch{}, fmt.Sprintf(msgUnknownModel, req.ModelID)
	}

	d := dispatch{
		provider: descriptor.Provider,
		request: client.Request{
			Prompt: prompt,
			APIKey: req.APIKey,
			Model:  descriptor.ProviderModel,
		},
	}
	switch descriptor.Provider {
	case models.ProviderGoogle:
		d.kind = client.KindGoogle
	case models.ProviderOpenAI:
		d.kind = client.KindOpenAI
	case models.ProviderAnthropic:
		d.kind = client.KindAnthropic
	case models.ProviderCustom:
		if !req.Endpoint.Complete() {
			return dispatch{}, msgIncompleteCustom
		}
		d.request.Model = req.Endpoint.ModelName
		d.request.BaseURL = req.Endpoint.URL
		if req.Endpoint.Style == models.StyleAnthropic {
			d.kind = client.KindCustomAnthropic
		} else {
			d.kind = client.KindCustomOpenAI
		}
	default:
		return dispatch{}, fmt.Sprintf(msgUnsupportedVendor, req.ModelID)
	}
	return d, ""
}

func (s *generationService) record(ctx context.Context, req GenerationRequest, provider models.Provider, output string, failed bool) {
	if s.history == nil {
		return
	}
	s.history.Record(context.WithoutCancel(ctx), &models.GenerationRecord{
		RequestID: req.RequestID,
		ModeID:    req.ModeID,
		ModelID:   req.ModelID,
		Provider:  string(provider),
		InputText: req.Text,
		Output:    output,
		Failed:    failed,
	})
}

// RenderReplyPrompt fills the reply template with the received message and
// the elements of the user's answer.
func RenderReplyPrompt(template, original, reply string) string {
	return strings.NewReplacer(
		"{original_message}", original,
		"{user_response}", reply,
	).Replace(template)
}

// Cumulative maps a fragment stream to the growing concatenation of its
// fragments, which is what the UI renders.
func Cumulative(fragments iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		var buf strings.Builder
		for fragment := range fragments {
			buf.WriteString(fragment)
			if !yield(buf.String()) {
				return
			}
		}
	}
}
