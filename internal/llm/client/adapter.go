package client

import "context"

// Request carries everything an adapter needs for one generation.
// BaseURL is only read by the custom endpoint variants.
type Request struct {
	Prompt  string
	APIKey  string
	Model   string
	BaseURL string
}

// Adapter turns a fully rendered prompt into a single-pass stream of text
// fragments. Transport and vendor failures are returned, either from Stream
// or from the stream's Recv, and never swallowed.
type Adapter interface {
	Stream(ctx context.Context, req Request) (*FragmentStream, error)
}

// Kind names one adapter variant.
type Kind string

const (
	KindGoogle          Kind = "google"
	KindOpenAI          Kind = "openai"
	KindAnthropic       Kind = "anthropic"
	KindCustomOpenAI    Kind = "custom-openai"
	KindCustomAnthropic Kind = "custom-anthropic"
)

// Registry maps each variant to its adapter.
type Registry map[Kind]Adapter

// Endpoints overrides the vendor API base URLs, for proxies and tests.
// Empty fields keep each SDK's default.
type Endpoints struct {
	Google    string
	OpenAI    string
	Anthropic string
}

// NewRegistry returns the vendor adapters plus the two custom endpoint variants.
func NewRegistry(endpoints Endpoints) Registry {
	return Registry{
		KindGoogle:          NewGeminiAdapter().WithEndpoint(endpoints.Google),
		KindOpenAI:          NewOpenAIAdapter().WithEndpoint(endpoints.OpenAI),
		KindAnthropic:       NewClaudeAdapter().WithEndpoint(endpoints.Anthropic),
		KindCustomOpenAI:    NewCustomOpenAIAdapter(),
		KindCustomAnthropic: NewCustomClaudeAdapter(),
	}
}

func (r Registry) Adapter(kind Kind) (Adapter, bool) {
	a, ok := r[kind]
	return a, ok && a != nil
}
