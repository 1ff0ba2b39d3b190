package models

// Provider is the backend family a model is served by.
type Provider string

const (
	ProviderGoogle    Provider = "google"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderCustom    Provider = "custom"
)

// EndpointStyle selects the wire protocol spoken by a custom endpoint.
type EndpointStyle string

const (
	StyleOpenAI    EndpointStyle = "openai"
	StyleAnthropic EndpointStyle = "anthropic"
)

// ModelDescriptor represents a single language model option exposed to the UI.
type ModelDescriptor struct {
	ID            string   `json:"id"`
	DisplayName   string   `json:"name"`
	Provider      Provider `json:"provider"`
	ProviderModel string   `json:"model_name"`
	Configurable  bool     `json:"configurable,omitempty"`
}
