package llms

import (
	"context"
)

// ProviderType is the type of completion provider.
type ProviderType string

const (
	// ProviderOpenAI is the OpenAI API.
	ProviderOpenAI ProviderType = "OPENAI"
	// ProviderAzure is the Azure OpenAI API.
	ProviderAzure ProviderType = "AZURE"
	// ProviderAzureAD is the Azure OpenAI API with AD authentication.
	ProviderAzureAD ProviderType = "AZURE_AD"
	// ProviderPerplexity is the Perplexity API.
	ProviderPerplexity ProviderType = "PERPLEXITY"
)

// Model is an interface chat completion models implement.
type Model interface {
	// GetProviderType returns the type of provider.
	GetProviderType() ProviderType
	// GetName returns the model name.
	GetName() string
	// GenerateContent asks the model to generate content from a sequence of
	// messages. The message log is sent exactly as given, in order.
	GenerateContent(ctx context.Context, messages []Message, options ...CallOption) (*ContentResponse, error)
}

// Capability is a bitmask indicating supported features of an LLM provider.
type Capability uint64

const (
	// Basic text or chat generation
	CapabilityText Capability = 1 << iota

	// Structured response formats
	CapabilityJSONResponse

	// Function/tool calling
	CapabilityFunctionCalling

	// System prompt support
	CapabilitySystemPrompt
)

var providerCapabilities = map[ProviderType]Capability{
	ProviderOpenAI: CapabilityText |
		CapabilityJSONResponse |
		CapabilityFunctionCalling |
		CapabilitySystemPrompt,

	ProviderAzure: CapabilityText |
		CapabilityJSONResponse |
		CapabilityFunctionCalling |
		CapabilitySystemPrompt,

	// Proxy passthrough
	ProviderAzureAD: CapabilityText,

	ProviderPerplexity: CapabilityText |
		CapabilityJSONResponse |
		CapabilitySystemPrompt,
}

func ProviderCapabilities(pt ProviderType) Capability {
	return providerCapabilities[pt]
}

func (p ProviderType) Supports(cap Capability) bool {
	return ProviderCapabilities(p)&cap != 0
}
