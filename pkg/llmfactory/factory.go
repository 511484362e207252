package llmfactory

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/sorcery-ai/concierge/pkg/llms"
	"github.com/sorcery-ai/concierge/pkg/llms/openai"
)

var logger = xlog.NewPackageLogger("github.com/sorcery-ai/concierge/pkg", "llmfactory")

// Factory creates completion clients from configuration.
type Factory struct {
	cfg *Config

	lock   sync.RWMutex
	models map[string]llms.Model
}

// New returns a new Factory
func New(cfg *Config) *Factory {
	return &Factory{
		cfg:    cfg,
		models: make(map[string]llms.Model),
	}
}

// DefaultModel returns the model from the default provider,
// or the first configured provider when no default is named.
func (f *Factory) DefaultModel() (llms.Model, error) {
	if len(f.cfg.Providers) == 0 {
		return nil, errors.New("no providers configured")
	}
	name := f.cfg.DefaultProvider
	if name == "" {
		name = f.cfg.Providers[0].Name
	}
	return f.ModelByName(name)
}

// ModelByType returns a model from the first provider with the given API type.
func (f *Factory) ModelByType(apiType string) (llms.Model, error) {
	for _, p := range f.cfg.Providers {
		if p.OpenAI.APIType == apiType {
			return f.ModelByName(p.Name)
		}
	}
	return nil, errors.Newf("provider not found for type: %s", apiType)
}

// ModelByName returns a model for the named provider.
func (f *Factory) ModelByName(name string, preferredModels ...string) (llms.Model, error) {
	f.lock.RLock()
	m, ok := f.models[name]
	f.lock.RUnlock()
	if ok {
		return m, nil
	}

	for _, p := range f.cfg.Providers {
		if p.Name == name {
			return f.createLLM(p, preferredModels...)
		}
	}
	return nil, errors.Newf("provider not found: %s", name)
}

func (f *Factory) createLLM(cfg *ProviderConfig, preferredModels ...string) (llms.Model, error) {
	model := cfg.FindModel(preferredModels...)

	apiType := openai.ProviderType(cfg.OpenAI.APIType)
	if apiType == "" {
		apiType = openai.ProviderOpenAI
	}

	switch apiType {
	case openai.ProviderOpenAI, openai.ProviderAzure, openai.ProviderAzureAD, openai.ProviderPerplexity:
	default:
		return nil, errors.Newf("unsupported API type: %s", apiType)
	}

	logger.KV(xlog.DEBUG, "provider", cfg.Name, "type", apiType, "model", model)

	opts := []openai.Option{
		openai.WithProvider(apiType),
	}
	// empty values fall through to env vars and package defaults
	if cfg.Token != "" {
		opts = append(opts, openai.WithToken(cfg.Token))
	}
	if model != "" {
		opts = append(opts, openai.WithModel(model))
	}
	if cfg.OpenAI.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.OpenAI.BaseURL))
	}
	if cfg.OpenAI.OrgID != "" {
		opts = append(opts, openai.WithOrganization(cfg.OpenAI.OrgID))
	}
	if cfg.OpenAI.APIVersion != "" {
		opts = append(opts, openai.WithAPIVersion(cfg.OpenAI.APIVersion))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create LLM for provider: %s", cfg.Name)
	}

	f.lock.Lock()
	f.models[cfg.Name] = llm
	f.lock.Unlock()

	return llm, nil
}
