package llmfactory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorcery-ai/concierge/pkg/llmfactory"
	"github.com/sorcery-ai/concierge/pkg/llms"
)

func Test_LoadConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := llmfactory.LoadConfig("testdata/llm.yaml")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.DefaultProvider)
	require.Len(t, cfg.Providers, 3)
	// env vars are expanded
	assert.Equal(t, "sk-test", cfg.Providers[0].Token)

	_, err = llmfactory.LoadConfig("testdata/missing.yaml")
	assert.Error(t, err)

	empty, err := llmfactory.LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, empty.Providers)
}

func Test_FindModel(t *testing.T) {
	cfg, err := llmfactory.LoadConfig("testdata/llm.yaml")
	require.NoError(t, err)

	p := cfg.Providers[0]
	assert.Equal(t, "gpt-4o", p.FindModel("gpt-4o"))
	assert.Equal(t, "gpt-4o-mini", p.FindModel("unknown-model"))
	assert.Equal(t, "gpt-4o-mini", p.FindModel())
}

func Test_Factory(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := llmfactory.LoadConfig("testdata/llm.yaml")
	require.NoError(t, err)
	f := llmfactory.New(cfg)

	model, err := f.DefaultModel()
	require.NoError(t, err)
	assert.Equal(t, llms.ProviderOpenAI, model.GetProviderType())
	assert.Equal(t, "gpt-4o-mini", model.GetName())

	// models are cached per provider name
	again, err := f.ModelByName("openai")
	require.NoError(t, err)
	assert.Same(t, model, again)

	azure, err := f.ModelByType("AZURE")
	require.NoError(t, err)
	assert.Equal(t, llms.ProviderAzure, azure.GetProviderType())

	pplx, err := f.ModelByName("perplexity")
	require.NoError(t, err)
	assert.Equal(t, llms.ProviderPerplexity, pplx.GetProviderType())

	_, err = f.ModelByName("unknown")
	assert.Error(t, err)
	_, err = f.ModelByType("BEDROCK")
	assert.Error(t, err)
}

func Test_Factory_NoProviders(t *testing.T) {
	f := llmfactory.New(&llmfactory.Config{})
	_, err := f.DefaultModel()
	assert.EqualError(t, err, "no providers configured")
}
