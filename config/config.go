// Package config loads the service configuration.
package config

import (
	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/configloader"
	"github.com/go-playground/validator/v10"

	"github.com/sorcery-ai/concierge/pkg/llmfactory"
)

// MailgunConfig holds the email provider credentials. These are injected
// into the gateway at startup and never exposed to the model.
type MailgunConfig struct {
	Domain string `json:"domain" yaml:"domain" validate:"required"`
	APIKey string `json:"api_key" yaml:"api_key" validate:"required"`
}

// RedisConfig enables the Redis transcript store when Addr is set.
type RedisConfig struct {
	Addr   string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// Config is the root service configuration.
type Config struct {
	// LLM specifies the completion providers.
	LLM llmfactory.Config `json:"llm" yaml:"llm"`
	// Mailgun specifies the email provider credentials.
	Mailgun MailgunConfig `json:"mailgun" yaml:"mailgun"`
	// Sender is the fixed sender identity pinned in the system prompt.
	Sender string `json:"sender" yaml:"sender" validate:"required,email"`
	// SystemPrompt overrides the default assistant instruction.
	SystemPrompt string `json:"system_prompt,omitempty" yaml:"system_prompt,omitempty"`
	// Redis enables the persistent transcript store.
	Redis RedisConfig `json:"redis,omitempty" yaml:"redis,omitempty"`
}

// Load reads, expands and validates the configuration file.
func Load(file string) (*Config, error) {
	cfg := new(Config)
	err := configloader.UnmarshalAndExpand(file, cfg)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to load config: %s", file)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.WithMessagef(err, "invalid config: %s", file)
	}
	return cfg, nil
}
