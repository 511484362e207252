package assistants

import (
	"github.com/sorcery-ai/concierge/pkg/llms"
	"github.com/sorcery-ai/concierge/store"
)

// Option is a function that can be used to modify the behavior of the Assistant Config.
type Option func(*Config)

type Config struct {
	// Model is the model to use in an LLM call.
	Model    string
	modelSet bool

	// MaxTokens is the maximum number of tokens to generate to use in an LLM call.
	MaxTokens    int
	maxTokensSet bool

	// Temperature is the temperature for sampling to use in an LLM call, between 0 and 1.
	Temperature    float64
	temperatureSet bool

	// MaxLength is the maximum content size in bytes to send to the provider.
	MaxLength int

	// MaxMessages is the maximum transcript length to send to the provider.
	MaxMessages int

	// CallbackHandler receives turn lifecycle events.
	CallbackHandler Callback

	// Store persists the conversation transcript. When nil the turn runs
	// stateless and nothing is persisted.
	Store store.MessageStore

	// SkipMessageHistory skips adding turn messages to the Store.
	SkipMessageHistory bool
}

const (
	DefaultMaxContentSize = 256 * 1024
	DefaultMaxMessages    = 200
)

func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		MaxLength:   DefaultMaxContentSize,
		MaxMessages: DefaultMaxMessages,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Apply returns a copy of the config with the given options applied.
func (o *Config) Apply(opts ...Option) *Config {
	cfg := *o
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// GetCallOptions converts the config to provider call options.
func (o *Config) GetCallOptions(extra ...llms.CallOption) []llms.CallOption {
	var callOpts []llms.CallOption
	if o.modelSet {
		callOpts = append(callOpts, llms.WithModel(o.Model))
	}
	if o.maxTokensSet {
		callOpts = append(callOpts, llms.WithMaxTokens(o.MaxTokens))
	}
	if o.temperatureSet {
		callOpts = append(callOpts, llms.WithTemperature(o.Temperature))
	}
	return append(callOpts, extra...)
}

// WithModel is an option for LLM.Call.
func WithModel(model string) Option {
	return func(o *Config) {
		o.Model = model
		o.modelSet = true
	}
}

// WithMaxTokens is an option for LLM.Call.
func WithMaxTokens(maxTokens int) Option {
	return func(o *Config) {
		o.MaxTokens = maxTokens
		o.maxTokensSet = true
	}
}

// WithTemperature is an option for LLM.Call.
func WithTemperature(temperature float64) Option {
	return func(o *Config) {
		o.Temperature = temperature
		o.temperatureSet = true
	}
}

// WithMaxLength sets the maximum content size in bytes to send to the provider.
func WithMaxLength(maxLength int) Option {
	return func(o *Config) {
		o.MaxLength = maxLength
	}
}

// WithMaxMessages sets the maximum transcript length to send to the provider.
func WithMaxMessages(maxMessages int) Option {
	return func(o *Config) {
		o.MaxMessages = maxMessages
	}
}

// WithCallback sets the callback handler.
func WithCallback(cb Callback) Option {
	return func(o *Config) {
		o.CallbackHandler = cb
	}
}

// WithMessageStore sets the transcript store.
func WithMessageStore(s store.MessageStore) Option {
	return func(o *Config) {
		o.Store = s
	}
}

// WithSkipMessageHistory is an option that allows to skip adding turn messages to the Store.
func WithSkipMessageHistory(skip bool) Option {
	return func(o *Config) {
		o.SkipMessageHistory = skip
	}
}
