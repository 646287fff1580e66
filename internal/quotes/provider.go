// Package quotes supplies motivational quotes from a remote API with a static
// fallback list.
package quotes

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var (
	// ErrEmptyResponse is returned when the API answers with no quotes.
	ErrEmptyResponse = errors.New("quote api returned no quotes")
	// ErrStatus is returned for non-2xx responses.
	ErrStatus = errors.New("quote api returned non-success status")
)

// Quote is a single quotation.
type Quote struct {
	Text   string `json:"quote"`
	Author string `json:"author"`
}

// Config defines how the remote API is reached.
type Config struct {
	URL      string
	Category string
	APIKey   string
	Timeout  time.Duration
}

// Provider fetches quotes and never fails from the caller's point of view.
type Provider struct {
	client   *resty.Client
	config   Config
	logger   *zap.Logger
	pickFunc func(n int) int
}

// NewProvider creates a provider. Requests are never retried.
func NewProvider(config Config, logger *zap.Logger) *Provider {
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client := resty.New().
		SetTimeout(config.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "FocusFlow/1.0")

	return &Provider{
		client:   client,
		config:   config,
		logger:   logger.Named("quotes"),
		pickFunc: rand.Intn,
	}
}

// Fetch returns a remote quote, or a random fallback quote on any failure.
func (provider *Provider) Fetch(ctx context.Context) Quote {
	quote, err := provider.fetchRemote(ctx)
	if err != nil {
		provider.logger.Info("using fallback quote", zap.Error(err))
		return provider.fallback()
	}
	return quote
}

func (provider *Provider) fetchRemote(ctx context.Context) (Quote, error) {
	var payload []Quote
	request := provider.client.R().
		SetContext(ctx).
		SetHeader("X-Api-Key", provider.config.APIKey).
		ForceContentType("application/json").
		SetResult(&payload)
	if provider.config.Category != "" {
		request.SetQueryParam("category", provider.config.Category)
	}

	resp, err := request.Get(provider.config.URL)
	if err != nil {
		return Quote{}, fmt.Errorf("request quote: %w", err)
	}
	if !resp.IsSuccess() {
		return Quote{}, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode())
	}

	for _, quote := range payload {
		if strings.TrimSpace(quote.Text) != "" {
			return quote, nil
		}
	}
	return Quote{}, ErrEmptyResponse
}

func (provider *Provider) fallback() Quote {
	return FallbackQuotes[provider.pickFunc(len(FallbackQuotes))]
}
