package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticket-triage/pkg/log"
)

// Manager owns provider selection and per-call timeout handling.
// It deliberately performs NO retries and NO cross-provider fallback:
// every generation call is a single attempt whose failure is surfaced
// to the caller as a typed error.
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

// Config defines configuration for the provider Manager
type Config struct {
	// PerCallTimeout bounds each individual generation call.
	// Zero means the provider's own HTTP timeout applies.
	PerCallTimeout time.Duration
}

// NewManager creates a Manager over providers sorted by priority.
// The first provider is the active one; the rest are inert spares that
// can be promoted by configuration, never by runtime fallback.
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

// GenerateContent performs a single generation call against the active provider.
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}
	if req == nil || len(req.Messages) == 0 {
		return nil, ErrInvalidRequest
	}

	provider := m.providers[0]

	if m.config.PerCallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.PerCallTimeout)
		defer cancel()
	}

	resp, err := provider.GenerateContent(ctx, req)
	if err != nil {
		err = classifyError(err)
		m.logFailure(ctx, provider, err)
		return nil, &ProviderError{Provider: provider.Name(), Err: err}
	}

	if resp.Text == "" {
		m.logFailure(ctx, provider, ErrEmptyResponse)
		return nil, &ProviderError{Provider: provider.Name(), Err: ErrEmptyResponse}
	}

	m.logSuccess(ctx, provider, resp)
	return resp, nil
}

// Provider returns the active provider, or nil when none is configured.
func (m *Manager) Provider() Provider {
	if len(m.providers) == 0 {
		return nil
	}
	return m.providers[0]
}

// statusCoder is implemented by client API errors that carry an HTTP status.
type statusCoder interface {
	HTTPStatus() int
}

// classifyError maps transport failures onto the package sentinels so
// callers can distinguish rate limiting and timeouts from other faults.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrProviderTimeout, err)
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		switch sc.HTTPStatus() {
		case 429:
			return fmt.Errorf("%w: %v", ErrProviderRateLimited, err)
		case 408, 504:
			return fmt.Errorf("%w: %v", ErrProviderTimeout, err)
		}
	}

	return err
}

func (m *Manager) logSuccess(ctx context.Context, provider Provider, resp *Response) {
	var in, out int
	if resp.Usage != nil {
		in, out = resp.Usage.InputTokens, resp.Usage.OutputTokens
	}
	m.logger.Infof(ctx, "LLM generation successful: provider=%s model=%s input_tokens=%d output_tokens=%d",
		provider.Name(), provider.Model(), in, out)
}

func (m *Manager) logFailure(ctx context.Context, provider Provider, err error) {
	m.logger.Errorf(ctx, "LLM generation failed: provider=%s model=%s error=%v",
		provider.Name(), provider.Model(), err)
}
