package adapter

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Customer profile adapter – structured for real integration
// ---------------------------------------------------------------------------

// CustomerProfileConfig holds configuration for the customer profile adapter.
type CustomerProfileConfig struct {
	// BaseURL is the base URL of the customer-management API.
	BaseURL string
	// APIKey is the authentication credential for the API.
	APIKey string
	// TimeoutSeconds is the HTTP client timeout.
	TimeoutSeconds int
	// MaxRetries is the maximum number of retry attempts on transient failures.
	MaxRetries int
	// RetryBackoffMs is the base backoff duration in milliseconds between retries.
	RetryBackoffMs int
}

// DefaultCustomerProfileConfig returns sensible defaults for development.
func DefaultCustomerProfileConfig() CustomerProfileConfig {
	return CustomerProfileConfig{
		BaseURL:        "https://api.customers.example.com",
		APIKey:         "dev-api-key",
		TimeoutSeconds: 10,
		MaxRetries:     3,
		RetryBackoffMs: 200,
	}
}

// ProfileClient defines the interface for fetching profiles from the
// customer-management service. This enables testing with mock
// implementations.
type ProfileClient interface {
	FetchProfile(ctx context.Context, tenantID, customerID string) (model.CustomerRiskProfile, error)
}

// CustomerProfileAdapter implements port.CustomerProfileReader against the
// customer-management service. It is designed to be backed by a real HTTP
// client; without one it falls back to deterministic simulated profiles.
type CustomerProfileAdapter struct {
	config CustomerProfileConfig
	client ProfileClient // nil = use simulated responses
}

// NewCustomerProfileAdapter creates a new adapter with the given configuration.
// If client is nil, simulated profiles are used (suitable for development).
func NewCustomerProfileAdapter(config CustomerProfileConfig, client ProfileClient) *CustomerProfileAdapter {
	return &CustomerProfileAdapter{
		config: config,
		client: client,
	}
}

// GetProfile retrieves the read-only risk profile for a customer.
func (a *CustomerProfileAdapter) GetProfile(ctx context.Context, tenantID, customerID string) (model.CustomerRiskProfile, error) {
	if customerID == "" {
		return model.CustomerRiskProfile{}, fmt.Errorf("customer ID is required")
	}

	if a.client != nil {
		profile, err := a.fetchWithRetry(ctx, tenantID, customerID)
		if err != nil {
			return model.CustomerRiskProfile{}, fmt.Errorf("customer profile request failed: %w", err)
		}
		return profile, nil
	}

	return simulateProfile(customerID), nil
}

// fetchWithRetry calls the customer API with exponential backoff.
func (a *CustomerProfileAdapter) fetchWithRetry(ctx context.Context, tenantID, customerID string) (model.CustomerRiskProfile, error) {
	var lastErr error

	for attempt := 0; attempt <= a.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(a.config.RetryBackoffMs) * time.Millisecond * (1 << uint(attempt-1))
			jitter := time.Duration(rand.Int63n(int64(backoff) / 2))
			select {
			case <-ctx.Done():
				return model.CustomerRiskProfile{}, ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}

		profile, err := a.client.FetchProfile(ctx, tenantID, customerID)
		if err == nil {
			return profile, nil
		}
		lastErr = err
	}

	return model.CustomerRiskProfile{}, fmt.Errorf("exhausted %d retries: %w", a.config.MaxRetries, lastErr)
}
