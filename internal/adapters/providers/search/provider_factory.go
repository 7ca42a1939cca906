package search

import (
	"fmt"
	"time"

	"github.com/eventfinder-ai/backend/internal/domain/providers"
	"github.com/eventfinder-ai/backend/pkg/config"
	apperrors "github.com/eventfinder-ai/backend/pkg/errors"
)

// NewSearchProvider resolves the configured provider once at startup. An
// unknown provider name or missing credentials fail construction so a broken
// deployment never serves empty-but-successful discovery.
func NewSearchProvider(cfg config.SearchConfig) (providers.SearchProvider, error) {
	switch cfg.Provider {
	case config.SearchProviderMock:
		return NewMockAdapter(), nil
	case config.SearchProviderBrave:
		if cfg.APIKey == "" {
			return nil, apperrors.NewConfigurationError("SEARCH_API_KEY is required for the brave search provider")
		}
		timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
		return NewBraveAdapter(cfg.APIKey, cfg.BaseURL, timeout), nil
	default:
		return nil, apperrors.NewConfigurationError(fmt.Sprintf("unknown search provider %q", cfg.Provider))
	}
}
