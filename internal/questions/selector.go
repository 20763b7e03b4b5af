package questions

import (
	"context"
	"fmt"
	"time"
	"transparency/internal/config"
	"transparency/internal/llm"
	"transparency/internal/logging"
	"transparency/internal/model"

	"github.com/sirupsen/logrus"
)

// Selector picks follow-ups with a primary generator and never fails:
// any error or empty result yields the catalog questions for the category.
type Selector struct {
	primary  Generator
	fallback *Catalog
	timeout  time.Duration
}

// NewSelector wraps primary with the catalog fallback.
// A nil primary makes the selector local-only.
func NewSelector(primary Generator, fallback *Catalog, timeout time.Duration) *Selector {
	return &Selector{primary: primary, fallback: fallback, timeout: timeout}
}

// NewSelectorFromConfig builds the selector the configuration asks for
func NewSelectorFromConfig(cfg *config.AIConfig) (*Selector, error) {
	catalog, err := NewCatalog()
	if err != nil {
		return nil, err
	}

	var primary Generator
	switch cfg.ResolvedProvider() {
	case config.ProviderCatalog:
	case config.ProviderGemini:
		primary = NewRemote(llm.NewGemini(cfg))
	case config.ProviderOllama:
		primary = NewRemote(llm.NewOllama(cfg))
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownProvider, cfg.Provider)
	}
	return NewSelector(primary, catalog, time.Duration(cfg.TimeoutMS)*time.Millisecond), nil
}

// Provider names the generator in use
func (s *Selector) Provider() string {
	if s.primary == nil {
		return s.fallback.Name()
	}
	return s.primary.Name()
}

// Select returns the follow-ups for base
func (s *Selector) Select(ctx context.Context, base model.ProductData) []model.Question {
	if s.primary == nil {
		return s.fallback.For(base.Category)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	qs, err := s.primary.FollowUps(ctx, base)
	if err == nil && len(qs) == 0 {
		err = ErrNoQuestions
	}
	if err != nil {
		logging.Log.WithFields(logrus.Fields{
			"provider": s.primary.Name(),
			"category": base.Category,
		}).WithError(err).Warn("follow-up generation failed, using catalog")
		return s.fallback.For(base.Category)
	}
	return qs
}
