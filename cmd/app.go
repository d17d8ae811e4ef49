package cmd

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/arcanaland/aura/internal/auth"
	"github.com/arcanaland/aura/internal/catalog"
	"github.com/arcanaland/aura/internal/config"
	"github.com/arcanaland/aura/internal/explain"
	"github.com/arcanaland/aura/internal/i18n"
	"github.com/arcanaland/aura/internal/store"
)

// localeFor returns the flag value when set, else the configured locale
func localeFor(flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.ResolvedLocale()
}

func catalogLoader() *catalog.Loader {
	return catalog.NewLoader(cfg.CatalogDir, logger)
}

func messages(locale string) *i18n.Bundle {
	return i18n.Load(locale)
}

func openStore() (*store.GormStore, error) {
	return store.Open(cfg.Database, logger)
}

func authProvider() (*auth.LocalProvider, error) {
	return auth.NewLocalProvider(config.GetSessionPath(), []byte(cfg.AuthSecret))
}

// signedInUser returns the current identity, or nil when nobody is signed in
func signedInUser(p auth.Provider) (*auth.Identity, error) {
	id, err := p.Current()
	if errors.Is(err, auth.ErrNotSignedIn) {
		return nil, nil
	}
	return id, err
}

// newExplainer builds an explainer. Without a usable key no client is
// created and every explanation reports the missing configuration.
func newExplainer(ctx context.Context) (*explain.Explainer, error) {
	if !explain.Configured(cfg.APIKey) {
		logger.Info("no Gemini API key configured")
		return explain.New(nil, cfg.APIKey, cfg.Model, logger), nil
	}

	gen, err := explain.NewGeminiGenerator(ctx, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}
	logger.Debug("Gemini client ready", zap.String("model", cfg.Model))
	return explain.New(gen, cfg.APIKey, cfg.Model, logger), nil
}
