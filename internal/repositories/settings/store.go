package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/winecellar/internal/llm"
)

const (
	KeyAPIKey = "anthropic_api_key"
	KeyModel  = "anthropic_model"
)

// Store exposes typed accessors over a Repository and implements
// llm.CredentialsProvider.
type Store struct {
	repo     Repository
	defaults llm.StaticCredentials
}

// NewStore falls back to defaults (env or config file) for anything not stored.
func NewStore(repo Repository, defaults llm.StaticCredentials) *Store {
	if defaults.Model == "" {
		defaults.Model = llm.DefaultModel
	}
	return &Store{repo: repo, defaults: defaults}
}

func (s *Store) APIKey(ctx context.Context) (string, error) {
	return s.lookup(ctx, KeyAPIKey, s.defaults.APIKey)
}

// SetAPIKey stores key; an empty key removes the stored value.
func (s *Store) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return s.repo.Delete(ctx, KeyAPIKey)
	}
	return s.repo.Set(ctx, KeyAPIKey, key)
}

func (s *Store) Model(ctx context.Context) (string, error) {
	return s.lookup(ctx, KeyModel, s.defaults.Model)
}

func (s *Store) SetModel(ctx context.Context, model string) error {
	model = strings.TrimSpace(model)
	if !llm.IsSupportedModel(model) {
		return fmt.Errorf("%w: %s", llm.ErrUnsupportedModel, model)
	}
	return s.repo.Set(ctx, KeyModel, model)
}

// Clear removes every stored setting; defaults apply afterwards.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

func (s *Store) Credentials(ctx context.Context) (string, string, error) {
	key, err := s.APIKey(ctx)
	if err != nil {
		return "", "", err
	}
	model, err := s.Model(ctx)
	if err != nil {
		return "", "", err
	}
	return key, model, nil
}

// Saved reports which keys hold a stored value overriding the defaults.
func (s *Store) Saved(ctx context.Context) (map[string]bool, error) {
	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	saved := make(map[string]bool, len(stored))
	for k, v := range stored {
		saved[k] = v != ""
	}
	return saved, nil
}

// MaskedAPIKey shows the last four characters only.
func (s *Store) MaskedAPIKey(ctx context.Context) (string, error) {
	key, err := s.APIKey(ctx)
	if err != nil || key == "" {
		return "", err
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key)), nil
	}
	return strings.Repeat("*", 8) + key[len(key)-4:], nil
}

func (s *Store) lookup(ctx context.Context, key, fallback string) (string, error) {
	v, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok || v == "" {
		return fallback, nil
	}
	return v, nil
}
