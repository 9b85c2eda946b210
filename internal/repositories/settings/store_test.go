package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/winecellar/internal/llm"
)

func TestStore_FallsBackToDefaults(t *testing.T) {
	s := NewStore(NewSQLiteRepository(setupDB(t)), llm.StaticCredentials{APIKey: "env-key"})
	ctx := context.Background()

	key, model, err := s.Credentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "env-key", key)
	assert.Equal(t, llm.DefaultModel, model)
}

func TestStore_StoredValuesWin(t *testing.T) {
	s := NewStore(NewSQLiteRepository(setupDB(t)), llm.StaticCredentials{APIKey: "env-key", Model: llm.DefaultModel})
	ctx := context.Background()

	require.NoError(t, s.SetAPIKey(ctx, "  sk-stored-1234 "))
	require.NoError(t, s.SetModel(ctx, "claude-opus-4-20250514"))

	key, model, err := s.Credentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-stored-1234", key)
	assert.Equal(t, "claude-opus-4-20250514", model)

	masked, err := s.MaskedAPIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "********1234", masked)

	saved, err := s.Saved(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{KeyAPIKey: true, KeyModel: true}, saved)

	require.NoError(t, s.Clear(ctx))
	saved, err = s.Saved(ctx)
	require.NoError(t, err)
	assert.Empty(t, saved)
	key, err = s.APIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "env-key", key)
}

func TestStore_SetModelRejectsUnknown(t *testing.T) {
	s := NewStore(NewSQLiteRepository(setupDB(t)), llm.StaticCredentials{})

	err := s.SetModel(context.Background(), "gpt-4o")
	require.ErrorIs(t, err, llm.ErrUnsupportedModel)
}

func TestStore_EmptyAPIKeyRemovesStoredValue(t *testing.T) {
	s := NewStore(NewSQLiteRepository(setupDB(t)), llm.StaticCredentials{})
	ctx := context.Background()

	require.NoError(t, s.SetAPIKey(ctx, "abc"))
	require.NoError(t, s.SetAPIKey(ctx, ""))

	key, err := s.APIKey(ctx)
	require.NoError(t, err)
	assert.Empty(t, key)

	masked, err := s.MaskedAPIKey(ctx)
	require.NoError(t, err)
	assert.Empty(t, masked)
}

func TestStore_ImplementsCredentialsProvider(t *testing.T) {
	var _ llm.CredentialsProvider = (*Store)(nil)
}
