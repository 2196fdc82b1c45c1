package apiclient

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"acservice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	s, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, s, "missing file means no session")

	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, store.Save(ctx, Session{Token: "tok", UserID: "u1", Role: model.RoleAdmin, ExpiresAt: exp}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	s, err = NewFileStore(path).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "tok", s.Token)
	assert.Equal(t, model.RoleAdmin, s.Role)
	assert.True(t, exp.Equal(s.ExpiresAt))

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx), "clearing twice is fine")
	s, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestFileStoreCorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	assert.False(t, Session{Token: "x"}.Expired(now))
	assert.False(t, Session{Token: "x", ExpiresAt: now.Add(time.Second)}.Expired(now))
	assert.True(t, Session{Token: "x", ExpiresAt: now}.Expired(now))
}

func TestTokenExpiry(t *testing.T) {
	_, ok := tokenExpiry("t1")
	assert.False(t, ok)
}
