package credsync_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/apiclient"
	"github.com/dmitrymomot/sessionkit/pkg/credsync"
)

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "cred.json")
	store := credsync.NewFileStore(path)

	cred := credsync.Credential{
		Token: "tok_1",
		Model: &apiclient.User{ID: "usr_1", Email: "a@x.com"},
	}
	require.NoError(t, store.Save(cred))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok_1", got.Token)
	require.NotNil(t, got.Model)
	assert.Equal(t, "usr_1", got.Model.ID)
	assert.Equal(t, "a@x.com", got.Model.Email)
}

func TestFileStore_OwnerOnlyPermissions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cred.json")
	store := credsync.NewFileStore(path)
	require.NoError(t, store.Save(credsync.Credential{Token: "tok_1"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_MissingFile(t *testing.T) {
	t.Parallel()

	store := credsync.NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	_, err := store.Load()
	assert.ErrorIs(t, err, credsync.ErrNoCredential)
}

func TestFileStore_CorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cred.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := credsync.NewFileStore(path).Load()
	assert.ErrorIs(t, err, credsync.ErrInvalidCredential)
}

func TestFileStore_Clear(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cred.json")
	store := credsync.NewFileStore(path)
	require.NoError(t, store.Save(credsync.Credential{Token: "tok_1"}))

	require.NoError(t, store.Clear())
	_, err := store.Load()
	assert.ErrorIs(t, err, credsync.ErrNoCredential)

	// clearing twice is fine
	assert.NoError(t, store.Clear())
}
