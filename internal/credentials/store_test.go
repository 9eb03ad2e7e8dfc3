package credentials

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	apperrors "acsLauncher/internal/error"
)

func TestKeyringStore_RoundTrip(t *testing.T) {
	keyring.MockInit()
	store := NewKeyringStore()

	_, found, err := store.Lookup("sys1", "QSECOFR")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Store("sys1", "QSECOFR", "s3cret"))

	password, found, err := store.Lookup("sys1", "QSECOFR")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "s3cret", password)

	exists, err := store.Exists("sys1", "QSECOFR")
	require.NoError(t, err)
	assert.True(t, exists)

	// other identities are separate entries
	exists, err = store.Exists("sys1", "OTHER")
	require.NoError(t, err)
	assert.False(t, exists)

	removed, err := store.Clear("sys1", "QSECOFR")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Clear("sys1", "QSECOFR")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestKeyringStore_Errors(t *testing.T) {
	keyring.MockInitWithError(errors.New("keyring locked"))
	store := NewKeyringStore()

	_, _, err := store.Lookup("sys1", "QSECOFR")
	assert.True(t, apperrors.Is(err, apperrors.CredentialError))

	err = store.Store("sys1", "QSECOFR", "x")
	assert.True(t, apperrors.Is(err, apperrors.CredentialError))

	_, err = store.Clear("sys1", "QSECOFR")
	assert.True(t, apperrors.Is(err, apperrors.CredentialError))
}

func TestAccount(t *testing.T) {
	assert.Equal(t, "QSECOFR@sys1", Account("sys1", "QSECOFR"))
}
