package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visaline/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), zerolog.Nop())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	user := models.User{
		ID:        "u1",
		FirstName: "Ann",
		LastName:  "Ward",
		Email:     "ann@example.com",
		Role:      models.UserRoleUser,
	}

	store.Save(user, "t1")

	// A fresh store over the same dir simulates an app restart.
	restarted := NewStore(store.dir, zerolog.Nop())
	got, token, ok := restarted.Load()
	require.True(t, ok)
	assert.Equal(t, user, got)
	assert.Equal(t, "t1", token)
}

func TestLoadNoSession(t *testing.T) {
	store := newTestStore(t)

	_, _, ok := store.Load()
	assert.False(t, ok)
}

func TestLoadMissingTokenIsNoSession(t *testing.T) {
	store := newTestStore(t)
	store.Save(models.User{ID: "u1", FirstName: "Ann"}, "t1")
	require.NoError(t, os.Remove(filepath.Join(store.dir, tokenFile)))

	_, _, ok := store.Load()
	assert.False(t, ok)
}

func TestLoadCorruptUserIsNoSession(t *testing.T) {
	store := newTestStore(t)
	store.Save(models.User{ID: "u1"}, "t1")
	require.NoError(t, os.WriteFile(filepath.Join(store.dir, userFile), []byte("{nope"), 0o600))

	_, _, ok := store.Load()
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	store.Save(models.User{ID: "u1"}, "t1")

	store.Clear()

	_, _, ok := store.Load()
	assert.False(t, ok)
	assert.Empty(t, store.Token())

	// Clearing twice is fine.
	store.Clear()
}

func TestSaveIntoUnwritableDirIsSwallowed(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	parent := t.TempDir()
	require.NoError(t, os.Chmod(parent, 0o500))
	t.Cleanup(func() { _ = os.Chmod(parent, 0o700) })

	store := NewStore(filepath.Join(parent, "state"), zerolog.Nop())
	store.Save(models.User{ID: "u1"}, "t1") // must not panic or error out
	assert.Empty(t, store.Token())
}

func TestParseClaims(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "u1",
		"role": "admin",
		"exp":  jwt.NewNumericDate(time.Now().Add(time.Hour)).Unix(),
	})
	signed, err := token.SignedString([]byte("server-secret"))
	require.NoError(t, err)

	claims, ok := ParseClaims(signed)
	require.True(t, ok)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.False(t, claims.ExpiresAt.IsZero())
}

func TestParseClaimsMalformed(t *testing.T) {
	_, ok := ParseClaims("not-a-jwt")
	assert.False(t, ok)
}
