// Package session persists the signed-in user and bearer token across
// process restarts. Persistence is best-effort: in-memory slice state is
// authoritative for the running session, so storage failures are logged
// and swallowed rather than surfaced.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"visaline/internal/models"
)

const (
	userFile  = "user"
	tokenFile = "token"
)

type Store struct {
	dir string
	log zerolog.Logger
}

func NewStore(dir string, log zerolog.Logger) *Store {
	return &Store{dir: dir, log: log}
}

// Save writes the serialized user and the raw token.
func (s *Store) Save(user models.User, token string) {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		s.log.Warn().Err(err).Str("dir", s.dir).Msg("create state dir failed")
		return
	}

	encoded, err := json.Marshal(user)
	if err != nil {
		s.log.Warn().Err(err).Msg("serialize user failed")
		return
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFile), encoded, 0o600); err != nil {
		s.log.Warn().Err(err).Msg("persist user failed")
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		s.log.Warn().Err(err).Msg("persist token failed")
	}
}

// Load restores a persisted session. ok is false when either the user or
// the token is absent or unreadable; that is "no session", not an error.
func (s *Store) Load() (models.User, string, bool) {
	encoded, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return models.User{}, "", false
	}

	var user models.User
	if err := json.Unmarshal(encoded, &user); err != nil {
		s.log.Warn().Err(err).Msg("stored user unreadable")
		return models.User{}, "", false
	}

	token := s.Token()
	if token == "" {
		return models.User{}, "", false
	}
	return user, token, true
}

// Token reads the raw persisted token, "" when none exists. Called by the
// API client before every request.
func (s *Store) Token() string {
	raw, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// Clear removes the persisted session.
func (s *Store) Clear() {
	for _, name := range []string{userFile, tokenFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("key", name).Msg("clear session key failed")
		}
	}
}
