package db

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// TokenStore keeps the session's access and refresh tokens in the database so
// they survive restarts. An empty string means the token is absent.
// No validation of token structure happens here.
type TokenStore struct {
	mu   sync.Mutex
	repo TokenRepository
}

// NewTokenStore returns a TokenStore backed by repo.
func NewTokenStore(repo TokenRepository) *TokenStore {
	return &TokenStore{repo: repo}
}

// Access returns the stored access token, or "" if there is none.
func (s *TokenStore) Access() string {
	tok := s.load()
	if tok == nil {
		return ""
	}
	return tok.AccessToken
}

// Refresh returns the stored refresh token, or "" if there is none.
func (s *TokenStore) Refresh() string {
	tok := s.load()
	if tok == nil {
		return ""
	}
	return tok.RefreshToken
}

// SetTokens stores access and, when non-empty, refresh. An empty refresh keeps
// the previously stored one.
func (s *TokenStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()
	current, err := s.repo.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read token record before update")
		return err
	}
	tok := &Token{AccessToken: access}
	if refresh != "" {
		tok.RefreshToken = refresh
	} else if current != nil {
		tok.RefreshToken = current.RefreshToken
	}
	if err := s.repo.Upsert(ctx, tok); err != nil {
		log.Error().Err(err).Msg("Failed to save token record")
		return err
	}
	log.Debug().Str("access", preview(access)).Bool("refresh_rotated", refresh != "").Msg("Tokens stored")
	return nil
}

// Clear removes both tokens.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to clear token record")
		return err
	}
	log.Debug().Msg("Tokens cleared")
	return nil
}

func (s *TokenStore) load() *Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, err := s.repo.Get(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve token record")
		return nil
	}
	return tok
}

// MemoryTokenStore is a TokenStore that lives only as long as the process.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

// NewMemoryTokenStore returns an empty MemoryTokenStore.
func NewMemoryTokenStore() *MemoryTokenStore { return &MemoryTokenStore{} }

func (m *MemoryTokenStore) Access() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access
}

func (m *MemoryTokenStore) Refresh() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refresh
}

func (m *MemoryTokenStore) SetTokens(access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = access
	if refresh != "" {
		m.refresh = refresh
	}
	return nil
}

func (m *MemoryTokenStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = "", ""
	return nil
}

// preview returns a short, log-safe prefix of a token.
func preview(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8] + "..."
}
