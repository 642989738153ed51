package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/luminox/luminox/client"
	"github.com/rs/zerolog/log"
)

// State is where the session is in its lifecycle.
type State int

const (
	Uninitialized State = iota
	Loading
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "uninitialized"
	}
}

// LoginResponse is what the login endpoint returns.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	User         *User  `json:"user,omitempty"`
}

// Service holds the session identity on top of a client.Client.
type Service struct {
	client *client.Client
	store  client.TokenStore

	mu    sync.RWMutex
	state State
	user  *User
}

// NewService returns a Service for c. The identity is dropped whenever c ends
// the session.
func NewService(c *client.Client) *Service {
	s := &Service{client: c, store: c.Tokens()}
	c.OnSessionExpired(s.dropIdentity)
	return s
}

// Init restores the identity from a stored access token, if any.
func (s *Service) Init() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Loading
	token := s.store.Access()
	if token == "" {
		s.user = nil
		s.state = Anonymous
		log.Debug().Msg("No stored access token")
		return s.state
	}

	s.user = UserFromToken(token)
	s.state = Authenticated
	if s.user == nil {
		log.Warn().Msg("Stored access token could not be decoded; continuing without identity")
	}
	return s.state
}

// Login exchanges credentials for tokens and stores them. Errors from the
// login call are returned as they are.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	resp, err := s.client.Do(ctx, &client.Request{
		Method: http.MethodPost,
		Path:   client.LoginPath,
		Body:   map[string]string{"email": email, "password": password},
	})
	if err != nil {
		log.Error().Err(err).Int("status", client.StatusCode(err)).Msg("Login failed")
		return nil, err
	}

	out, err := client.DecodeRecord[LoginResponse](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse login response: %w", err)
	}
	if out.AccessToken == "" {
		return nil, client.ErrNoAccessToken
	}
	if err := s.store.SetTokens(out.AccessToken, out.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to save tokens: %w", err)
	}

	user := out.User
	if user == nil {
		user = UserFromToken(out.AccessToken)
	}

	s.mu.Lock()
	s.user = user
	s.state = Authenticated
	s.mu.Unlock()

	log.Info().Str("email", email).Bool("refresh_token", out.RefreshToken != "").Msg("Logged in")
	return user, nil
}

// Logout forgets the tokens and the identity. Nothing is sent to the server.
func (s *Service) Logout() error {
	err := s.store.Clear()
	s.dropIdentity()
	if err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	log.Info().Msg("Logged out")
	return nil
}

// IsAuthenticated reports whether an access token is stored. The token is not validated.
func (s *Service) IsAuthenticated() bool {
	return s.store.Access() != ""
}

// State returns the current lifecycle state.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns the current identity, or nil.
func (s *Service) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// FetchProfile loads the identity from the server and makes it current.
func (s *Service) FetchProfile(ctx context.Context) (*User, error) {
	resp, err := s.client.Do(ctx, &client.Request{Method: http.MethodGet, Path: client.MePath})
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch profile")
		return nil, err
	}
	user, err := client.DecodeRecord[User](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return &user, nil
}

func (s *Service) dropIdentity() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.state = Anonymous
}
