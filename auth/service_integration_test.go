package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/luminox/luminox/auth"
	"github.com/luminox/luminox/client"
	"github.com/luminox/luminox/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string) *db.TokenStore {
	t.Helper()
	db.Path = path
	require.NoError(t, db.InitDB())
	t.Cleanup(func() { _ = db.CloseDB() })
	return db.NewTokenStore(db.NewTokenRepository(db.GetDB()))
}

func TestLogin_Integration_SessionSurvivesRestart(t *testing.T) {
	access := fakeToken(t, map[string]any{"email": "a@b.com", "role": "ADMIN"})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, map[string]string{"access_token": access, "refresh_token": "r1"})
	}))
	defer server.Close()
	path := filepath.Join(t.TempDir(), "luminox.db")

	first := auth.NewService(client.New(server.URL, openStore(t, path)))
	_, err := first.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	require.NoError(t, db.CloseDB())

	second := auth.NewService(client.New(server.URL, openStore(t, path)))
	assert.Equal(t, auth.Authenticated, second.Init())
	require.NotNil(t, second.User())
	assert.Equal(t, "ADMIN", second.User().Role)

	require.NoError(t, second.Logout())
	assert.Equal(t, auth.Anonymous, second.Init())
}
