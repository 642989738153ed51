package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/luminox/luminox/client"
	"github.com/luminox/luminox/pkg/clierr"
)

// requireAuth fails when no session is stored.
func (a *app) requireAuth() error {
	if a.session == nil || !a.session.IsAuthenticated() {
		return clierr.New(clierr.Auth, "not logged in, run 'luminox login' first", nil)
	}
	return nil
}

// apiError turns a client error into a CLI error. what describes the failed action.
func apiError(what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, client.ErrSessionExpired) {
		return clierr.New(clierr.Auth, "session expired, run 'luminox login' to sign in again", err)
	}

	msg := fmt.Sprintf("failed to %s", what)
	var httpErr *client.HTTPError
	if !errors.As(err, &httpErr) {
		return clierr.New(clierr.Remote, fmt.Sprintf("%s: %v", msg, err), err)
	}
	if httpErr.Body != "" {
		msg = fmt.Sprintf("%s (HTTP %d): %s", msg, httpErr.StatusCode, httpErr.Body)
	} else {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, httpErr.StatusCode)
	}

	switch httpErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return clierr.New(clierr.Auth, msg, err)
	case http.StatusNotFound:
		return clierr.New(clierr.NotFound, msg, err)
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return clierr.New(clierr.Validation, msg, err)
	default:
		return clierr.New(clierr.Remote, msg, err)
	}
}

func invalid(err error) error {
	return clierr.New(clierr.Validation, err.Error(), err)
}
