package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// OrcamentosPath is the quotes collection.
const OrcamentosPath = "/api/v1/orcamentos"

// ListOrcamentos returns all quotes. Failures are logged and yield an empty list.
func (c *Client) ListOrcamentos(ctx context.Context) []Orcamento {
	return listOrEmpty[Orcamento](ctx, c, OrcamentosPath, "orcamentos")
}

// GetOrcamento fetches a single quote.
func (c *Client) GetOrcamento(ctx context.Context, id int64) (Orcamento, error) {
	path := fmt.Sprintf("%s/%d", OrcamentosPath, id)
	o, err := getRecord[Orcamento](ctx, c, path)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("Failed to fetch orcamento")
		return Orcamento{}, fmt.Errorf("failed to fetch orcamento %d: %w", id, err)
	}
	return o, nil
}

// CreateOrcamento creates a quote and returns it as stored by the backend.
func (c *Client) CreateOrcamento(ctx context.Context, in OrcamentoInput) (Orcamento, error) {
	resp, err := c.Do(ctx, &Request{Method: http.MethodPost, Path: OrcamentosPath, Body: in})
	if err != nil {
		log.Error().Err(err).Int("status", StatusCode(err)).Msg("Failed to create orcamento")
		return Orcamento{}, fmt.Errorf("failed to create orcamento: %w", err)
	}
	o, err := DecodeRecord[Orcamento](resp.Body)
	if err != nil {
		return Orcamento{}, fmt.Errorf("failed to parse created orcamento: %w", err)
	}
	log.Info().Int64("id", o.ID).Msg("Orcamento created")
	return o, nil
}

// listOrEmpty implements the list policy shared by all collection reads:
// any failure is logged and an empty list is returned.
func listOrEmpty[T any](ctx context.Context, c *Client, path, resource string) []T {
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: path})
	if err != nil {
		log.Warn().Err(err).Str("resource", resource).Int("status", StatusCode(err)).Msg("Failed to list, returning empty list")
		return []T{}
	}
	list, err := DecodeList[T](resp.Body)
	if err != nil {
		log.Warn().Err(err).Str("resource", resource).Str("body_preview", bodyPreview(resp.Body)).Msg("Unexpected list response, returning empty list")
		return []T{}
	}
	log.Debug().Str("resource", resource).Int("count", len(list)).Msg("Listed")
	return list
}

func getRecord[T any](ctx context.Context, c *Client, path string) (T, error) {
	var zero T
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return zero, err
	}
	rec, err := DecodeRecord[T](resp.Body)
	if err != nil {
		return zero, fmt.Errorf("failed to parse response of %s: %w", path, err)
	}
	return rec, nil
}
