package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

func itensPath(orcamentoID int64) string {
	return fmt.Sprintf("%s/%d/itens", OrcamentosPath, orcamentoID)
}

func itemPath(orcamentoID, itemID int64) string {
	return fmt.Sprintf("%s/%d", itensPath(orcamentoID), itemID)
}

// ListOrcamentoItens returns the line items of a quote. Failures are logged and
// yield an empty list.
func (c *Client) ListOrcamentoItens(ctx context.Context, orcamentoID int64) []OrcamentoItem {
	return listOrEmpty[OrcamentoItem](ctx, c, itensPath(orcamentoID), "orcamento_itens")
}

// GetOrcamentoItem fetches one line item.
func (c *Client) GetOrcamentoItem(ctx context.Context, orcamentoID, itemID int64) (OrcamentoItem, error) {
	item, err := getRecord[OrcamentoItem](ctx, c, itemPath(orcamentoID, itemID))
	if err != nil {
		log.Error().Err(err).Int64("orcamento_id", orcamentoID).Int64("item_id", itemID).Msg("Failed to fetch item")
		return OrcamentoItem{}, fmt.Errorf("failed to fetch item %d of orcamento %d: %w", itemID, orcamentoID, err)
	}
	return item, nil
}

// CreateOrcamentoItem adds a line item to a quote.
func (c *Client) CreateOrcamentoItem(ctx context.Context, orcamentoID int64, in OrcamentoItemInput) (OrcamentoItem, error) {
	return c.writeItem(ctx, http.MethodPost, itensPath(orcamentoID), in)
}

// UpdateOrcamentoItem applies a partial update to a line item.
func (c *Client) UpdateOrcamentoItem(ctx context.Context, orcamentoID, itemID int64, patch OrcamentoItemPatch) (OrcamentoItem, error) {
	return c.writeItem(ctx, http.MethodPut, itemPath(orcamentoID, itemID), patch)
}

// DeleteOrcamentoItem removes a line item.
func (c *Client) DeleteOrcamentoItem(ctx context.Context, orcamentoID, itemID int64) error {
	if err := c.Delete(ctx, itemPath(orcamentoID, itemID)); err != nil {
		log.Error().Err(err).Int64("orcamento_id", orcamentoID).Int64("item_id", itemID).Msg("Failed to delete item")
		return fmt.Errorf("failed to delete item %d of orcamento %d: %w", itemID, orcamentoID, err)
	}
	return nil
}

func (c *Client) writeItem(ctx context.Context, method, path string, body any) (OrcamentoItem, error) {
	resp, err := c.Do(ctx, &Request{Method: method, Path: path, Body: body})
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("Failed to write item")
		return OrcamentoItem{}, fmt.Errorf("failed to %s %s: %w", method, path, err)
	}
	item, err := DecodeRecord[OrcamentoItem](resp.Body)
	if err != nil {
		return OrcamentoItem{}, fmt.Errorf("failed to parse item response: %w", err)
	}
	return item, nil
}
