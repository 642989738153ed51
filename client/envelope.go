package client

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrUnexpectedEnvelope is returned when a list response is neither an array
// nor an object holding one under a known key.
var ErrUnexpectedEnvelope = errors.New("unexpected list response shape")

// listEnvelopeKeys are tried in order when a list arrives wrapped in an object.
var listEnvelopeKeys = []string{"items", "data", "results"}

// DecodeList decodes a list response that is either a bare JSON array or an
// object carrying the array under "items", "data" or "results" (first match wins).
func DecodeList[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if isJSONArray(trimmed) {
		list := []T{}
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	for _, key := range listEnvelopeKeys {
		raw := bytes.TrimSpace(envelope[key])
		if !isJSONArray(raw) {
			continue
		}
		list := []T{}
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	return nil, ErrUnexpectedEnvelope
}

// DecodeRecord decodes a single record that is either bare or wrapped as {"data": record}.
func DecodeRecord[T any](body []byte) (T, error) {
	var record T

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if data := bytes.TrimSpace(envelope.Data); len(data) > 0 && data[0] == '{' {
			if err := json.Unmarshal(data, &record); err != nil {
				return record, err
			}
			return record, nil
		}
	}

	if err := json.Unmarshal(body, &record); err != nil {
		return record, err
	}
	return record, nil
}

func isJSONArray(raw []byte) bool {
	return len(raw) > 0 && raw[0] == '['
}
