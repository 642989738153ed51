// Package jwtclaims reads the payload of a JWT for display purposes.
//
// Nothing here verifies signatures. The server validates tokens; the client
// only looks inside them to show who is logged in.
package jwtclaims

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// Claims is the decoded payload of a token.
type Claims = jwt.MapClaims

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// alphabet maps the standard base64 alphabet onto the URL-safe one.
var alphabet = strings.NewReplacer("+", "-", "/", "_")

// DecodePayload returns the claims held in the middle segment of token, or nil
// when the token is not three dot-separated segments, the payload is not
// base64url, or the decoded payload is not a JSON object.
func DecodePayload(token string) Claims {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		log.Debug().Int("segments", len(parts)).Msg("Token does not have three segments")
		return nil
	}

	raw, err := segmentParser.DecodeSegment(alphabet.Replace(parts[1]))
	if err != nil {
		log.Debug().Err(err).Msg("Failed to decode token payload segment")
		return nil
	}

	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		log.Debug().Err(err).Msg("Token payload is not a JSON object")
		return nil
	}
	if claims == nil {
		return nil
	}
	return claims
}

// LookupString returns the value of the first key that holds a string. An
// empty string counts as present and ends the search.
func LookupString(c Claims, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := c[k].(string); ok {
			return s, true
		}
	}
	return "", false
}

// FirstString is LookupString without the presence flag.
func FirstString(c Claims, keys ...string) string {
	s, _ := LookupString(c, keys...)
	return s
}

// FirstInt returns the first integral value among keys. Numeric strings count.
func FirstInt(c Claims, keys ...string) (int64, bool) {
	for _, k := range keys {
		switch v := c[k].(type) {
		case float64:
			if v == math.Trunc(v) {
				return int64(v), true
			}
		case json.Number:
			if n, err := v.Int64(); err == nil {
				return n, true
			}
		case string:
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// FirstOfList returns the first element of the list stored under key when it
// is a non-empty string.
func FirstOfList(c Claims, key string) string {
	list, ok := c[key].([]any)
	if !ok || len(list) == 0 {
		return ""
	}
	s, _ := list[0].(string)
	return s
}
