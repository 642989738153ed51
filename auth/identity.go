package auth

import (
	"github.com/luminox/luminox/pkg/jwtclaims"
)

// DefaultName is shown when a token carries no name or email.
const DefaultName = "Usuário"

// User is the identity shown for the current session. Every field is optional
// because it is read from whatever the server put in the token or login response.
type User struct {
	ID    *int64 `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// UserFromToken decodes token and maps its claims to a User. It returns nil
// when the payload cannot be decoded.
func UserFromToken(token string) *User {
	claims := jwtclaims.DecodePayload(token)
	if claims == nil {
		return nil
	}
	return UserFromClaims(claims)
}

// UserFromClaims maps well-known claim names to a User. A claim that is
// present but empty still wins over the keys after it.
func UserFromClaims(c jwtclaims.Claims) *User {
	u := &User{}
	email, hasEmail := jwtclaims.LookupString(c, "email", "sub")
	u.Email = email
	if id, ok := jwtclaims.FirstInt(c, "id", "user_id"); ok {
		u.ID = &id
	}

	name, ok := jwtclaims.LookupString(c, "name", "full_name", "username")
	switch {
	case ok:
		u.Name = name
	case hasEmail:
		u.Name = email
	default:
		u.Name = DefaultName
	}

	if role, ok := jwtclaims.LookupString(c, "role", "perfil"); ok {
		u.Role = role
	} else {
		u.Role = jwtclaims.FirstOfList(c, "scopes")
	}
	return u
}
