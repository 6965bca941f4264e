package cqrs

import (
	"slices"

	"github.com/google/uuid"

	pkgjwt "github.com/jhoicas/shared-api/pkg/jwt"
)

// Identity usuario que ejecuta el comando.
type Identity struct {
	Authenticated bool       `json:"authenticated"`
	UserName      string     `json:"userName,omitempty"`
	UserID        *uuid.UUID `json:"userId,omitempty"`
	Roles         []string   `json:"roles,omitempty"`
}

// IdentityFromClaims construye la identidad a partir de un token ya validado.
// Un user_id que no es UUID deja UserID en nil.
func IdentityFromClaims(claims *pkgjwt.Claims) Identity {
	if claims == nil {
		return Identity{}
	}
	id := Identity{
		Authenticated: true,
		UserName:      claims.UserName,
		Roles:         slices.Clone(claims.Roles),
	}
	if uid, err := uuid.Parse(claims.UserID); err == nil {
		id.UserID = &uid
	}
	return id
}

// HasRole indica si la identidad tiene el rol indicado.
func (i Identity) HasRole(role string) bool {
	return slices.Contains(i.Roles, role)
}

// Identify asigna la identidad; lo usa quien arma el comando desde la petición HTTP.
func (i *Identity) Identify(id Identity) {
	*i = id
}
