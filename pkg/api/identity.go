package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shared-api/pkg/constants"
	"github.com/jhoicas/shared-api/pkg/cqrs"
	pkgjwt "github.com/jhoicas/shared-api/pkg/jwt"
)

// IdentityFromContext lee el Bearer token de Authorization. Sin token, o con
// uno inválido o expirado, la identidad queda anónima: la petición no se rechaza.
func IdentityFromContext(c *fiber.Ctx, jwtSecret string) cqrs.Identity {
	scheme, token, ok := strings.Cut(c.Get(constants.HeaderAuthorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return cqrs.Identity{}
	}
	token = strings.TrimSpace(token)
	if token == "" || jwtSecret == "" {
		return cqrs.Identity{}
	}
	claims, err := pkgjwt.Parse(jwtSecret, token)
	if err != nil {
		return cqrs.Identity{}
	}
	return cqrs.IdentityFromClaims(claims)
}
