package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/shared-api/pkg/constants"
	"github.com/jhoicas/shared-api/pkg/cqrs"
	"github.com/jhoicas/shared-api/pkg/logger"
)

// LocalCorrelationID key del correlation id en c.Locals.
const LocalCorrelationID = "correlation_id"

// Correlation garantiza un Correlation-Id por petición. Si falta o no es un
// UUID se genera uno nuevo (32 hex sin guiones). Queda en la cabecera de la
// petición, en la de la respuesta y en c.Locals.
func Correlation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Get(constants.HeaderCorrelationID))
		if _, err := uuid.Parse(id); err != nil {
			id = NewCorrelationID()
			c.Request().Header.Set(constants.HeaderCorrelationID, id)
		}
		c.Set(constants.HeaderCorrelationID, id)
		c.Locals(LocalCorrelationID, id)
		return c.Next()
	}
}

// NewCorrelationID UUID v4 en formato de 32 hex.
func NewCorrelationID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// CorrelationID devuelve el correlation id de la petición (después del middleware).
func CorrelationID(c *fiber.Ctx) string {
	if s, ok := c.Locals(LocalCorrelationID).(string); ok {
		return s
	}
	return c.Get(constants.HeaderCorrelationID)
}

// RequestFromContext copia las cabeceras propagadas de la petición HTTP para
// armar un comando o consulta.
func RequestFromContext(c *fiber.Ctx) cqrs.Request {
	var req cqrs.Request
	for _, h := range constants.PropagatedHeaders {
		req.AddHeader(h, c.Get(h))
	}
	req.AddHeader(constants.HeaderCorrelationID, CorrelationID(c))
	return req
}

// LoggerFromContext sub-logger con el correlation id de la petición.
func LoggerFromContext(c *fiber.Ctx, log *logger.Logger) *logger.Logger {
	return logger.OrNop(log).WithCorrelationID(CorrelationID(c))
}
