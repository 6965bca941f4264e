package rest

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shared-api/pkg/domain"
)

// messenger lo implementan los errores que agrupan varios mensajes (validación).
type messenger interface {
	Messages() []string
}

// FromError traduce un error a un sobre con el código HTTP correspondiente:
// errores de validación 422, *fiber.Error su código, errores de dominio su
// código (404, 400, 409, 401, 403) y el resto 500.
func FromError(err error, opts ...Option) Result {
	var m messenger
	if errors.As(err, &m) {
		return FromValidation(m.Messages(), opts...)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return build(false, fe.Code, []string{fe.Message}, opts)
	}
	return build(false, StatusFor(err), []string{err.Error()}, opts)
}

// StatusFor devuelve el código HTTP asociado a un error de dominio.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
