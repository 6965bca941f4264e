package rest

import "github.com/gofiber/fiber/v2"

// Responder es cualquier sobre que conoce su código HTTP.
type Responder interface {
	Status() int
}

// Send escribe el código y el cuerpo JSON del sobre.
func Send(c *fiber.Ctx, r Responder) error {
	status := r.Status()
	if status == 0 {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(r)
}
