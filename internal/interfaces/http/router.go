package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shared-api/pkg/api"
	"github.com/jhoicas/shared-api/pkg/collection"
	"github.com/jhoicas/shared-api/pkg/cqrs"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Mediator  *cqrs.Mediator
	Health    *api.Health
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Health != nil {
		deps.Health.Register(app)
	}

	group := app.Group("/api")

	// Notes: la identidad sale del token si viene; sólo el borrado la exige.
	notesGroup := group.Group("/notes")
	noteHandler := NewNoteHandler(deps.Mediator, deps.JWTSecret)
	notesGroup.Post("/", noteHandler.Create)
	notesGroup.Get("/", noteHandler.List)
	notesGroup.Get("/:id", noteHandler.GetByID)
	notesGroup.Delete("/:id", noteHandler.Delete)
}

func isPagingError(err error) bool {
	return errors.Is(err, collection.ErrInvalidPage) || errors.Is(err, collection.ErrInvalidItemsPerPage)
}
