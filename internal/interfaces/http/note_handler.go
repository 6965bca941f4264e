package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/shared-api/internal/notes"
	"github.com/jhoicas/shared-api/pkg/api"
	"github.com/jhoicas/shared-api/pkg/collection"
	"github.com/jhoicas/shared-api/pkg/cqrs"
	"github.com/jhoicas/shared-api/pkg/rest"
	"github.com/jhoicas/shared-api/pkg/result"
)

// NoteHandler maneja las peticiones HTTP de notas despachando al mediador.
type NoteHandler struct {
	m         *cqrs.Mediator
	jwtSecret string
}

// NewNoteHandler construye el handler.
func NewNoteHandler(m *cqrs.Mediator, jwtSecret string) *NoteHandler {
	return &NoteHandler{m: m, jwtSecret: jwtSecret}
}

// Create godoc
// @Summary      Crear nota
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body  notes.CreateNote  true  "Datos de la nota"
// @Success      200   {object}  rest.ResultOf[notes.Note]
// @Failure      400   {object}  rest.Result
// @Failure      422   {object}  rest.Result
// @Router       /api/notes [post]
func (h *NoteHandler) Create(c *fiber.Ctx) error {
	var cmd notes.CreateNote
	if err := c.BodyParser(&cmd); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cuerpo inválido")
	}
	cmd.Request = api.RequestFromContext(c)
	cmd.Identify(api.IdentityFromContext(c, h.jwtSecret))

	res, err := cqrs.Send[result.ResultOf[notes.Note]](c.UserContext(), h.m, cmd)
	if err != nil {
		return err
	}
	return rest.Send(c, rest.FromResultOf(res))
}

// GetByID godoc
// @Summary      Obtener nota por ID
// @Tags         notes
// @Produce      json
// @Param        id   path  string  true  "ID de la nota"
// @Success      200  {object}  rest.ResultOf[notes.Note]
// @Failure      404  {object}  rest.Result
// @Router       /api/notes/{id} [get]
func (h *NoteHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "id inválido")
	}
	q := notes.GetNote{ID: id}
	q.Request = api.RequestFromContext(c)
	q.Identify(api.IdentityFromContext(c, h.jwtSecret))

	res, err := cqrs.Send[result.ResultOf[notes.Note]](c.UserContext(), h.m, q)
	if err != nil {
		return err
	}
	return rest.Send(c, rest.FromResultOf(res))
}

// List godoc
// @Summary      Listar notas
// @Tags         notes
// @Produce      json
// @Param        page          query  int   false  "Página (desde 1)"
// @Param        itemsPerPage  query  int   false  "Elementos por página"
// @Param        orderedAsc    query  bool  false  "Orden ascendente por fecha de creación"
// @Success      200  {object}  rest.PageResult[notes.Note]
// @Failure      400  {object}  rest.Result
// @Router       /api/notes [get]
func (h *NoteHandler) List(c *fiber.Ctx) error {
	var q notes.ListNotes
	q.Page = c.QueryInt("page")
	q.ItemsPerPage = c.QueryInt("itemsPerPage")
	if c.Query("orderedAsc") != "" {
		asc := c.QueryBool("orderedAsc")
		q.OrderedAsc = &asc
	}
	q.Request = api.RequestFromContext(c)
	q.Identify(api.IdentityFromContext(c, h.jwtSecret))

	page, err := cqrs.Send[collection.PagedList[notes.Note]](c.UserContext(), h.m, q)
	if err != nil {
		if isPagingError(err) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}
	return rest.Send(c, rest.FromPagedList(page, rest.WithCorrelationID(api.CorrelationID(c))))
}

// Delete godoc
// @Summary      Borrar nota
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la nota"
// @Success      200  {object}  rest.Result
// @Failure      401  {object}  rest.Result
// @Failure      403  {object}  rest.Result
// @Failure      404  {object}  rest.Result
// @Router       /api/notes/{id} [delete]
func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "id inválido")
	}
	cmd := notes.DeleteNote{ID: id}
	cmd.Request = api.RequestFromContext(c)
	cmd.Identify(api.IdentityFromContext(c, h.jwtSecret))

	res, err := cqrs.Send[result.Result](c.UserContext(), h.m, cmd)
	if err != nil {
		return err
	}
	return rest.Send(c, rest.FromResult(res))
}
