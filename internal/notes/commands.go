package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/shared-api/pkg/collection"
	"github.com/jhoicas/shared-api/pkg/cqrs"
	"github.com/jhoicas/shared-api/pkg/document"
	"github.com/jhoicas/shared-api/pkg/domain"
	"github.com/jhoicas/shared-api/pkg/events"
	"github.com/jhoicas/shared-api/pkg/logger"
	"github.com/jhoicas/shared-api/pkg/result"
	"github.com/jhoicas/shared-api/pkg/text"
)

// Channel canal de eventos de notas.
const Channel = "notes"

const msgDuplicate = "A note with the same id already exists."

// CreateNote crea una nota. El autor, si viene, debe ser un CPF válido.
type CreateNote struct {
	cqrs.Command[result.ResultOf[Note]]
	Title          string `json:"title" validate:"required,max=120"`
	Body           string `json:"body" validate:"max=4000"`
	AuthorDocument string `json:"authorDocument" validate:"cpf"`
}

// GetNote obtiene una nota por id.
type GetNote struct {
	cqrs.Query[result.ResultOf[Note]]
	ID uuid.UUID `json:"id"`
}

// RoleAdmin rol que puede borrar notas.
const RoleAdmin = "admin"

// DeleteNote borra (lógicamente) una nota. Requiere identidad con RoleAdmin.
type DeleteNote struct {
	cqrs.Command[result.Result]
	ID uuid.UUID `json:"id"`
}

// ListNotes lista notas paginadas por fecha de creación.
type ListNotes struct {
	cqrs.QueryList[collection.PagedList[Note]]
}

// NoteCreated se publica tras crear una nota.
type NoteCreated struct {
	cqrs.Notification
	Note Note
}

// Register registra los handlers de notas en el mediador. Con producer no nil,
// cada NoteCreated se publica además como evento entre servicios.
func Register(m *cqrs.Mediator, store Store, producer events.Producer, log *logger.Logger) error {
	if store == nil {
		return errNoStore
	}
	s := &service{m: m, store: store, producer: producer, log: logger.OrNop(log)}

	err := errors.Join(
		cqrs.Register[CreateNote, result.ResultOf[Note]](m, cqrs.HandlerFunc[CreateNote, result.ResultOf[Note]](s.create)),
		cqrs.Register[GetNote, result.ResultOf[Note]](m, cqrs.HandlerFunc[GetNote, result.ResultOf[Note]](s.get)),
		cqrs.Register[ListNotes, collection.PagedList[Note]](m, cqrs.HandlerFunc[ListNotes, collection.PagedList[Note]](s.list)),
		cqrs.Register[DeleteNote, result.Result](m, cqrs.HandlerFunc[DeleteNote, result.Result](s.delete)),
	)
	if err != nil {
		return err
	}
	if producer != nil {
		cqrs.Subscribe[NoteCreated](m, cqrs.EventHandlerFunc[NoteCreated](s.announce))
	}
	return nil
}

type service struct {
	m        *cqrs.Mediator
	store    Store
	producer events.Producer
	log      *logger.Logger
}

func (s *service) create(ctx context.Context, cmd CreateNote) (result.ResultOf[Note], error) {
	n := Note{
		Entity: domain.NewEntity(),
		Title:  strings.TrimSpace(text.StandardSpaces(cmd.Title)),
		Body:   strings.TrimSpace(cmd.Body),
	}
	if cmd.AuthorDocument != "" {
		n.AuthorDocument = document.FormatCPF(cmd.AuthorDocument)
	}

	if err := s.store.Add(ctx, n); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return result.FailOf[Note](msgDuplicate).WithCorrelationID(cmd.CorrelationID()), nil
		}
		return result.ResultOf[Note]{}, err
	}

	var ev NoteCreated
	ev.Request = cmd.Request
	ev.Note = n
	if err := cqrs.Publish(ctx, s.m, ev); err != nil {
		// La nota ya está guardada; el aviso se pierde pero la creación no falla.
		s.log.WithCorrelationID(cmd.CorrelationID()).Warn().Err(err).Str("note_id", n.ID.String()).Msg("publicar NoteCreated")
	}
	return result.OkOf(n).WithCorrelationID(cmd.CorrelationID()), nil
}

func (s *service) get(ctx context.Context, q GetNote) (result.ResultOf[Note], error) {
	n, err := s.store.Get(ctx, q.ID)
	if err != nil {
		return result.ResultOf[Note]{}, err
	}
	return result.OkOf(n).WithCorrelationID(q.CorrelationID()), nil
}

func (s *service) list(ctx context.Context, q ListNotes) (collection.PagedList[Note], error) {
	page, itemsPerPage, asc := q.Paging()
	return s.store.Page(ctx, page, itemsPerPage, asc)
}

func (s *service) delete(ctx context.Context, cmd DeleteNote) (result.Result, error) {
	if !cmd.Authenticated {
		return result.Result{}, fmt.Errorf("borrar nota: %w", domain.ErrUnauthorized)
	}
	if !cmd.HasRole(RoleAdmin) {
		return result.Result{}, fmt.Errorf("borrar nota: %w", domain.ErrForbidden)
	}
	if err := s.store.Delete(ctx, cmd.ID); err != nil {
		return result.Result{}, err
	}
	s.log.WithCorrelationID(cmd.CorrelationID()).Info().
		Str("note_id", cmd.ID.String()).
		Str("user", cmd.UserName).
		Msg("nota borrada")
	return result.Ok().WithCorrelationID(cmd.CorrelationID()), nil
}

func (s *service) announce(ctx context.Context, ev NoteCreated) error {
	_, err := s.producer.Produce(ctx, ev.Headers(), ev.Note)
	return err
}
