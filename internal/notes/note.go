// Package notes es el recurso de ejemplo del host: notas con autor opcional
// (CPF), creadas y consultadas vía mediador, persistidas en PostgreSQL o en
// memoria y anunciadas como eventos.
package notes

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/shared-api/pkg/collection"
	"github.com/jhoicas/shared-api/pkg/domain"
	"github.com/jhoicas/shared-api/pkg/postgres"
)

// Note nota persistida.
type Note struct {
	domain.Entity
	Title          string `json:"title" db:"title"`
	Body           string `json:"body" db:"body"`
	AuthorDocument string `json:"authorDocument,omitempty" db:"author_document"`
}

// Table descriptor de la tabla notes.
var Table = postgres.Table[Note]{
	Name:    "notes",
	Key:     "id",
	Columns: []string{"id", "title", "body", "author_document", "created_at", "updated_at", "deleted_at"},
	Values: func(n Note) []any {
		return []any{n.ID, n.Title, n.Body, n.AuthorDocument, n.CreatedAt, n.UpdatedAt, n.DeletedAt}
	},
}

// Store persistencia de notas.
type Store interface {
	Add(ctx context.Context, n Note) error
	Get(ctx context.Context, id uuid.UUID) (Note, error)
	Page(ctx context.Context, page, itemsPerPage int, orderedAsc bool) (collection.PagedList[Note], error)
	// Delete aplica borrado lógico.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostgresStore guarda las notas con el repositorio genérico. Las escrituras
// van dentro de una unidad de trabajo.
type PostgresStore struct {
	repo *postgres.Repository[Note]
	uow  *postgres.UnitOfWork
}

// NewPostgresStore construye el store sobre el pool.
func NewPostgresStore(q postgres.Querier, uow *postgres.UnitOfWork) (*PostgresStore, error) {
	repo, err := postgres.NewRepository(q, Table)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{repo: repo, uow: uow}, nil
}

func (s *PostgresStore) Add(ctx context.Context, n Note) error {
	return s.uow.Run(ctx, func(q postgres.Querier) error {
		return s.repo.With(q).Add(ctx, n)
	})
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (Note, error) {
	return live(s.repo.Get(ctx, id))
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.uow.Run(ctx, func(q postgres.Querier) error {
		repo := s.repo.With(q)
		n, err := live(repo.Get(ctx, id))
		if err != nil {
			return err
		}
		n.MarkDeleted()
		n.Touch()
		return repo.Update(ctx, n)
	})
}

func live(n Note, err error) (Note, error) {
	if err == nil && n.IsDeleted() {
		return Note{}, fmt.Errorf("get notes: %w", domain.ErrNotFound)
	}
	return n, err
}

func (s *PostgresStore) Page(ctx context.Context, page, itemsPerPage int, orderedAsc bool) (collection.PagedList[Note], error) {
	return s.repo.Page(ctx, postgres.PageQuery{
		Where:        "deleted_at IS NULL",
		OrderBy:      "created_at",
		Page:         page,
		ItemsPerPage: itemsPerPage,
		OrderedAsc:   orderedAsc,
	})
}

// MemoryStore store en memoria, para desarrollo sin base de datos y tests.
type MemoryStore struct {
	mu    sync.RWMutex
	notes []Note
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Add(_ context.Context, n Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.notes {
		if existing.SameIdentity(n) {
			return fmt.Errorf("insert notes: %w", domain.ErrDuplicate)
		}
	}
	s.notes = append(s.notes, n)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.notes {
		if n.ID == id && !n.IsDeleted() {
			return n, nil
		}
	}
	return Note{}, fmt.Errorf("get notes: %w", domain.ErrNotFound)
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notes {
		if s.notes[i].ID == id && !s.notes[i].IsDeleted() {
			s.notes[i].MarkDeleted()
			s.notes[i].Touch()
			return nil
		}
	}
	return fmt.Errorf("delete notes: %w", domain.ErrNotFound)
}

func (s *MemoryStore) Page(_ context.Context, page, itemsPerPage int, orderedAsc bool) (collection.PagedList[Note], error) {
	s.mu.RLock()
	live := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		if !n.IsDeleted() {
			live = append(live, n)
		}
	}
	s.mu.RUnlock()
	return collection.ToPagedList(live, func(n Note) int64 { return n.CreatedAt.UnixNano() }, page, itemsPerPage, orderedAsc)
}

var (
	_ Store = (*PostgresStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

var errNoStore = errors.New("notes: store requerido")

// Schema crea la tabla notes si no existe.
const Schema = `CREATE TABLE IF NOT EXISTS notes (
	id              uuid PRIMARY KEY,
	title           varchar(120) NOT NULL,
	body            text NOT NULL DEFAULT '',
	author_document varchar(14) NOT NULL DEFAULT '',
	created_at      timestamptz NOT NULL,
	updated_at      timestamptz,
	deleted_at      timestamptz
);
CREATE INDEX IF NOT EXISTS notes_created_at_idx ON notes (created_at) WHERE deleted_at IS NULL`

// EnsureSchema aplica Schema.
func EnsureSchema(ctx context.Context, q postgres.Querier) error {
	if _, err := postgres.ExecRaw(ctx, q, Schema, nil); err != nil {
		return fmt.Errorf("crear tabla notes: %w", err)
	}
	return nil
}

// AddRange guarda varias notas en una sola transacción.
func (s *PostgresStore) AddRange(ctx context.Context, items []Note) error {
	return s.uow.Run(ctx, func(q postgres.Querier) error {
		return s.repo.With(q).AddRange(ctx, items)
	})
}
