package notes_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shared-api/internal/notes"
	"github.com/jhoicas/shared-api/pkg/collection"
	"github.com/jhoicas/shared-api/pkg/constants"
	"github.com/jhoicas/shared-api/pkg/cqrs"
	"github.com/jhoicas/shared-api/pkg/domain"
	"github.com/jhoicas/shared-api/pkg/result"
)

type failingProducer struct{ calls int }

func (p *failingProducer) Produce(context.Context, map[string]string, any) (bool, error) {
	p.calls++
	return false, errors.New("redis caído")
}

func (p *failingProducer) Close() error { return nil }

// duplicateStore rechaza toda inserción.
type duplicateStore struct{ *notes.MemoryStore }

func (duplicateStore) Add(context.Context, notes.Note) error {
	return fmt.Errorf("insert notes: %w", domain.ErrDuplicate)
}

func newNote(title string, createdAt time.Time) notes.Note {
	n := notes.Note{Entity: domain.NewEntity(), Title: title}
	n.CreatedAt = createdAt
	return n
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := notes.NewMemoryStore()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	a, b, c := newNote("a", base), newNote("b", base.Add(time.Hour)), newNote("c", base.Add(2*time.Hour))
	for _, n := range []notes.Note{b, c, a} {
		require.NoError(t, s.Add(ctx, n))
	}

	err := s.Add(ctx, a)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := s.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Title)

	_, err = s.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	page, err := s.Page(ctx, 1, 2, false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "c", page.Items[0].Title)
	assert.Equal(t, "b", page.Items[1].Title)

	require.NoError(t, s.Delete(ctx, c.ID))
	_, err = s.Get(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, c.ID), domain.ErrNotFound)

	page, err = s.Page(ctx, 1, 10, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalCount)
	assert.Equal(t, "a", page.Items[0].Title)

	_, err = s.Page(ctx, 0, 10, true)
	assert.ErrorIs(t, err, collection.ErrInvalidPage)
}

func TestRegister_SinStore(t *testing.T) {
	assert.Error(t, notes.Register(cqrs.NewMediator(), nil, nil, nil))
}

func TestCreateNote_ProducerCaidoNoFalla(t *testing.T) {
	ctx := context.Background()
	m := cqrs.NewMediator(cqrs.ValidationBehavior(nil))
	producer := &failingProducer{}
	require.NoError(t, notes.Register(m, notes.NewMemoryStore(), producer, nil))

	cmd := notes.CreateNote{Title: "Eventos", AuthorDocument: "529.982.247-25"}
	cmd.AddHeader(constants.HeaderCorrelationID, "c1")

	res, err := cqrs.Send[result.ResultOf[notes.Note]](ctx, m, cmd)
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	assert.Equal(t, "c1", res.CorrelationID())
	assert.Equal(t, 1, producer.calls)

	n := res.MustData()
	assert.Equal(t, "529.982.247-25", n.AuthorDocument)

	got, err := cqrs.Send[result.ResultOf[notes.Note]](ctx, m, notes.GetNote{ID: n.ID})
	require.NoError(t, err)
	assert.Equal(t, n.ID, got.MustData().ID)
}

func TestCreateNote_Duplicada(t *testing.T) {
	m := cqrs.NewMediator()
	require.NoError(t, notes.Register(m, duplicateStore{notes.NewMemoryStore()}, nil, nil))

	res, err := cqrs.Send[result.ResultOf[notes.Note]](context.Background(), m, notes.CreateNote{Title: "x"})
	require.NoError(t, err)
	assert.True(t, res.IsFailure())
	msg, err := res.ErrorMessage()
	require.NoError(t, err)
	assert.Equal(t, "A note with the same id already exists.", msg)
}

func TestListNotes_Defaults(t *testing.T) {
	ctx := context.Background()
	m := cqrs.NewMediator()
	store := notes.NewMemoryStore()
	require.NoError(t, notes.Register(m, store, nil, nil))
	for i := range 3 {
		require.NoError(t, store.Add(ctx, newNote(fmt.Sprint(i), time.Unix(int64(i), 0))))
	}

	page, err := cqrs.Send[collection.PagedList[notes.Note]](ctx, m, notes.ListNotes{})
	require.NoError(t, err)
	assert.Equal(t, collection.DefaultPage, page.CurrentPage)
	assert.Equal(t, collection.DefaultItemsPerPage, page.ItemsPerPage)
	assert.True(t, page.OrderedAsc)
	assert.Equal(t, "0", page.Items[0].Title)
}

func TestDeleteNote(t *testing.T) {
	ctx := context.Background()
	m := cqrs.NewMediator()
	store := notes.NewMemoryStore()
	require.NoError(t, notes.Register(m, store, nil, nil))
	n := newNote("borrar", time.Now())
	require.NoError(t, store.Add(ctx, n))

	_, err := cqrs.Send[result.Result](ctx, m, notes.DeleteNote{ID: n.ID})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	cmd := notes.DeleteNote{ID: n.ID}
	cmd.Identify(cqrs.Identity{Authenticated: true, UserName: "lector", Roles: []string{"lector"}})
	_, err = cqrs.Send[result.Result](ctx, m, cmd)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	cmd.Identify(cqrs.Identity{Authenticated: true, UserName: "admin", Roles: []string{notes.RoleAdmin}})
	res, err := cqrs.Send[result.Result](ctx, m, cmd)
	require.NoError(t, err)
	assert.True(t, res.IsSuccess())

	_, err = cqrs.Send[result.Result](ctx, m, cmd)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
