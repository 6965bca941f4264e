package collection_test

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shared-api/pkg/collection"
)

type foo struct {
	ID   int
	Name string
}

func fooList() []foo {
	return []foo{{1, "smarkets App"}, {2, "smarkets"}, {3, "Foo"}}
}

func byName(f foo) string { return f.Name }

func TestToPagedList_PrimeraPagina(t *testing.T) {
	page, err := collection.ToPagedList(fooList(), byName, 1, 1, true)
	require.NoError(t, err)

	assert.Equal(t, []foo{{3, "Foo"}}, page.Items)
	assert.Equal(t, int64(3), page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 1, page.ItemsPerPage)
	assert.True(t, page.OrderedAsc)
}

func TestToPagedList_Descendente(t *testing.T) {
	page, err := collection.ToPagedList(fooList(), func(f foo) int { return f.ID }, 1, 2, false)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, []int{page.Items[0].ID, page.Items[1].ID})
	assert.Equal(t, 2, page.TotalPages)
}

func TestToPagedList_PaginaFueraDeRango(t *testing.T) {
	page, err := collection.ToPagedList(fooList(), byName, 5, 10, true)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)
}

func TestToPagedList_ParametrosInvalidos(t *testing.T) {
	_, err := collection.ToPagedList(fooList(), byName, 0, 1, true)
	assert.ErrorIs(t, err, collection.ErrInvalidPage)
	assert.EqualError(t, err, "The page can not be less than 1.")

	_, err = collection.ToPagedList(fooList(), byName, 1, 0, true)
	assert.ErrorIs(t, err, collection.ErrInvalidItemsPerPage)
}

func TestToPagedList_NoModificaOrigen(t *testing.T) {
	src := fooList()
	_, err := collection.ToPagedList(src, byName, 1, 3, true)
	require.NoError(t, err)
	assert.Equal(t, fooList(), src)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count int64
		ipp   int
		want  int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{250, 100, 3},
	}
	for _, tc := range tests {
		t.Run(strconv.FormatInt(tc.count, 10), func(t *testing.T) {
			assert.Equal(t, tc.want, collection.TotalPages(tc.count, tc.ipp))
		})
	}
}

func TestPagedList_JSONYMap(t *testing.T) {
	list := collection.NewPagedList[foo](nil, 1, 100, 0, true)
	b, err := json.Marshal(list)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"totalCount":0,"totalPages":1,"currentPage":1,"itemsPerPage":100,"orderAsc":true}`, string(b))

	names := collection.Map(collection.NewPagedList(fooList(), 2, 3, 6, false), byName)
	assert.Equal(t, []string{"smarkets App", "smarkets", "Foo"}, names.Items)
	assert.Equal(t, 2, names.TotalPages)
	assert.Equal(t, 2, names.CurrentPage)
}
