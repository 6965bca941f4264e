package enums_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/shared-api/pkg/enums"
)

func TestHTTPRequestMethod_ValoresYDescripcion(t *testing.T) {
	tests := []struct {
		m    enums.HTTPRequestMethod
		code int
		desc string
	}{
		{enums.Get, 1, "Get"},
		{enums.Post, 2, "Post"},
		{enums.Put, 4, "Put"},
		{enums.Delete, 8, "Delete"},
		{enums.Head, 16, "Head"},
		{enums.Patch, 32, "Patch"},
		{enums.Options, 64, "Options"},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.code, int(tc.m))
			assert.Equal(t, tc.desc, tc.m.Description())
		})
	}
}

func TestHTTPRequestMethod_Flags(t *testing.T) {
	m := enums.Get | enums.Post
	assert.True(t, m.Has(enums.Get))
	assert.False(t, m.Has(enums.Delete))
	assert.Equal(t, "Get, Post", m.String())
	assert.Equal(t, "", m.Name())
	assert.Equal(t, "PATCH", enums.Patch.Method())
}

func TestParse(t *testing.T) {
	v, ok := enums.Parse("confirm", enums.SagaActions())
	assert.True(t, ok)
	assert.Equal(t, enums.Confirm, v)

	v, ok = enums.Parse("2", enums.SagaActions())
	assert.True(t, ok)
	assert.Equal(t, enums.Revert, v)

	_, ok = enums.Parse("Confirm Revert", enums.SagaActions())
	assert.False(t, ok)

	_, ok = enums.Parse("3", enums.SagaActions())
	assert.False(t, ok)

	m, ok := enums.Parse("OPTIONS", enums.HTTPRequestMethods())
	assert.True(t, ok)
	assert.Equal(t, enums.Options, m)
}

func TestSagaAction_String(t *testing.T) {
	assert.Equal(t, "Revert", enums.Revert.String())
	assert.Equal(t, "9", enums.SagaAction(9).String())
}
