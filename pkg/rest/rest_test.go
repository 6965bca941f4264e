package rest_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shared-api/pkg/collection"
	"github.com/jhoicas/shared-api/pkg/domain"
	"github.com/jhoicas/shared-api/pkg/rest"
	"github.com/jhoicas/shared-api/pkg/result"
)

type item struct {
	ID int `json:"id"`
}

type validationErr []string

func (v validationErr) Error() string      { return "validación" }
func (v validationErr) Messages() []string { return v }

func TestConstructores(t *testing.T) {
	tests := []struct {
		name       string
		got        rest.Result
		wantStatus int
		wantOK     bool
		wantErrors []string
	}{
		{"ok", rest.Ok(), 200, true, []string{}},
		{"fail", rest.Fail("x"), 400, false, []string{"x"}},
		{"internal", rest.InternalServerError("boom"), 500, false, []string{"boom"}},
		{"exception", rest.FromException(errors.New("db caída")), 500, false, []string{"db caída"}},
		{"validación vacía", rest.FromValidation(nil), 200, true, []string{}},
		{"validación", rest.FromValidation([]string{"a", "b"}), 422, false, []string{"a", "b"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantStatus, tc.got.Status())
			assert.Equal(t, tc.wantOK, tc.got.Success)
			assert.Equal(t, tc.wantErrors, tc.got.Errors)
		})
	}
}

func TestFromResult_SeparaErrores(t *testing.T) {
	r := rest.FromResult(result.Fail("uno;dos").WithCorrelationID("c1"))

	assert.Equal(t, 400, r.Status())
	assert.False(t, r.Success)
	assert.Equal(t, []string{"uno", "dos"}, r.Errors)
	assert.Equal(t, "c1", r.CorrelationID)

	ok := rest.FromResult(result.Ok(), rest.WithCorrelationID("c2"))
	assert.Equal(t, 200, ok.Status())
	assert.Equal(t, "c2", ok.CorrelationID)
}

func TestFromResultOf(t *testing.T) {
	r := rest.FromResultOf(result.OkOf(item{ID: 7}))
	assert.Equal(t, 200, r.Status())
	assert.Equal(t, 7, r.Data.ID)

	f := rest.FromResultOf(result.FailOf[item]("no existe"))
	assert.Equal(t, 400, f.Status())
	assert.Zero(t, f.Data)
}

func TestFromPagedList(t *testing.T) {
	list := collection.NewPagedList([]item{{1}, {2}}, 1, 2, 5, true)
	r := rest.FromPagedList(list, rest.WithCorrelationID("c"))

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"correlationId":"c","success":true,"errors":[],"page":[{"id":1},{"id":2}],"count":5,"pageCount":3,"pageSize":2,"currentPage":1}`, string(b))
}

func TestFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("producto: %w", domain.ErrNotFound), 404},
		{domain.ErrInvalidInput, 400},
		{domain.ErrDuplicate, 409},
		{domain.ErrConflict, 409},
		{domain.ErrUnauthorized, 401},
		{domain.ErrForbidden, 403},
		{fiber.NewError(fiber.StatusTeapot, "tea"), 418},
		{validationErr{"Name: required"}, 422},
		{errors.New("otro"), 500},
	}
	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, rest.FromError(tc.err).Status())
		})
	}
}

func TestSend(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		return rest.Send(c, rest.FromData([]item{{1}}, rest.WithCorrelationID("abc")))
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return rest.Send(c, rest.Fail("inválido"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/items", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"correlationId":"abc","success":true,"errors":[],"data":[{"id":1}]}`, string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"success":false,"errors":["inválido"]}`, string(body))
}
