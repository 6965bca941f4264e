package result_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shared-api/pkg/result"
)

type producto struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type problema struct {
	Codigo string
}

func (p problema) String() string { return "problema " + p.Codigo }

func TestResult_OkConCorrelationID(t *testing.T) {
	id := uuid.NewString()
	r := result.Ok().WithCorrelationID(id)

	assert.True(t, r.IsSuccess())
	assert.False(t, r.IsFailure())
	assert.Equal(t, id, r.CorrelationID())
	assert.NoError(t, r.Err())

	_, err := r.ErrorMessage()
	assert.ErrorIs(t, err, result.ErrInvalidOperation)
}

func TestResult_Fail(t *testing.T) {
	r := result.Fail("Error 1.")

	assert.True(t, r.IsFailure())
	msg, err := r.ErrorMessage()
	require.NoError(t, err)
	assert.Equal(t, "Error 1.", msg)

	var fe *result.FailureError
	require.ErrorAs(t, r.Err(), &fe)
	assert.Equal(t, "Error 1.", fe.Message)
}

func TestResult_FailSinMensaje_Panic(t *testing.T) {
	assert.PanicsWithValue(t, result.MsgErrorMessageIsNotProvidedForFailure, func() {
		result.Fail("")
	})
	assert.PanicsWithValue(t, result.MsgErrorMessageIsNotProvidedForFailure, func() {
		result.FailOf[int]("")
	})
}

func TestResult_FromError(t *testing.T) {
	assert.True(t, result.FromError(nil).IsSuccess())

	r := result.FromError(errors.New("falló"))
	msg, _ := r.ErrorMessage()
	assert.Equal(t, "falló", msg)
}

func TestResultOf_DatosYAccesos(t *testing.T) {
	p := producto{ID: 1, Nombre: "Smarkets"}
	r := result.OkOf(p)

	data, err := r.Data()
	require.NoError(t, err)
	assert.Equal(t, p, data)
	assert.Equal(t, p, r.MustData())

	f := result.FailOf[producto]("no existe")
	_, err = f.Data()
	assert.ErrorIs(t, err, result.ErrInvalidOperation)
	assert.Panics(t, func() { f.MustData() })
}

func TestResultOf_DatosNulos_Panic(t *testing.T) {
	assert.PanicsWithValue(t, result.MsgDataIsNotProvidedForSuccess, func() {
		result.OkOf[*producto](nil)
	})
	assert.NotPanics(t, func() {
		result.OkOf[[]producto](nil)
	}, "un slice nulo es una colección vacía")
}

func TestResultOf_ToResultConservaCorrelationID(t *testing.T) {
	r := result.FailOf[int]("x").WithCorrelationID("abc").ToResult()

	assert.True(t, r.IsFailure())
	assert.Equal(t, "abc", r.CorrelationID())
}

func TestResultOf_FromValue(t *testing.T) {
	assert.True(t, result.FromValue(3, nil).IsSuccess())
	assert.True(t, result.FromValue(0, errors.New("e")).IsFailure())
}

func TestResultWith_ErrorTipado(t *testing.T) {
	ok := result.OkWith[producto, problema](producto{ID: 2})
	_, err := ok.ErrorValue()
	assert.ErrorIs(t, err, result.ErrInvalidOperation)

	f := result.FailWith[producto](problema{Codigo: "E01"}).WithCorrelationID("c1")
	e, err := f.ErrorValue()
	require.NoError(t, err)
	assert.Equal(t, "E01", e.Codigo)

	_, err = f.Data()
	assert.ErrorIs(t, err, result.ErrInvalidOperation)

	plain := f.ToResult()
	msg, _ := plain.ErrorMessage()
	assert.Equal(t, "problema E01", msg)
	assert.Equal(t, "c1", plain.CorrelationID())

	typed := f.ToResultOf()
	assert.True(t, typed.IsFailure())
	assert.Equal(t, "c1", typed.CorrelationID())
}

func TestResultWith_ErrorNulo_Panic(t *testing.T) {
	assert.PanicsWithValue(t, result.MsgErrorObjectIsNotProvidedForFailure, func() {
		result.FailWith[int, *problema](nil)
	})
}

func TestCombine(t *testing.T) {
	id := uuid.NewString()

	tests := []struct {
		name      string
		separator string
		results   []result.Outcome
		wantFail  bool
		wantError string
	}{
		{
			name:    "todos ok",
			results: []result.Outcome{result.Ok(), result.Ok()},
		},
		{
			name:      "dos fallos",
			results:   []result.Outcome{result.Fail("Error 1."), result.Fail("Error 2.")},
			wantFail:  true,
			wantError: "Error 1., Error 2.",
		},
		{
			name:      "mezcla con separador",
			separator: ";",
			results: []result.Outcome{
				result.FailOf[producto]("Error 1."),
				result.OkOf(producto{ID: 1}),
				result.FailOf[producto]("Error 2."),
			},
			wantFail:  true,
			wantError: "Error 1.;Error 2.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var r result.Result
			if tc.separator == "" {
				r = result.Combine(id, tc.results...)
			} else {
				r = result.CombineWith(tc.separator, id, tc.results...)
			}
			assert.Equal(t, id, r.CorrelationID())
			assert.Equal(t, tc.wantFail, r.IsFailure())
			if tc.wantFail {
				msg, _ := r.ErrorMessage()
				assert.Equal(t, tc.wantError, msg)
			}
		})
	}
}

func TestCombineOf(t *testing.T) {
	r := result.CombineOf("c", result.OkOf(1), result.FailOf[int]("uno"), result.FailOf[int]("dos"))
	msg, _ := r.ErrorMessage()
	assert.Equal(t, "uno, dos", msg)
}

func TestFirstFailureOrSuccess(t *testing.T) {
	id := uuid.NewString()

	r := result.FirstFailureOrSuccess(id, result.FailOf[int]("Error 1.").WithCorrelationID("otro"), result.OkOf(1))
	msg, _ := r.ErrorMessage()
	assert.Equal(t, "Error 1.", msg)
	assert.Equal(t, id, r.CorrelationID(), "el fallo se re-envuelve con el correlation id recibido")

	ok := result.FirstFailureOrSuccess(id, result.Ok(), result.Ok())
	assert.True(t, ok.IsSuccess())
	assert.Equal(t, id, ok.CorrelationID())
}

func TestResult_JSON(t *testing.T) {
	b, err := json.Marshal(result.OkOf(producto{ID: 1, Nombre: "a"}).WithCorrelationID("c"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"isSuccess":true,"isFailure":false,"correlationId":"c","data":{"id":1,"nombre":"a"}}`, string(b))

	b, err = json.Marshal(result.Fail("x"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"isSuccess":false,"isFailure":true,"error":"x"}`, string(b))

	b, err = json.Marshal(result.FailWith[int](problema{Codigo: "E"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"isSuccess":false,"isFailure":true,"error":{"Codigo":"E"}}`, string(b))
}
