// Package rest define el sobre JSON que devuelven los endpoints HTTP:
// éxito, errores, correlation id y, según el caso, datos o una página.
package rest

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shared-api/pkg/collection"
	"github.com/jhoicas/shared-api/pkg/result"
)

// ErrorSeparator separa los mensajes de un Result fallido al convertirlo en lista de errores.
const ErrorSeparator = ";"

// Result sobre base de respuesta. StatusCode no se serializa.
type Result struct {
	CorrelationID string   `json:"correlationId,omitempty"`
	Success       bool     `json:"success"`
	Errors        []string `json:"errors"`
	StatusCode    int      `json:"-"`
}

// Status implementa Responder.
func (r Result) Status() int { return r.StatusCode }

// ResultOf sobre con datos.
type ResultOf[T any] struct {
	Result
	Data T `json:"data"`
}

// PageResult sobre con una página de elementos.
type PageResult[T any] struct {
	Result
	Page        []T   `json:"page"`
	Count       int64 `json:"count"`
	PageCount   int   `json:"pageCount"`
	PageSize    int   `json:"pageSize"`
	CurrentPage int   `json:"currentPage"`
}

// Option modifica el sobre al construirlo.
type Option func(*Result)

// WithCorrelationID asigna el correlation id del sobre.
func WithCorrelationID(id string) Option {
	return func(r *Result) { r.CorrelationID = id }
}

func build(success bool, status int, errs []string, opts []Option) Result {
	if errs == nil {
		errs = []string{}
	}
	r := Result{Success: success, Errors: errs, StatusCode: status}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Ok 200 sin errores.
func Ok(opts ...Option) Result {
	return build(true, fiber.StatusOK, nil, opts)
}

// Fail 400 con un error.
func Fail(message string, opts ...Option) Result {
	return build(false, fiber.StatusBadRequest, []string{message}, opts)
}

// InternalServerError 500 con el mensaje indicado.
func InternalServerError(message string, opts ...Option) Result {
	return build(false, fiber.StatusInternalServerError, []string{message}, opts)
}

// FromException 500 con el texto del error.
func FromException(err error, opts ...Option) Result {
	return InternalServerError(err.Error(), opts...)
}

// FromValidation 200 si no hay mensajes, 422 con todos los mensajes en otro caso.
func FromValidation(messages []string, opts ...Option) Result {
	if len(messages) == 0 {
		return Ok(opts...)
	}
	return build(false, fiber.StatusUnprocessableEntity, messages, opts)
}

// FromData 200 con los datos.
func FromData[T any](data T, opts ...Option) ResultOf[T] {
	return ResultOf[T]{Result: Ok(opts...), Data: data}
}

// FromPagedList 200 con la página y sus metadatos.
func FromPagedList[T any](list collection.PagedList[T], opts ...Option) PageResult[T] {
	items := list.Items
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{
		Result:      Ok(opts...),
		Page:        items,
		Count:       list.TotalCount,
		PageCount:   list.TotalPages,
		PageSize:    list.ItemsPerPage,
		CurrentPage: list.CurrentPage,
	}
}

// FromResult 200 en éxito; 400 con el error separado por ";" en fallo.
// El correlation id del resultado se conserva salvo que una opción lo reemplace.
func FromResult(r result.Result, opts ...Option) Result {
	return fromOutcome(r.CorrelationID(), r.IsSuccess(), r.ErrorMessage, opts)
}

// FromResultOf como FromResult, con los datos en éxito.
func FromResultOf[T any](r result.ResultOf[T], opts ...Option) ResultOf[T] {
	out := ResultOf[T]{Result: fromOutcome(r.CorrelationID(), r.IsSuccess(), r.ErrorMessage, opts)}
	if r.IsSuccess() {
		out.Data = r.MustData()
	}
	return out
}

func fromOutcome(correlationID string, success bool, message func() (string, error), opts []Option) Result {
	opts = append([]Option{WithCorrelationID(correlationID)}, opts...)
	if success {
		return Ok(opts...)
	}
	msg, _ := message()
	return build(false, fiber.StatusBadRequest, strings.Split(msg, ErrorSeparator), opts)
}
