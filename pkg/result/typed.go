package result

import (
	"fmt"
	"reflect"
)

// ResultOf resultado con datos de tipo T y mensaje de error.
type ResultOf[T any] struct {
	outcome
	message string
	data    T
}

// OkOf crea un éxito con datos. Los datos no pueden ser un puntero, interfaz,
// función o canal nulo.
func OkOf[T any](data T) ResultOf[T] {
	if isNil(data) {
		panic(MsgDataIsNotProvidedForSuccess)
	}
	return ResultOf[T]{data: data}
}

// FailOf crea un fallo tipado. El mensaje es obligatorio.
func FailOf[T any](message string) ResultOf[T] {
	if message == "" {
		panic(MsgErrorMessageIsNotProvidedForFailure)
	}
	return ResultOf[T]{outcome: outcome{failure: true}, message: message}
}

// FromValue combina el par (valor, error) habitual en Go.
func FromValue[T any](data T, err error) ResultOf[T] {
	if err != nil {
		return FailOf[T](errorText(err))
	}
	return OkOf(data)
}

// Data devuelve los datos. En un fallo devuelve ErrInvalidOperation.
func (r ResultOf[T]) Data() (T, error) {
	if r.IsFailure() {
		var zero T
		return zero, invalid(MsgNoValueForFailure)
	}
	return r.data, nil
}

// MustData devuelve los datos o hace panic si es un fallo.
func (r ResultOf[T]) MustData() T {
	data, err := r.Data()
	if err != nil {
		panic(err)
	}
	return data
}

// ErrorMessage devuelve el mensaje de error. En un éxito devuelve ErrInvalidOperation.
func (r ResultOf[T]) ErrorMessage() (string, error) {
	if r.IsSuccess() {
		return "", invalid(MsgNoErrorForSuccess)
	}
	return r.message, nil
}

// Err expone el fallo como error de Go (nil en un éxito).
func (r ResultOf[T]) Err() error {
	return r.ToResult().Err()
}

// WithCorrelationID devuelve una copia con el correlation id indicado.
func (r ResultOf[T]) WithCorrelationID(correlationID string) ResultOf[T] {
	r.correlationID = correlationID
	return r
}

// ToResult descarta los datos conservando estado, error y correlation id.
func (r ResultOf[T]) ToResult() Result {
	return Result{outcome: r.outcome, message: r.message}
}

// ResultWith resultado con datos T y error tipado E.
type ResultWith[T, E any] struct {
	outcome
	errValue E
	data     T
}

// OkWith crea un éxito con error tipado: OkWith[Order, *ValidationProblem](order).
func OkWith[T, E any](data T) ResultWith[T, E] {
	if isNil(data) {
		panic(MsgDataIsNotProvidedForSuccess)
	}
	return ResultWith[T, E]{data: data}
}

// FailWith crea un fallo con error tipado: FailWith[Order](problem). El error no puede ser nulo.
func FailWith[T, E any](errValue E) ResultWith[T, E] {
	if isNil(errValue) {
		panic(MsgErrorObjectIsNotProvidedForFailure)
	}
	return ResultWith[T, E]{outcome: outcome{failure: true}, errValue: errValue}
}

// Data devuelve los datos. En un fallo devuelve ErrInvalidOperation.
func (r ResultWith[T, E]) Data() (T, error) {
	if r.IsFailure() {
		var zero T
		return zero, invalid(MsgNoValueForFailure)
	}
	return r.data, nil
}

// ErrorValue devuelve el error tipado. En un éxito devuelve ErrInvalidOperation.
func (r ResultWith[T, E]) ErrorValue() (E, error) {
	if r.IsSuccess() {
		var zero E
		return zero, invalid(MsgNoErrorForSuccess)
	}
	return r.errValue, nil
}

// WithCorrelationID devuelve una copia con el correlation id indicado.
func (r ResultWith[T, E]) WithCorrelationID(correlationID string) ResultWith[T, E] {
	r.correlationID = correlationID
	return r
}

// ToResult convierte a Result usando la representación textual del error.
func (r ResultWith[T, E]) ToResult() Result {
	if r.IsSuccess() {
		return Ok().WithCorrelationID(r.correlationID)
	}
	return Fail(errorValueText(r.errValue)).WithCorrelationID(r.correlationID)
}

// ToResultOf convierte a ResultOf usando la representación textual del error.
func (r ResultWith[T, E]) ToResultOf() ResultOf[T] {
	if r.IsSuccess() {
		return ResultOf[T]{outcome: r.outcome, data: r.data}
	}
	return FailOf[T](errorValueText(r.errValue)).WithCorrelationID(r.correlationID)
}

func errorValueText(v any) string {
	if err, ok := v.(error); ok {
		return errorText(err)
	}
	if s := fmt.Sprint(v); s != "" {
		return s
	}
	return fmt.Sprintf("%T", v)
}

// isNil detecta valores nulos en parámetros genéricos. Slices y mapas nulos se
// aceptan como colecciones vacías.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
