// Package result implementa el tipo de resultado discriminado (éxito/fallo) que
// devuelven los handlers CQRS y los casos de uso de los servicios.
//
// Un resultado es inmutable: el error existe solo si es un fallo y los datos solo
// si es un éxito. Leer datos de un fallo o el error de un éxito devuelve
// ErrInvalidOperation. Construir un resultado inconsistente (fallo sin error,
// éxito con datos nulos) es un error de programación y provoca panic.
package result

import (
	"errors"
	"fmt"
)

// ErrInvalidOperation se devuelve al leer un valor que no existe para el estado del resultado.
var ErrInvalidOperation = errors.New("result: operación inválida")

// Mensajes de invariantes, compartidos con los servicios que los comparan.
const (
	MsgErrorObjectIsNotProvidedForFailure  = "You have tried to create a failure result, but error object appeared to be null, please review the code, generating error object."
	MsgErrorMessageIsNotProvidedForFailure = "There must be error message for failure."
	MsgDataIsNotProvidedForSuccess         = "You have tried to create a success result, but data appeared to be null, please review the code, creating a success result."
	MsgNoErrorForSuccess                   = "There is no error message for success."
	MsgNoValueForFailure                   = "There is no value for failure."
)

// outcome estado común a todas las variantes.
type outcome struct {
	failure       bool
	correlationID string
}

// IsSuccess indica éxito.
func (o outcome) IsSuccess() bool { return !o.failure }

// IsFailure indica fallo.
func (o outcome) IsFailure() bool { return o.failure }

// CorrelationID devuelve el identificador de correlación (puede ser vacío).
func (o outcome) CorrelationID() string { return o.correlationID }

// Result resultado sin datos con mensaje de error.
type Result struct {
	outcome
	message string
}

// Ok crea un resultado exitoso.
func Ok() Result {
	return Result{}
}

// Fail crea un resultado fallido. El mensaje es obligatorio.
func Fail(message string) Result {
	if message == "" {
		panic(MsgErrorMessageIsNotProvidedForFailure)
	}
	return Result{outcome: outcome{failure: true}, message: message}
}

// FromError convierte un error en resultado: nil es éxito.
func FromError(err error) Result {
	if err == nil {
		return Ok()
	}
	return Fail(errorText(err))
}

// ErrorMessage devuelve el mensaje de error. En un éxito devuelve ErrInvalidOperation.
func (r Result) ErrorMessage() (string, error) {
	if r.IsSuccess() {
		return "", invalid(MsgNoErrorForSuccess)
	}
	return r.message, nil
}

// Err expone el fallo como error de Go (nil en un éxito).
func (r Result) Err() error {
	if r.IsSuccess() {
		return nil
	}
	return &FailureError{Message: r.message, CorrelationID: r.correlationID}
}

// WithCorrelationID devuelve una copia con el correlation id indicado.
func (r Result) WithCorrelationID(correlationID string) Result {
	r.correlationID = correlationID
	return r
}

// FailureError es la forma de error de un resultado fallido.
type FailureError struct {
	Message       string
	CorrelationID string
}

func (e *FailureError) Error() string { return e.Message }

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidOperation, msg)
}

func errorText(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fmt.Sprintf("%T", err)
}
