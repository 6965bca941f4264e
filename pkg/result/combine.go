package result

import "strings"

// DefaultSeparator separa los mensajes en Combine.
const DefaultSeparator = ", "

// Outcome es lo mínimo que se necesita para combinar resultados de distinto tipo.
type Outcome interface {
	IsFailure() bool
	ErrorMessage() (string, error)
}

// FirstFailureOrSuccess devuelve el primer fallo de la lista con el correlation
// id indicado; si no hay fallos devuelve Ok con ese correlation id.
func FirstFailureOrSuccess(correlationID string, results ...Outcome) Result {
	for _, r := range results {
		if r.IsFailure() {
			msg, _ := r.ErrorMessage()
			return Fail(msg).WithCorrelationID(correlationID)
		}
	}
	return Ok().WithCorrelationID(correlationID)
}

// Combine une los mensajes de todos los fallos usando DefaultSeparator.
func Combine(correlationID string, results ...Outcome) Result {
	return CombineWith(DefaultSeparator, correlationID, results...)
}

// CombineWith une los mensajes de todos los fallos con el separador indicado.
func CombineWith(separator, correlationID string, results ...Outcome) Result {
	var messages []string
	for _, r := range results {
		if !r.IsFailure() {
			continue
		}
		msg, _ := r.ErrorMessage()
		messages = append(messages, msg)
	}
	if len(messages) == 0 {
		return Ok().WithCorrelationID(correlationID)
	}
	return Fail(strings.Join(messages, separator)).WithCorrelationID(correlationID)
}

// CombineOf es Combine para resultados tipados homogéneos.
func CombineOf[T any](correlationID string, results ...ResultOf[T]) Result {
	return CombineOfWith(DefaultSeparator, correlationID, results...)
}

// CombineOfWith es CombineWith para resultados tipados homogéneos.
func CombineOfWith[T any](separator, correlationID string, results ...ResultOf[T]) Result {
	outcomes := make([]Outcome, len(results))
	for i, r := range results {
		outcomes[i] = r
	}
	return CombineWith(separator, correlationID, outcomes...)
}
