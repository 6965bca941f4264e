// Package events publica y consume eventos entre servicios como sobres JSON
// con cabeceras propagadas, sobre Redis pub/sub.
package events

import (
	"maps"

	"github.com/jhoicas/shared-api/pkg/constants"
)

// Envelope evento publicado: cabeceras propagadas más el objeto.
type Envelope[T any] struct {
	Headers map[string]string `json:"headers"`
	Object  T                 `json:"object"`
}

// NewEnvelope copia headers para que el llamador pueda reutilizar su mapa.
func NewEnvelope[T any](headers map[string]string, obj T) Envelope[T] {
	h := make(map[string]string, len(headers))
	maps.Copy(h, headers)
	return Envelope[T]{Headers: h, Object: obj}
}

// CorrelationID devuelve la cabecera Correlation-Id del evento.
func (e Envelope[T]) CorrelationID() string {
	return e.Headers[constants.HeaderCorrelationID]
}
