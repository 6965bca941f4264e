// Package cqrs contiene los tipos base de comandos, consultas y eventos y el
// mediador que los despacha a su handler.
package cqrs

import (
	"maps"
	"strings"

	"github.com/jhoicas/shared-api/pkg/constants"
)

// Request transporta las cabeceras que se propagan entre servicios. No se serializa.
type Request struct {
	headers map[string]string
}

// AddHeader agrega o reemplaza una cabecera. Los valores vacíos se ignoran.
func (r *Request) AddHeader(key, value string) *Request {
	if strings.TrimSpace(value) == "" {
		return r
	}
	if r.headers == nil {
		r.headers = make(map[string]string)
	}
	r.headers[key] = value
	return r
}

// Header devuelve el valor de la cabecera o "" si no existe.
func (r Request) Header(key string) string {
	return r.headers[key]
}

// Headers devuelve una copia de las cabeceras.
func (r Request) Headers() map[string]string {
	out := make(map[string]string, len(r.headers))
	maps.Copy(out, r.headers)
	return out
}

// CorrelationID devuelve la cabecera Correlation-Id.
func (r Request) CorrelationID() string {
	return r.Header(constants.HeaderCorrelationID)
}
