// Package enums define las enumeraciones compartidas y el parseo genérico por nombre.
package enums

import (
	"strconv"
	"strings"
)

// Enum lo cumplen las enumeraciones de este paquete y las de los servicios
// que quieran usar Parse.
type Enum interface {
	~int
	Name() string
}

// Parse busca por nombre (sin distinguir mayúsculas) o por valor numérico entre values.
func Parse[T Enum](s string, values []T) (T, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		for _, v := range values {
			if int(v) == n {
				return v, true
			}
		}
		var zero T
		return zero, false
	}
	for _, v := range values {
		if strings.EqualFold(v.Name(), s) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// HTTPRequestMethod métodos HTTP como flags combinables.
type HTTPRequestMethod int

const (
	Get     HTTPRequestMethod = 1
	Post    HTTPRequestMethod = 2
	Put     HTTPRequestMethod = 4
	Delete  HTTPRequestMethod = 8
	Head    HTTPRequestMethod = 16
	Patch   HTTPRequestMethod = 32
	Options HTTPRequestMethod = 64
)

var httpRequestMethodNames = map[HTTPRequestMethod]string{
	Get:     "Get",
	Post:    "Post",
	Put:     "Put",
	Delete:  "Delete",
	Head:    "Head",
	Patch:   "Patch",
	Options: "Options",
}

// HTTPRequestMethods en orden de valor.
func HTTPRequestMethods() []HTTPRequestMethod {
	return []HTTPRequestMethod{Get, Post, Put, Delete, Head, Patch, Options}
}

// Name nombre del valor; "" si no está definido.
func (m HTTPRequestMethod) Name() string { return httpRequestMethodNames[m] }

// Description texto descriptivo del valor.
func (m HTTPRequestMethod) Description() string { return m.Name() }

func (m HTTPRequestMethod) String() string {
	if name := m.Name(); name != "" {
		return name
	}
	var parts []string
	for _, v := range HTTPRequestMethods() {
		if m.Has(v) {
			parts = append(parts, v.Name())
		}
	}
	if len(parts) == 0 {
		return strconv.Itoa(int(m))
	}
	return strings.Join(parts, ", ")
}

// Has indica si el flag está incluido.
func (m HTTPRequestMethod) Has(flag HTTPRequestMethod) bool { return m&flag == flag }

// Method devuelve el verbo HTTP en mayúsculas ("GET"); "" si no es un único método.
func (m HTTPRequestMethod) Method() string { return strings.ToUpper(m.Name()) }

// SagaAction acción que acompaña una operación distribuida.
type SagaAction int

const (
	Confirm SagaAction = 1
	Revert  SagaAction = 2
)

// SagaActions en orden de valor.
func SagaActions() []SagaAction { return []SagaAction{Confirm, Revert} }

func (a SagaAction) Name() string {
	switch a {
	case Confirm:
		return "Confirm"
	case Revert:
		return "Revert"
	default:
		return ""
	}
}

func (a SagaAction) Description() string { return a.Name() }

func (a SagaAction) String() string {
	if name := a.Name(); name != "" {
		return name
	}
	return strconv.Itoa(int(a))
}
