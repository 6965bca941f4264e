package domain

import (
	"time"

	"github.com/google/uuid"
)

// Model es el contrato mínimo de cualquier tipo persistible del dominio.
type Model interface {
	EntityID() uuid.UUID
}

// AggregateRoot marca las entidades raíz de un agregado. Los repositorios
// deberían operar solo sobre raíces.
type AggregateRoot interface {
	Model
	IsTransient() bool
}

// Entity base para las entidades con identidad. Se embebe en las entidades concretas:
//
//	type Customer struct {
//		domain.Entity
//		Name string
//	}
type Entity struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}

// NewEntity crea una entidad con un ID nuevo y CreatedAt en UTC.
func NewEntity() Entity {
	return Entity{ID: uuid.New(), CreatedAt: time.Now().UTC()}
}

// EntityID implementa Model.
func (e Entity) EntityID() uuid.UUID { return e.ID }

// IsTransient indica que la entidad aún no tiene identidad asignada.
func (e Entity) IsTransient() bool { return e.ID == uuid.Nil }

// IsDeleted indica borrado lógico.
func (e Entity) IsDeleted() bool { return e.DeletedAt != nil }

// SameIdentity compara por identidad. Dos entidades transitorias nunca son iguales.
func (e Entity) SameIdentity(other Model) bool {
	if other == nil {
		return false
	}
	if e.IsTransient() || other.EntityID() == uuid.Nil {
		return false
	}
	return e.ID == other.EntityID()
}

// Touch marca la entidad como modificada ahora.
func (e *Entity) Touch() {
	now := time.Now().UTC()
	e.UpdatedAt = &now
}

// MarkDeleted aplica borrado lógico.
func (e *Entity) MarkDeleted() {
	now := time.Now().UTC()
	e.DeletedAt = &now
}

// Equal compara dos objetos de valor. Los objetos de valor son structs comparables,
// por lo que la igualdad es estructural.
func Equal[T comparable](a, b T) bool {
	return a == b
}
