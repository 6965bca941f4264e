package cqrs

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	ErrHandlerNotFound          = errors.New("cqrs: handler no registrado")
	ErrHandlerAlreadyRegistered = errors.New("cqrs: handler ya registrado")
)

// Responds lo cumplen los tipos que embeben Command[R], Query[R] o QueryList[R].
type Responds[R any] interface {
	response(R)
}

// Next continúa el pipeline hacia el siguiente behavior o el handler.
type Next func(ctx context.Context) (any, error)

// Behavior envuelve el despacho de cada comando (validación, logging, ...).
type Behavior func(ctx context.Context, req any, next Next) (any, error)

type requestHandler func(ctx context.Context, req any) (any, error)

type eventHandler func(ctx context.Context, event any) error

// Mediator despacha comandos a un único handler y eventos a todos sus suscriptores.
// Es seguro para uso concurrente.
type Mediator struct {
	mu        sync.RWMutex
	handlers  map[reflect.Type]requestHandler
	events    map[reflect.Type][]eventHandler
	behaviors []Behavior
}

// NewMediator crea el mediador con los behaviors indicados, que se ejecutan en
// orden de registro alrededor de cada Send.
func NewMediator(behaviors ...Behavior) *Mediator {
	return &Mediator{
		handlers:  make(map[reflect.Type]requestHandler),
		events:    make(map[reflect.Type][]eventHandler),
		behaviors: behaviors,
	}
}

// Use agrega behaviors al final del pipeline.
func (m *Mediator) Use(behaviors ...Behavior) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.behaviors = append(m.behaviors, behaviors...)
}

// Register asocia el handler al tipo de comando C. Un tipo solo admite un handler.
func Register[C Responds[R], R any](m *Mediator, h Handler[C, R]) error {
	key := reflect.TypeFor[C]()
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.handlers[key]; ok {
		return fmt.Errorf("%w: %s", ErrHandlerAlreadyRegistered, key)
	}
	m.handlers[key] = func(ctx context.Context, req any) (any, error) {
		return h.Handle(ctx, req.(C))
	}
	return nil
}

// Send ejecuta el pipeline de behaviors y el handler registrado para C.
func Send[R any, C Responds[R]](ctx context.Context, m *Mediator, cmd C) (R, error) {
	var zero R
	key := reflect.TypeFor[C]()

	m.mu.RLock()
	h, ok := m.handlers[key]
	behaviors := m.behaviors
	m.mu.RUnlock()
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrHandlerNotFound, key)
	}

	next := func(ctx context.Context) (any, error) { return h(ctx, cmd) }
	for i := len(behaviors) - 1; i >= 0; i-- {
		b, inner := behaviors[i], next
		next = func(ctx context.Context) (any, error) { return b(ctx, cmd, inner) }
	}

	out, err := next(ctx)
	if out == nil {
		return zero, err
	}
	res, ok := out.(R)
	if !ok {
		return zero, fmt.Errorf("cqrs: respuesta %T no es %s", out, reflect.TypeFor[R]())
	}
	return res, err
}

// Subscribe agrega un handler para las notificaciones de tipo N.
func Subscribe[N any](m *Mediator, h EventHandler[N]) {
	key := reflect.TypeFor[N]()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[key] = append(m.events[key], func(ctx context.Context, event any) error {
		return h.Handle(ctx, event.(N))
	})
}

// Publish entrega la notificación a todos sus handlers en orden de suscripción.
// Todos se ejecutan aunque alguno falle; los errores se devuelven unidos.
func Publish[N any](ctx context.Context, m *Mediator, event N) error {
	m.mu.RLock()
	handlers := m.events[reflect.TypeFor[N]()]
	m.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := h(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
