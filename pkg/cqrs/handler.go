package cqrs

import "context"

// Handler procesa un comando C y devuelve su respuesta R.
type Handler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// HandlerFunc adapta una función a Handler.
type HandlerFunc[C, R any] func(ctx context.Context, cmd C) (R, error)

func (f HandlerFunc[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	return f(ctx, cmd)
}

// EventHandler procesa una notificación N.
type EventHandler[N any] interface {
	Handle(ctx context.Context, event N) error
}

// EventHandlerFunc adapta una función a EventHandler.
type EventHandlerFunc[N any] func(ctx context.Context, event N) error

func (f EventHandlerFunc[N]) Handle(ctx context.Context, event N) error {
	return f(ctx, event)
}
