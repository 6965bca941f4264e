package cqrs

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/shared-api/pkg/logger"
	"github.com/jhoicas/shared-api/pkg/validation"
)

type correlated interface {
	CorrelationID() string
}

// ValidationBehavior valida el comando con las etiquetas validate antes de
// llegar al handler. Un comando inválido devuelve *validation.Error.
func ValidationBehavior(v *validator.Validate) Behavior {
	if v == nil {
		v = validation.New()
	}
	return func(ctx context.Context, req any, next Next) (any, error) {
		if isStruct(req) {
			if err := v.StructCtx(ctx, req); err != nil {
				return nil, validation.Wrap(err)
			}
		}
		return next(ctx)
	}
}

// LoggingBehavior registra tipo de comando, correlation id, duración y error.
func LoggingBehavior(log *logger.Logger) Behavior {
	log = logger.OrNop(log)
	return func(ctx context.Context, req any, next Next) (any, error) {
		l := log
		if c, ok := req.(correlated); ok {
			l = log.WithCorrelationID(c.CorrelationID())
		}
		name := fmt.Sprintf("%T", req)
		start := time.Now()

		out, err := next(ctx)

		if err != nil {
			l.Warn().Err(err).Str("request", name).Dur("duration", time.Since(start)).Msg("cqrs: comando con error")
			return out, err
		}
		l.Debug().Str("request", name).Dur("duration", time.Since(start)).Msg("cqrs: comando procesado")
		return out, nil
	}
}

func isStruct(v any) bool {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Struct
}
