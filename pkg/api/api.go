// Package api arma el host HTTP compartido: aplicación Fiber con recover,
// correlation id, manejador de errores con sobres rest, health checks y Swagger.
package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/shared-api/pkg/config"
	"github.com/jhoicas/shared-api/pkg/constants"
	"github.com/jhoicas/shared-api/pkg/logger"
	"github.com/jhoicas/shared-api/pkg/rest"
)

// Config opciones del host HTTP.
type Config struct {
	AppName      string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// ConfigFrom toma nombre y entorno de la configuración de la app con los timeouts por defecto.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		AppName:      cfg.App.Name,
		Env:          cfg.App.Env,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func (c Config) development() bool { return c.Env == "development" }

// New crea la aplicación Fiber con recover, correlation id y ErrorHandler.
func New(cfg Config, log *logger.Logger) *fiber.App {
	log = logger.OrNop(log)
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorHandler: ErrorHandler(cfg.development(), log),
	})
	app.Use(Correlation())
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.development()}))
	return app
}

// ErrorHandler responde con un rest.Result. *fiber.Error conserva su código;
// los errores de validación y de dominio usan el suyo (422, 404, 409...).
// El resto es un 500 con el mensaje genérico, o el texto del error en desarrollo.
func ErrorHandler(development bool, log *logger.Logger) fiber.ErrorHandler {
	log = logger.OrNop(log)
	return func(c *fiber.Ctx, err error) error {
		id := CorrelationID(c)
		res := rest.FromError(err, rest.WithCorrelationID(id))

		var fe *fiber.Error
		if res.Status() >= fiber.StatusInternalServerError && !errors.As(err, &fe) {
			msg := constants.ErrorDefault
			if development {
				msg = err.Error()
			}
			res = rest.InternalServerError(msg, rest.WithCorrelationID(id))
		}

		ev := log.Warn()
		if res.Status() >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Err(err).
			Str("correlation_id", id).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("host", c.Hostname()).
			Int("status", res.Status()).
			Msg("error en la petición")

		return rest.Send(c, res)
	}
}
