package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	httpRouter "github.com/jhoicas/shared-api/internal/interfaces/http"
	"github.com/jhoicas/shared-api/internal/notes"
	"github.com/jhoicas/shared-api/pkg/api"
	"github.com/jhoicas/shared-api/pkg/config"
	"github.com/jhoicas/shared-api/pkg/cqrs"
	"github.com/jhoicas/shared-api/pkg/events"
	"github.com/jhoicas/shared-api/pkg/logger"
	"github.com/jhoicas/shared-api/pkg/postgres"
	"github.com/jhoicas/shared-api/pkg/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	health := api.NewHealth(cfg.HealthChecks, cfg.App.Env, log)

	// Persistencia: PostgreSQL si hay configuración, si no en memoria.
	var store notes.Store = notes.NewMemoryStore()
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		if err := notes.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema de notas")
		}
		uow := postgres.NewUnitOfWork(pool, postgres.WithLogger(log))
		uow.SetTimeout(30 * time.Second)
		pgStore, err := notes.NewPostgresStore(pool, uow)
		if err != nil {
			log.Fatal().Err(err).Msg("repositorio de notas")
		}
		store = pgStore
		health.AddCheck("postgres", pool.Ping)
	} else {
		log.Warn().Msg("DB no configurada, notas en memoria")
	}

	// Eventos: Redis pub/sub opcional.
	var producer events.Producer
	if cfg.Redis.Enabled() {
		client, err := events.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()

		channel := cfg.Redis.Channel
		if channel == "" {
			channel = notes.Channel
		}
		producer = events.NewRedisProducer(client, channel, log)
		health.AddCheck("redis", func(ctx context.Context) error { return client.Ping(ctx).Err() })

		consumer := startAudit(ctx, client, channel, log)
		defer consumer.Stop()
	}

	m := cqrs.NewMediator(
		cqrs.LoggingBehavior(log),
		cqrs.ValidationBehavior(validation.New()),
	)
	if err := notes.Register(m, store, producer, log); err != nil {
		log.Fatal().Err(err).Msg("registro de handlers")
	}

	app := api.New(api.ConfigFrom(cfg), log)

	// Swagger UI en local: http://localhost:<port>/docs
	if api.UseSwagger(app, cfg.Swagger) {
		log.Info().Str("path", cfg.Swagger.Path).Msg("swagger habilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Mediator:  m,
		Health:    health,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// startAudit consume los eventos de notas del propio canal y los registra.
func startAudit(ctx context.Context, client *redis.Client, channel string, log *logger.Logger) *events.EventConsumer[notes.Note] {
	consumer := events.NewRedisConsumer[notes.Note](client, channel,
		func(_ context.Context, env events.Envelope[notes.Note]) error {
			log.WithCorrelationID(env.CorrelationID()).Info().
				Str("note_id", env.Object.ID.String()).
				Str("title", env.Object.Title).
				Msg("nota creada")
			return nil
		},
		events.WithConsumerLogger(log),
	)
	if err := consumer.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("consumidor de eventos")
	}
	return consumer
}
