package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/shared-api/pkg/config"
	"github.com/jhoicas/shared-api/pkg/logger"
)

// Producer publica eventos.
type Producer interface {
	// Produce devuelve true si al menos un consumidor recibió el evento.
	Produce(ctx context.Context, headers map[string]string, obj any) (bool, error)
	Close() error
}

// Publisher subconjunto de *redis.Client usado por RedisProducer.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
	Close() error
}

var _ Producer = (*RedisProducer)(nil)

// RedisProducer publica el sobre JSON en un canal de Redis.
type RedisProducer struct {
	client  Publisher
	channel string
	log     *logger.Logger
}

// NewRedisClient abre el cliente y verifica la conexión.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a redis: %w", err)
	}
	return client, nil
}

// NewRedisProducer construye el productor sobre channel.
func NewRedisProducer(client Publisher, channel string, log *logger.Logger) *RedisProducer {
	return &RedisProducer{client: client, channel: channel, log: logger.OrNop(log)}
}

// Produce serializa el sobre y lo publica.
func (p *RedisProducer) Produce(ctx context.Context, headers map[string]string, obj any) (bool, error) {
	env := NewEnvelope(headers, obj)
	payload, err := json.Marshal(env)
	if err != nil {
		return false, fmt.Errorf("serializar evento: %w", err)
	}

	receivers, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return false, fmt.Errorf("publicar evento: %w", err)
	}
	p.log.Debug().
		Str("channel", p.channel).
		Str("correlation_id", env.CorrelationID()).
		Int64("receivers", receivers).
		Msg("evento publicado")
	return receivers > 0, nil
}

// Close cierra el cliente.
func (p *RedisProducer) Close() error {
	return p.client.Close()
}
