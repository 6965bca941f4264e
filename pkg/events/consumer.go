package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/shared-api/pkg/logger"
)

var ErrAlreadyStarted = errors.New("el consumidor ya está iniciado")

// Handler procesa un evento decodificado.
type Handler[T any] func(ctx context.Context, env Envelope[T]) error

// Consumer consume eventos hasta que se detiene.
type Consumer interface {
	Start(ctx context.Context) error
	Stop()
}

// Source entrega los mensajes crudos de un canal. El canal devuelto se cierra
// al cerrar la fuente.
type Source interface {
	Messages(ctx context.Context) (<-chan []byte, error)
	Close() error
}

// Subscriber subconjunto de *redis.Client usado por RedisSource.
type Subscriber interface {
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
}

// RedisSource suscripción a un canal de Redis pub/sub.
type RedisSource struct {
	client  Subscriber
	channel string
	ps      *redis.PubSub
}

// NewRedisSource construye la fuente; la suscripción se abre en Messages.
func NewRedisSource(client Subscriber, channel string) *RedisSource {
	return &RedisSource{client: client, channel: channel}
}

// Messages se suscribe, espera la confirmación y reenvía los payloads.
func (s *RedisSource) Messages(ctx context.Context) (<-chan []byte, error) {
	ps := s.client.Subscribe(ctx, s.channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("suscribir a %s: %w", s.channel, err)
	}
	s.ps = ps

	out := make(chan []byte)
	go func() {
		defer close(out)
		for msg := range ps.Channel() {
			select {
			case out <- []byte(msg.Payload):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Close cierra la suscripción.
func (s *RedisSource) Close() error {
	if s.ps == nil {
		return nil
	}
	return s.ps.Close()
}

// ConsumerOption ajusta un EventConsumer.
type ConsumerOption func(*consumerOptions)

type consumerOptions struct {
	log     *logger.Logger
	onError func(error)
}

// WithConsumerLogger registra la actividad del consumidor.
func WithConsumerLogger(log *logger.Logger) ConsumerOption {
	return func(o *consumerOptions) { o.log = log }
}

// OnError recibe los errores de decodificación y de handler.
func OnError(fn func(error)) ConsumerOption {
	return func(o *consumerOptions) { o.onError = fn }
}

var _ Consumer = (*EventConsumer[struct{}])(nil)

// EventConsumer decodifica los mensajes de una Source e invoca el handler, uno a la vez.
type EventConsumer[T any] struct {
	source  Source
	handler Handler[T]
	log     *logger.Logger
	onError func(error)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewConsumer construye un consumidor sobre cualquier Source.
func NewConsumer[T any](source Source, handler Handler[T], opts ...ConsumerOption) *EventConsumer[T] {
	var o consumerOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &EventConsumer[T]{
		source:  source,
		handler: handler,
		log:     logger.OrNop(o.log),
		onError: o.onError,
	}
}

// NewRedisConsumer consumidor sobre un canal de Redis.
func NewRedisConsumer[T any](client Subscriber, channel string, handler Handler[T], opts ...ConsumerOption) *EventConsumer[T] {
	return NewConsumer(NewRedisSource(client, channel), handler, opts...)
}

// Start abre la fuente y lanza el loop en background.
func (c *EventConsumer[T]) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	messages, err := c.source.Messages(ctx)
	if err != nil {
		cancel()
		return err
	}
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.loop(ctx, messages, c.done)
	c.log.Info().Msg("consumidor de eventos iniciado")
	return nil
}

// Stop detiene el loop y espera a que termine el evento en curso.
func (c *EventConsumer[T]) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel = nil
	c.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	if err := c.source.Close(); err != nil {
		c.log.Warn().Err(err).Msg("cerrar fuente de eventos")
	}
	<-done
	c.log.Info().Msg("consumidor de eventos detenido")
}

// Wait bloquea hasta que el loop termina, por Stop, por cancelación del
// contexto o porque la fuente se cerró.
func (c *EventConsumer[T]) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (c *EventConsumer[T]) loop(ctx context.Context, messages <-chan []byte, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-messages:
			if !ok {
				return
			}
			if err := c.dispatch(ctx, payload); err != nil {
				c.fail(err)
			}
		}
	}
}

func (c *EventConsumer[T]) dispatch(ctx context.Context, payload []byte) (err error) {
	var env Envelope[T]
	if err := json.Unmarshal(payload, &env); err != nil {
		return fmt.Errorf("decodificar evento: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic en handler de eventos: %v", r)
		}
	}()
	if err := c.handler(ctx, env); err != nil {
		return fmt.Errorf("procesar evento %s: %w", env.CorrelationID(), err)
	}
	return nil
}

func (c *EventConsumer[T]) fail(err error) {
	c.log.Error().Err(err).Msg("evento descartado")
	if c.onError != nil {
		c.onError(err)
	}
}
