package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shared-api/pkg/constants"
	"github.com/jhoicas/shared-api/pkg/events"
)

type orderPlaced struct {
	OrderID string `json:"orderId"`
	Total   int    `json:"total"`
}

// fakePublisher registra lo publicado y responde con receivers.
type fakePublisher struct {
	channel   string
	payload   []byte
	receivers int64
	err       error
	closed    bool
}

func (p *fakePublisher) Publish(_ context.Context, channel string, message any) *redis.IntCmd {
	p.channel = channel
	p.payload = message.([]byte)
	return redis.NewIntResult(p.receivers, p.err)
}

func (p *fakePublisher) Close() error { p.closed = true; return nil }

// chanSource fuente en memoria.
type chanSource struct {
	ch      chan []byte
	once    sync.Once
	openErr error
}

func newChanSource() *chanSource { return &chanSource{ch: make(chan []byte)} }

func (s *chanSource) Messages(context.Context) (<-chan []byte, error) {
	return s.ch, s.openErr
}

func (s *chanSource) Close() error {
	s.once.Do(func() { close(s.ch) })
	return nil
}

func TestEnvelope(t *testing.T) {
	headers := map[string]string{constants.HeaderCorrelationID: "abc"}
	env := events.NewEnvelope(headers, orderPlaced{OrderID: "o-1", Total: 10})
	headers["x"] = "y"

	assert.Equal(t, "abc", env.CorrelationID())
	assert.Len(t, env.Headers, 1, "las cabeceras se copian")

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"headers":{"Correlation-Id":"abc"},"object":{"orderId":"o-1","total":10}}`, string(raw))
}

func TestRedisProducer_Produce(t *testing.T) {
	pub := &fakePublisher{receivers: 2}
	p := events.NewRedisProducer(pub, "orders", nil)

	ok, err := p.Produce(context.Background(), map[string]string{constants.HeaderCorrelationID: "abc"}, orderPlaced{OrderID: "o-1"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "orders", pub.channel)

	var env events.Envelope[orderPlaced]
	require.NoError(t, json.Unmarshal(pub.payload, &env))
	assert.Equal(t, "o-1", env.Object.OrderID)
	assert.Equal(t, "abc", env.CorrelationID())

	pub.receivers = 0
	ok, err = p.Produce(context.Background(), nil, orderPlaced{})
	require.NoError(t, err)
	assert.False(t, ok, "sin consumidores no hay entrega")

	pub.err = errors.New("redis caído")
	_, err = p.Produce(context.Background(), nil, orderPlaced{})
	assert.ErrorContains(t, err, "redis caído")

	_, err = p.Produce(context.Background(), nil, make(chan int))
	assert.ErrorContains(t, err, "serializar")

	require.NoError(t, p.Close())
	assert.True(t, pub.closed)
}

func TestConsumer_ProcesaYReportaErrores(t *testing.T) {
	src := newChanSource()
	var (
		mu       sync.Mutex
		received []events.Envelope[orderPlaced]
		errs     []error
	)
	handler := func(_ context.Context, env events.Envelope[orderPlaced]) error {
		if env.Object.OrderID == "boom" {
			return errors.New("handler falló")
		}
		if env.Object.OrderID == "panic" {
			panic("x")
		}
		mu.Lock()
		received = append(received, env)
		mu.Unlock()
		return nil
	}
	c := events.NewConsumer(src, handler, events.OnError(func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}))

	require.NoError(t, c.Start(context.Background()))
	assert.ErrorIs(t, c.Start(context.Background()), events.ErrAlreadyStarted)

	src.ch <- []byte(`{"headers":{"Correlation-Id":"c1"},"object":{"orderId":"o-1","total":5}}`)
	src.ch <- []byte(`no es json`)
	src.ch <- []byte(`{"object":{"orderId":"boom"}}`)
	src.ch <- []byte(`{"object":{"orderId":"panic"}}`)
	src.ch <- []byte(`{"object":{"orderId":"o-2"}}`)

	c.Stop()
	c.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 2)
	assert.Equal(t, "c1", received[0].CorrelationID())
	assert.Equal(t, 5, received[0].Object.Total)
	assert.Equal(t, "o-2", received[1].Object.OrderID)
	require.Len(t, errs, 3)
	assert.ErrorContains(t, errs[0], "decodificar")
	assert.ErrorContains(t, errs[1], "handler falló")
	assert.ErrorContains(t, errs[2], "panic")
}

func TestConsumer_TerminaAlCerrarLaFuente(t *testing.T) {
	src := newChanSource()
	c := events.NewConsumer(src, func(context.Context, events.Envelope[orderPlaced]) error { return nil })
	require.NoError(t, c.Start(context.Background()))

	require.NoError(t, src.Close())

	done := make(chan struct{})
	go func() { c.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait no terminó")
	}
	c.Stop()
}

func TestConsumer_ErrorAlAbrir(t *testing.T) {
	src := newChanSource()
	src.openErr = errors.New("sin conexión")
	c := events.NewConsumer(src, func(context.Context, events.Envelope[orderPlaced]) error { return nil })

	assert.ErrorContains(t, c.Start(context.Background()), "sin conexión")
	c.Stop()
	c.Wait()
}
