package api

import (
	"context"
	"net"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/shared-api/pkg/config"
	"github.com/jhoicas/shared-api/pkg/logger"
	"github.com/jhoicas/shared-api/pkg/rest"
)

const (
	StatusHealthy   = "Healthy"
	StatusUnhealthy = "Unhealthy"

	recursiveCheck = "checkDependences=true"
	defaultTimeout = 5 * time.Second
)

// CheckFunc verificación de readiness (ping a la base, a Redis...). nil es sano.
type CheckFunc func(ctx context.Context) error

// IntegrationStatus resultado de verificar una integración.
type IntegrationStatus struct {
	Name   string `json:"name"`
	Status bool   `json:"status"`
}

// CheckEntry resultado de un CheckFunc en /hc.
type CheckEntry struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// Report cuerpo de /hc y /liveness.
type Report struct {
	Status  string       `json:"status"`
	Entries []CheckEntry `json:"entries"`
}

type namedCheck struct {
	name string
	fn   CheckFunc
}

// Health expone los endpoints de salud del servicio.
type Health struct {
	cfg config.HealthCheckConfig
	env string
	log *logger.Logger

	mu     sync.RWMutex
	checks []namedCheck
	dialer net.Dialer
}

// NewHealth construye los health checks con las integraciones configuradas.
func NewHealth(cfg config.HealthCheckConfig, env string, log *logger.Logger) *Health {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Health{cfg: cfg, env: env, log: logger.OrNop(log)}
}

// AddCheck agrega una verificación de readiness a /hc.
func (h *Health) AddCheck(name string, fn CheckFunc) *Health {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks = append(h.checks, namedCheck{name: name, fn: fn})
	return h
}

// Register monta /hc, /liveness, /__info y /health/{Internal,External}Integrations.
func (h *Health) Register(r fiber.Router) {
	r.Get("/hc", h.readiness)
	r.Get("/liveness", h.liveness)
	r.Get("/__info", h.info)
	r.Get("/health/InternalIntegrations", h.internalIntegrations)
	r.Get("/health/ExternalIntegrations", h.externalIntegrations)
}

func (h *Health) readiness(c *fiber.Ctx) error {
	report := h.Run(c.UserContext())
	status := fiber.StatusOK
	if report.Status != StatusHealthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(report)
}

func (h *Health) liveness(c *fiber.Ctx) error {
	return c.JSON(Report{Status: StatusHealthy, Entries: []CheckEntry{}})
}

func (h *Health) info(c *fiber.Ctx) error {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = h.env
	}
	return c.JSON(fiber.Map{
		"hostname":    os.Getenv("HOSTNAME"),
		"commit_id":   os.Getenv("COMMIT_ID"),
		"pod_ip":      os.Getenv("POD_IP"),
		"environment": env,
	})
}

func (h *Health) internalIntegrations(c *fiber.Ctx) error {
	id := CorrelationID(c)
	if !c.QueryBool("checkDependences") {
		return rest.Send(c, rest.Ok(rest.WithCorrelationID(id)))
	}
	statuses := h.CheckInternal(c.UserContext())
	return rest.Send(c, rest.FromData(statuses, rest.WithCorrelationID(id)))
}

func (h *Health) externalIntegrations(c *fiber.Ctx) error {
	statuses := h.CheckExternal(c.UserContext())
	return rest.Send(c, rest.FromData(statuses, rest.WithCorrelationID(CorrelationID(c))))
}

// Run ejecuta en paralelo los CheckFunc registrados.
func (h *Health) Run(ctx context.Context) Report {
	h.mu.RLock()
	checks := append([]namedCheck(nil), h.checks...)
	h.mu.RUnlock()

	entries := make([]CheckEntry, len(checks))
	runAll(ctx, len(checks), func(ctx context.Context, i int) {
		ctx, cancel := context.WithTimeout(ctx, h.cfg.Timeout)
		defer cancel()
		start := time.Now()
		err := checks[i].fn(ctx)
		entries[i] = CheckEntry{
			Name:     checks[i].name,
			Status:   StatusHealthy,
			Duration: time.Since(start).String(),
		}
		if err != nil {
			entries[i].Status = StatusUnhealthy
			entries[i].Error = err.Error()
			h.log.Warn().Err(err).Str("check", checks[i].name).Msg("health check fallido")
		}
	})

	report := Report{Status: StatusHealthy, Entries: entries}
	for _, e := range entries {
		if e.Status != StatusHealthy {
			report.Status = StatusUnhealthy
			break
		}
	}
	return report
}

// CheckInternal hace GET a cada integración interna; sana si responde 2xx.
// Una URL que a su vez pide checkDependences=true se reporta caída para no
// recorrer dependencias en círculo.
func (h *Health) CheckInternal(ctx context.Context) []IntegrationStatus {
	return h.checkAll(ctx, h.cfg.InternalIntegrations, h.checkHTTP)
}

// CheckExternal verifica que cada integración externa acepte conexiones TCP.
func (h *Health) CheckExternal(ctx context.Context) []IntegrationStatus {
	return h.checkAll(ctx, h.cfg.ExternalIntegrations, h.checkTCP)
}

func (h *Health) checkAll(ctx context.Context, integrations []config.Integration, check func(context.Context, string) bool) []IntegrationStatus {
	out := make([]IntegrationStatus, len(integrations))
	runAll(ctx, len(integrations), func(ctx context.Context, i int) {
		it := integrations[i]
		out[i] = IntegrationStatus{Name: it.Name, Status: check(ctx, it.URL)}
	})
	return out
}

func (h *Health) checkHTTP(_ context.Context, target string) bool {
	if strings.Contains(target, recursiveCheck) {
		return false
	}
	agent := fiber.Get(target).Timeout(h.cfg.Timeout)
	if err := agent.Parse(); err != nil {
		return false
	}
	code, _, errs := agent.Bytes()
	if len(errs) > 0 {
		h.log.Debug().Err(errs[0]).Str("url", target).Msg("integración interna caída")
		return false
	}
	return code >= 200 && code < 300
}

func (h *Health) checkTCP(ctx context.Context, target string) bool {
	addr, err := dialAddress(target)
	if err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, h.cfg.Timeout)
	defer cancel()
	conn, err := h.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		h.log.Debug().Err(err).Str("addr", addr).Msg("integración externa caída")
		return false
	}
	_ = conn.Close()
	return true
}

// dialAddress acepta "host:puerto", "host" o una URL; sin puerto usa el del
// esquema y, si no hay esquema, 443.
func dialAddress(target string) (string, error) {
	if strings.Contains(target, "://") {
		u, err := url.Parse(target)
		if err != nil {
			return "", err
		}
		port := u.Port()
		if port == "" {
			port = "443"
			if u.Scheme == "http" {
				port = "80"
			}
		}
		return net.JoinHostPort(u.Hostname(), port), nil
	}
	if _, _, err := net.SplitHostPort(target); err == nil {
		return target, nil
	}
	return net.JoinHostPort(target, "443"), nil
}

// runAll ejecuta fn(i) en paralelo para i en [0, n) y espera a todas.
func runAll(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
}
