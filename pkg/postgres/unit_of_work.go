package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/shared-api/pkg/logger"
)

// Beginner abre transacciones. Lo implementa *pgxpool.Pool.
type Beginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// UnitOfWork ejecuta callbacks dentro de una transacción PostgreSQL y hace
// Commit o Rollback según el resultado.
type UnitOfWork struct {
	db      Beginner
	log     *logger.Logger
	timeout atomic.Int64
	iso     pgx.TxIsoLevel
}

// UnitOfWorkOption ajusta una UnitOfWork al construirla.
type UnitOfWorkOption func(*UnitOfWork)

// ReadUncommitted abre las transacciones con aislamiento READ UNCOMMITTED
// (lecturas sin bloqueo). PostgreSQL lo trata como READ COMMITTED.
func ReadUncommitted() UnitOfWorkOption {
	return func(u *UnitOfWork) { u.iso = pgx.ReadUncommitted }
}

// WithIsoLevel fija el nivel de aislamiento de las transacciones.
func WithIsoLevel(level pgx.TxIsoLevel) UnitOfWorkOption {
	return func(u *UnitOfWork) { u.iso = level }
}

// WithLogger registra los fallos de rollback.
func WithLogger(log *logger.Logger) UnitOfWorkOption {
	return func(u *UnitOfWork) { u.log = log }
}

// NewUnitOfWork construye la unidad de trabajo sobre el pool.
func NewUnitOfWork(db Beginner, opts ...UnitOfWorkOption) *UnitOfWork {
	u := &UnitOfWork{db: db}
	for _, opt := range opts {
		opt(u)
	}
	u.log = logger.OrNop(u.log)
	return u
}

// SetTimeout fija el statement_timeout de las próximas transacciones. 0 usa el del servidor.
func (u *UnitOfWork) SetTimeout(d time.Duration) {
	u.timeout.Store(int64(d))
}

// Timeout devuelve el statement_timeout configurado.
func (u *UnitOfWork) Timeout() time.Duration {
	return time.Duration(u.timeout.Load())
}

// Run inicia una transacción, ejecuta fn con el Querier atado a la tx y hace Commit o Rollback.
func (u *UnitOfWork) Run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := u.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: u.iso})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// Tras un Commit exitoso el Rollback devuelve ErrTxClosed.
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			u.log.Warn().Err(rbErr).Msg("rollback")
		}
	}()

	if d := u.Timeout(); d > 0 {
		// SET no admite parámetros; el valor es un entero.
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", d.Milliseconds())); err != nil {
			return fmt.Errorf("set statement_timeout: %w", err)
		}
	}

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
