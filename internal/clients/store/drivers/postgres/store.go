package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/mercia/internal/clients/store"
	"github.com/aussiebroadwan/mercia/pkg/pgpool"
	"github.com/jackc/pgx/v5"
)

// Pool is what the driver needs from a connection pool. *pgpool.Pool
// implements it.
type Pool interface {
	Acquire(ctx context.Context) (*pgpool.Conn, error)
	Ping(ctx context.Context) error
	Close()
}

// Store is the direct-pool driver. Every operation checks out exactly one
// connection and returns it before the call ends, on success or failure.
type Store struct {
	pool Pool
}

var _ store.Store = (*Store)(nil)

func NewStore(pool Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Mode() string { return store.ModeDirect }

// Close drains the connection pool. It must only be called at shutdown.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: ping: %w", store.ErrStatement, err)
	}
	return nil
}

// withConn runs fn on a checked-out connection and always releases it.
func (s *Store) withConn(ctx context.Context, fn func(conn *pgpool.Conn) error) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return fn(conn)
}

// inTx runs fn inside a transaction on conn, committing on success and
// rolling back otherwise.
func inTx(ctx context.Context, conn *pgpool.Conn, fn func(tx pgx.Tx) error) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func statementErr(op string, err error) error {
	if errors.Is(err, pgpool.ErrPoolExhausted) || errors.Is(err, pgpool.ErrPoolClosed) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", store.ErrStatement, op, err)
}

// pgTime normalises a nullable timestamptz to UTC. NULL maps to the zero
// time, which the API renders as null.
func pgTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}
