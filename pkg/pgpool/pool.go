package pgpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultMinConns       = 1
	DefaultMaxConns       = 5
	DefaultAcquireTimeout = 5 * time.Second

	defaultPingTimeout    = 3 * time.Second
	defaultConnectTimeout = 5 * time.Second
)

var (
	// ErrPoolExhausted is returned when every connection stays checked out
	// for longer than the acquire timeout.
	ErrPoolExhausted = errors.New("pgpool: pool exhausted")

	// ErrPoolClosed is returned by Acquire after the pool has been drained.
	ErrPoolClosed = errors.New("pgpool: pool closed")

	// ErrInvalidConfig reports a connection string pgx cannot parse.
	ErrInvalidConfig = errors.New("pgpool: invalid config")
)

// Querier is the subset of a connection that drivers use to run statements.
// *pgxpool.Conn and pgxmock connections both satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// SourceConn is a raw connection handed out by a Source.
type SourceConn interface {
	Querier
	Release()
}

// Source hands out raw connections. The production source is a pgxpool.Pool.
type Source interface {
	Acquire(ctx context.Context) (SourceConn, error)
	Ping(ctx context.Context) error
	Close()
}

// Config holds pool sizing and the connection string.
type Config struct {
	DSN            string
	MinConns       int32
	MaxConns       int32
	AcquireTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxConns <= 0 {
		c.MaxConns = DefaultMaxConns
	}
	if c.MinConns <= 0 {
		c.MinConns = DefaultMinConns
	}
	if c.MinConns > c.MaxConns {
		c.MinConns = c.MaxConns
	}
	if c.AcquireTimeout <= 0 {
		c.AcquireTimeout = DefaultAcquireTimeout
	}
	return c
}

// Pool is a bounded set of PostgreSQL connections. At most MaxConns
// connections are checked out at any time; callers beyond that wait up to
// AcquireTimeout and then get ErrPoolExhausted.
//
// Every successful Acquire must be paired with Conn.Release, usually via
// defer.
type Pool struct {
	src     Source
	sem     *semaphore.Weighted
	max     int32
	timeout time.Duration

	closed     atomic.Bool
	checkedOut atomic.Int64
	acquires   atomic.Int64
	releases   atomic.Int64
	exhausted  atomic.Int64
}

// New parses the DSN, opens a pgxpool.Pool sized by cfg and verifies it with
// a ping. A DSN that cannot be parsed is reported as ErrInvalidConfig.
func New(ctx context.Context, cfg Config) (*Pool, error) {
	cfg = cfg.withDefaults()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.ConnConfig.ConnectTimeout = defaultConnectTimeout

	raw, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgpool: new pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()
	if err := raw.Ping(pingCtx); err != nil {
		raw.Close()
		return nil, fmt.Errorf("pgpool: ping: %w", err)
	}

	return NewWithSource(&pgxSource{pool: raw}, cfg), nil
}

// NewWithSource builds a Pool around an already opened Source.
func NewWithSource(src Source, cfg Config) *Pool {
	cfg = cfg.withDefaults()
	return &Pool{
		src:     src,
		sem:     semaphore.NewWeighted(int64(cfg.MaxConns)),
		max:     cfg.MaxConns,
		timeout: cfg.AcquireTimeout,
	}
}

// Acquire checks out a connection. It never blocks longer than the
// configured acquire timeout (or ctx, whichever ends first).
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	actx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.sem.Acquire(actx, 1); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.exhausted.Add(1)
		return nil, ErrPoolExhausted
	}

	raw, err := p.src.Acquire(actx)
	if err != nil {
		p.sem.Release(1)
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			p.exhausted.Add(1)
			return nil, ErrPoolExhausted
		}
		return nil, fmt.Errorf("pgpool: acquire: %w", err)
	}

	p.checkedOut.Add(1)
	p.acquires.Add(1)
	return &Conn{SourceConn: raw, pool: p}, nil
}

// Ping checks out a connection from the underlying source and pings it.
func (p *Pool) Ping(ctx context.Context) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}
	return p.src.Ping(ctx)
}

// Close drains the pool. It waits for checked-out connections to be
// released. Calling Close more than once is a no-op.
func (p *Pool) Close() {
	if p.closed.CompareAndSwap(false, true) {
		p.src.Close()
	}
}

// Stats is a snapshot of pool counters.
type Stats struct {
	CheckedOut int64
	Acquires   int64
	Releases   int64
	Exhausted  int64
	MaxConns   int32
}

// Stats returns the current checkout counters.
func (p *Pool) Stats() Stats {
	return Stats{
		CheckedOut: p.checkedOut.Load(),
		Acquires:   p.acquires.Load(),
		Releases:   p.releases.Load(),
		Exhausted:  p.exhausted.Load(),
		MaxConns:   p.max,
	}
}

func (p *Pool) release() {
	p.checkedOut.Add(-1)
	p.releases.Add(1)
	p.sem.Release(1)
}

// Conn is a checked-out connection. Release returns it to the pool; only the
// first call has any effect.
type Conn struct {
	SourceConn

	pool *Pool
	once sync.Once
}

// Release returns the connection to the pool.
func (c *Conn) Release() {
	c.once.Do(func() {
		c.SourceConn.Release()
		c.pool.release()
	})
}

type pgxSource struct {
	pool *pgxpool.Pool
}

func (s *pgxSource) Acquire(ctx context.Context) (SourceConn, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func (s *pgxSource) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }
func (s *pgxSource) Close()                         { s.pool.Close() }
