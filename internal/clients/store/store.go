package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/mercia/internal/clients/domain"
)

var (
	// ErrConfiguration reports missing or unusable backend settings.
	ErrConfiguration = errors.New("store: configuration error")

	// ErrBackend reports a failed hosted-service call or an error payload
	// returned by it.
	ErrBackend = errors.New("store: backend error")

	// ErrStatement reports a failed SQL statement in direct mode.
	ErrStatement = errors.New("store: statement error")
)

const (
	// DefaultListLimit is used when callers do not ask for a specific limit.
	DefaultListLimit = 100

	// TableName is the table both backends read and write.
	TableName = "clients"
)

// Backend modes reported by Store.Mode.
const (
	ModeHosted = "hosted"
	ModeDirect = "direct"
)

// Store is the persistence contract for client records. There are two
// drivers: hosted (a REST table service) and postgres (a direct connection
// pool). Which one is used is decided once at startup.
type Store interface {
	// EnsureTable makes sure the clients table is usable. Drivers that can
	// create it do so. A false result with a nil error means the table is
	// missing and has to be provisioned out of band.
	EnsureTable(ctx context.Context) (bool, error)

	// InsertClient writes one client and returns the backend-assigned id
	// and creation time.
	InsertClient(ctx context.Context, c domain.NewClient) (domain.Inserted, error)

	// ListClients returns at most limit clients, most recent first.
	ListClients(ctx context.Context, limit int) ([]domain.Client, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources. For the postgres driver this
	// drains the connection pool.
	Close() error

	// Mode reports which backend this store talks to.
	Mode() string
}
