package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/mercia/internal/clients/domain"
	"github.com/aussiebroadwan/mercia/internal/clients/store"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory store that records every call it receives.
type memStore struct {
	mu      sync.Mutex
	clients []domain.Client
	now     time.Time
	fail    error

	inserts []domain.NewClient
	limits  []int
}

func newMemStore() *memStore {
	return &memStore{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (m *memStore) EnsureTable(context.Context) (bool, error) { return true, nil }
func (m *memStore) Ping(context.Context) error                { return m.fail }
func (m *memStore) Close() error                              { return nil }
func (m *memStore) Mode() string                              { return "memory" }

func (m *memStore) InsertClient(_ context.Context, c domain.NewClient) (domain.Inserted, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.inserts = append(m.inserts, c)
	if m.fail != nil {
		return domain.Inserted{}, m.fail
	}
	m.now = m.now.Add(time.Second)
	ins := domain.Inserted{ID: int64(len(m.clients) + 1), CreatedAt: m.now}
	m.clients = append(m.clients, c.WithInserted(ins))
	return ins, nil
}

func (m *memStore) ListClients(_ context.Context, limit int) ([]domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.limits = append(m.limits, limit)
	if m.fail != nil {
		return nil, m.fail
	}
	var out []domain.Client
	for i := len(m.clients) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.clients[i])
	}
	return out, nil
}

func strPtr(s string) *string { return &s }

func TestCreateClient(t *testing.T) {
	t.Parallel()

	t.Run("trims fields and returns assigned values", func(t *testing.T) {
		st := newMemStore()
		svc := &ClientService{Store: st}

		c, err := svc.CreateClient(context.Background(), domain.NewClient{
			Name:    "  Alice  ",
			Address: strPtr(" 1 King St\n"),
			Phone:   strPtr("\t555-0001 "),
		})
		require.NoError(t, err)
		require.Equal(t, int64(1), c.ID)
		require.Equal(t, "Alice", c.Name)
		require.Equal(t, "1 King St", *c.Address)
		require.Equal(t, "555-0001", *c.Phone)
		require.False(t, c.CreatedAt.IsZero())
		require.Len(t, st.inserts, 1)
		require.Equal(t, "Alice", st.inserts[0].Name)
	})

	t.Run("absent optionals stay absent", func(t *testing.T) {
		st := newMemStore()
		c, err := (&ClientService{Store: st}).CreateClient(context.Background(), domain.NewClient{Name: "Bob"})
		require.NoError(t, err)
		require.Nil(t, c.Address)
		require.Nil(t, c.Phone)
	})

	t.Run("blank optionals become empty strings", func(t *testing.T) {
		st := newMemStore()
		c, err := (&ClientService{Store: st}).CreateClient(context.Background(), domain.NewClient{
			Name:    "Carol",
			Address: strPtr("   "),
		})
		require.NoError(t, err)
		require.NotNil(t, c.Address)
		require.Empty(t, *c.Address)
	})

	t.Run("rejects empty names before touching the store", func(t *testing.T) {
		for _, name := range []string{"", " ", "\t\n  "} {
			st := newMemStore()
			_, err := (&ClientService{Store: st}).CreateClient(context.Background(), domain.NewClient{Name: name})
			require.ErrorIs(t, err, ErrInvalidName)
			require.Empty(t, st.inserts)
		}
	})

	t.Run("propagates store errors", func(t *testing.T) {
		st := newMemStore()
		st.fail = errors.Join(store.ErrStatement, errors.New("disk full"))

		_, err := (&ClientService{Store: st}).CreateClient(context.Background(), domain.NewClient{Name: "Dave"})
		require.ErrorIs(t, err, store.ErrStatement)
	})

	t.Run("ids increase and timestamps never go backwards", func(t *testing.T) {
		svc := &ClientService{Store: newMemStore()}

		var prev domain.Client
		for _, name := range []string{"a", "b", "c", "d"} {
			c, err := svc.CreateClient(context.Background(), domain.NewClient{Name: name})
			require.NoError(t, err)
			require.Greater(t, c.ID, prev.ID)
			require.False(t, c.CreatedAt.Before(prev.CreatedAt))
			prev = c
		}
	})
}

func TestListClients(t *testing.T) {
	t.Parallel()

	t.Run("empty store yields empty slice", func(t *testing.T) {
		clients, err := (&ClientService{Store: newMemStore()}).ListClients(context.Background(), 10)
		require.NoError(t, err)
		require.NotNil(t, clients)
		require.Empty(t, clients)
	})

	t.Run("zero limit uses default", func(t *testing.T) {
		st := newMemStore()
		_, err := (&ClientService{Store: st}).ListClients(context.Background(), 0)
		require.NoError(t, err)
		require.Equal(t, []int{store.DefaultListLimit}, st.limits)
	})

	t.Run("negative limit is rejected", func(t *testing.T) {
		st := newMemStore()
		_, err := (&ClientService{Store: st}).ListClients(context.Background(), -1)
		require.ErrorIs(t, err, ErrInvalidLimit)
		require.Empty(t, st.limits)
	})

	t.Run("returns most recent first within limit", func(t *testing.T) {
		svc := &ClientService{Store: newMemStore()}
		for _, name := range []string{"one", "two", "three", "four", "five"} {
			_, err := svc.CreateClient(context.Background(), domain.NewClient{Name: name})
			require.NoError(t, err)
		}

		clients, err := svc.ListClients(context.Background(), 2)
		require.NoError(t, err)
		require.Len(t, clients, 2)
		require.Equal(t, "five", clients[0].Name)
		require.Equal(t, "four", clients[1].Name)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		st := newMemStore()
		st.fail = store.ErrBackend

		_, err := (&ClientService{Store: st}).ListClients(context.Background(), 5)
		require.ErrorIs(t, err, store.ErrBackend)
	})
}
