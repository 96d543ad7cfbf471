package hosted

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aussiebroadwan/mercia/internal/clients/domain"
	"github.com/aussiebroadwan/mercia/internal/clients/store"
)

type insertRow struct {
	Name    string  `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

type clientRow struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	CreatedAt *string `json:"created_at"`
}

func (r clientRow) toDomain() (domain.Client, error) {
	createdAt, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return domain.Client{}, err
	}
	return domain.Client{
		ID:        r.ID,
		Name:      r.Name,
		Address:   r.Address,
		Phone:     r.Phone,
		CreatedAt: createdAt,
	}, nil
}

// parseTimestamp reads a timestamptz as rendered by PostgREST. A null value
// maps to the zero time.
func parseTimestamp(s *string) (time.Time, error) {
	if s == nil || *s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad created_at %q: %w", store.ErrBackend, *s, err)
	}
	return t.UTC(), nil
}

// InsertClient posts a single row and asks the service to echo it back so
// the assigned id and timestamp can be returned.
func (s *Store) InsertClient(ctx context.Context, c domain.NewClient) (domain.Inserted, error) {
	var (
		rows   []clientRow
		apiErr apiError
	)
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=representation").
		SetBody([]insertRow{{Name: c.Name, Address: c.Address, Phone: c.Phone}}).
		SetResult(&rows).
		SetError(&apiErr).
		Post(s.path())
	if err != nil {
		return domain.Inserted{}, fmt.Errorf("%w: insert client: %w", store.ErrBackend, err)
	}
	if resp.IsError() || len(rows) == 0 {
		return domain.Inserted{}, fmt.Errorf("%w: insert client: %s", store.ErrBackend, apiErr.message())
	}

	createdAt, err := parseTimestamp(rows[0].CreatedAt)
	if err != nil {
		return domain.Inserted{}, err
	}
	return domain.Inserted{ID: rows[0].ID, CreatedAt: createdAt}, nil
}

func (s *Store) ListClients(ctx context.Context, limit int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	var (
		rows   []clientRow
		apiErr apiError
	)
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"select": "*",
			"order":  "created_at.desc",
			"limit":  strconv.Itoa(limit),
		}).
		SetResult(&rows).
		SetError(&apiErr).
		Get(s.path())
	if err != nil {
		return nil, fmt.Errorf("%w: list clients: %w", store.ErrBackend, err)
	}
	if resp.IsError() {
		return nil, responseErr("list clients", resp, &apiErr)
	}

	clients := make([]domain.Client, 0, len(rows))
	for _, row := range rows {
		c, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, nil
}
