package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/mercia/internal/clients/domain"
	"github.com/aussiebroadwan/mercia/internal/clients/store"
	"github.com/aussiebroadwan/mercia/pkg/slogx"
)

var (
	ErrInvalidName  = errors.New("name must not be empty")
	ErrInvalidLimit = errors.New("limit must be a non-negative integer")
)

type ClientService struct {
	Store store.Store
}

// CreateClient trims the input and persists it. The name is validated before
// the store is touched.
func (s *ClientService) CreateClient(ctx context.Context, in domain.NewClient) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return domain.Client{}, ErrInvalidName
	}
	in.Address = trimOptional(in.Address)
	in.Phone = trimOptional(in.Phone)

	ins, err := s.Store.InsertClient(ctx, in)
	if err != nil {
		l.Error("failed to create client", "error", err, "backend", s.Store.Mode())
		return domain.Client{}, err
	}

	l.Info("client created", "client_id", ins.ID)
	return in.WithInserted(ins), nil
}

// ListClients returns up to limit clients, most recent first. A zero limit
// means store.DefaultListLimit.
func (s *ClientService) ListClients(ctx context.Context, limit int) ([]domain.Client, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	if limit == 0 {
		limit = store.DefaultListLimit
	}

	clients, err := s.Store.ListClients(ctx, limit)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list clients", "error", err, "backend", s.Store.Mode())
		return nil, err
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	return clients, nil
}

// Ping reports whether the backing store is reachable.
func (s *ClientService) Ping(ctx context.Context) error {
	return s.Store.Ping(ctx)
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
