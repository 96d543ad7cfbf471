package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/aussiebroadwan/mercia/internal/clients/domain"
	"github.com/aussiebroadwan/mercia/internal/clients/store"
	"github.com/aussiebroadwan/mercia/pkg/pgpool"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
)

// createTableSQL is the only schema this service manages.
const createTableSQL = `CREATE TABLE IF NOT EXISTS clients (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	address TEXT,
	phone TEXT,
	created_at TIMESTAMPTZ DEFAULT now()
)`

type clientRow struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	Address   *string    `db:"address"`
	Phone     *string    `db:"phone"`
	CreatedAt *time.Time `db:"created_at"` // nullable; rows written elsewhere may lack it
}

func (r clientRow) toDomain() domain.Client {
	return domain.Client{
		ID:        r.ID,
		Name:      r.Name,
		Address:   r.Address,
		Phone:     r.Phone,
		CreatedAt: pgTime(r.CreatedAt),
	}
}

// EnsureTable creates the clients table when it does not exist yet.
func (s *Store) EnsureTable(ctx context.Context) (bool, error) {
	err := s.withConn(ctx, func(conn *pgpool.Conn) error {
		return inTx(ctx, conn, func(tx pgx.Tx) error {
			_, err := tx.Exec(ctx, createTableSQL)
			return err
		})
	})
	if err != nil {
		return false, statementErr("create table", err)
	}
	return true, nil
}

func (s *Store) InsertClient(ctx context.Context, c domain.NewClient) (domain.Inserted, error) {
	query, args, err := squirrel.Insert(store.TableName).
		Columns("name", "address", "phone").
		Values(c.Name, c.Address, c.Phone).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return domain.Inserted{}, statementErr("build insert", err)
	}

	var (
		ins       domain.Inserted
		createdAt *time.Time
	)
	err = s.withConn(ctx, func(conn *pgpool.Conn) error {
		return inTx(ctx, conn, func(tx pgx.Tx) error {
			return tx.QueryRow(ctx, query, args...).Scan(&ins.ID, &createdAt)
		})
	})
	if err != nil {
		return domain.Inserted{}, statementErr("insert client", err)
	}

	ins.CreatedAt = pgTime(createdAt)
	return ins, nil
}

func (s *Store) ListClients(ctx context.Context, limit int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	query, args, err := squirrel.Select("id", "name", "address", "phone", "created_at").
		From(store.TableName).
		OrderBy("created_at DESC").
		Suffix("LIMIT ?", limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, statementErr("build select", err)
	}

	var rows []clientRow
	err = s.withConn(ctx, func(conn *pgpool.Conn) error {
		return pgxscan.Select(ctx, conn, &rows, query, args...)
	})
	if err != nil {
		return nil, statementErr("list clients", err)
	}

	clients := make([]domain.Client, len(rows))
	for i, row := range rows {
		clients[i] = row.toDomain()
	}
	return clients, nil
}
