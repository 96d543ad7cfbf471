package hosted

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/mercia/internal/clients/store"
	"github.com/go-resty/resty/v2"
)

const (
	defaultTimeout = 10 * time.Second
	restPath       = "/rest/v1"
)

// PostgREST error codes meaning the table is not there.
var missingTableCodes = map[string]struct{}{
	"42P01":    {}, // undefined_table
	"PGRST205": {}, // table not found in schema cache
}

// Config describes the hosted table service.
type Config struct {
	URL     string        // project URL, e.g. https://xyz.supabase.co
	Key     string        // service or anon key
	Table   string        // defaults to store.TableName
	Timeout time.Duration // per request, defaults to 10s
}

// Store talks to a PostgREST-compatible table API (Supabase and friends).
type Store struct {
	client *resty.Client
	table  string
}

var _ store.Store = (*Store)(nil)

// NewStore validates the configuration and builds the REST client. No
// request is made until the first operation.
func NewStore(cfg Config) (*Store, error) {
	if cfg.URL == "" || cfg.Key == "" {
		return nil, fmt.Errorf("%w: hosted url and key are required", store.ErrConfiguration)
	}
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hosted url: %w", store.ErrConfiguration, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: hosted url must be absolute http(s), got %q", store.ErrConfiguration, cfg.URL)
	}

	table := cfg.Table
	if table == "" {
		table = store.TableName
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.URL, "/")+restPath).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("apikey", cfg.Key).
		SetAuthToken(cfg.Key)

	return &Store{client: client, table: table}, nil
}

func (s *Store) Mode() string { return store.ModeHosted }

// Close is a no-op; the REST client holds no resources that need draining.
func (s *Store) Close() error { return nil }

// apiError is the error payload PostgREST returns.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *apiError) message() string {
	if e == nil || e.Message == "" {
		return "unknown"
	}
	return e.Message
}

func (s *Store) path() string { return "/" + s.table }

// probe reads a single id from the table. It returns the response so callers
// can tell a missing table apart from other failures.
func (s *Store) probe(ctx context.Context) (*resty.Response, *apiError, error) {
	var apiErr apiError
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"select": "id",
			"limit":  "1",
		}).
		SetError(&apiErr).
		Get(s.path())
	return resp, &apiErr, err
}

// EnsureTable checks the table is readable. A missing table yields
// (false, nil) so the service can still start; connectivity or auth
// failures are returned as ErrBackend.
func (s *Store) EnsureTable(ctx context.Context) (bool, error) {
	resp, apiErr, err := s.probe(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: check table: %w", store.ErrBackend, err)
	}
	if !resp.IsError() {
		return true, nil
	}
	if isMissingTable(resp, apiErr) {
		return false, nil
	}
	return false, responseErr("check table", resp, apiErr)
}

// Ping verifies the service is reachable and the table is readable.
func (s *Store) Ping(ctx context.Context) error {
	resp, apiErr, err := s.probe(ctx)
	if err != nil {
		return fmt.Errorf("%w: ping: %w", store.ErrBackend, err)
	}
	if resp.IsError() {
		return responseErr("ping", resp, apiErr)
	}
	return nil
}

func isMissingTable(resp *resty.Response, apiErr *apiError) bool {
	if _, ok := missingTableCodes[apiErr.Code]; ok {
		return true
	}
	return resp.StatusCode() == http.StatusNotFound
}

func responseErr(op string, resp *resty.Response, apiErr *apiError) error {
	msg := apiErr.message()
	if msg == "unknown" && resp != nil {
		msg = fmt.Sprintf("unknown (status %d)", resp.StatusCode())
	}
	return fmt.Errorf("%w: %s: %s", store.ErrBackend, op, msg)
}
