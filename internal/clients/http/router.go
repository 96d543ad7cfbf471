package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/mercia/internal/clients/service"
	"github.com/aussiebroadwan/mercia/pkg/httpx"
	"github.com/aussiebroadwan/mercia/pkg/slogx"
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/aussiebroadwan/mercia/api/clients" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	gatherer     prometheus.Gatherer

	ClientService *service.ClientService
}

// NewRouter builds the router and its middleware chain. HTTP metrics are
// registered on reg, and /metrics serves everything gathered from reg.
func NewRouter(
	buildVersion string,
	svc *service.ClientService,
	logger *slog.Logger,
	reg *prometheus.Registry,
) (*Router, error) {
	metrics, err := httpx.NewMetrics(reg, "clients")
	if err != nil {
		return nil, fmt.Errorf("register http metrics: %w", err)
	}

	r := &Router{
		Mux:           http.NewServeMux(),
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		logger:        logger,
		gatherer:      reg,
		ClientService: svc,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		handlers.CORS(
			handlers.AllowedOrigins([]string{"*"}),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Accept", "Content-Type", "Authorization", "Origin", "X-Requested-With", slogx.RequestIDHeader}),
			handlers.ExposedHeaders([]string{slogx.RequestIDHeader, "Retry-After"}),
			handlers.AllowCredentials(),
		),
		handlers.RecoveryHandler(
			handlers.RecoveryLogger(recoveryLogger{r.logger}),
			handlers.PrintRecoveryStack(false),
		),
		metrics.Middleware(),
	}

	return r, nil
}

func (r *Router) ApplyRoutes() {
	r.registerClients()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Mercia Client Registry API
//	@version		0.1.0
//	@description	Minimal client registry. Clients are stored either in a hosted PostgREST table or directly in PostgreSQL.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/mercia
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8000
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerClients() {
	h := &ClientsHandler{ClientService: r.ClientService}

	// POST /api/clients - moderate rate limit by IP
	r.Mux.Handle("POST /api/clients",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /api/clients - lenient rate limit, compressed since lists can be long
	r.Mux.Handle("GET /api/clients",
		httpx.Chain(handlers.CompressHandler(http.HandlerFunc(h.HandleList)),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	public := httpx.RateLimitByIP(httpx.PublicLimit)

	r.Mux.Handle("GET /livez", httpx.Chain(LivezHandler(r.startTime, r.buildVersion), public))
	r.Mux.Handle("GET /readyz", httpx.Chain(
		ReadyzHandler(r.startTime, r.buildVersion, r.ClientService.Store.Mode(), r.ClientService),
		public,
	))
	r.Mux.Handle("GET /metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}))
}

// recoveryLogger routes gorilla's recovery output through slog.
type recoveryLogger struct {
	l *slog.Logger
}

func (rl recoveryLogger) Println(v ...any) {
	rl.l.Error("panic recovered", "panic", fmt.Sprint(v...))
}
