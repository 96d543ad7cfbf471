package clientsdk

// CreateClientRequest is the body of POST /api/clients.
type CreateClientRequest struct {
	// Name is required and must not be blank.
	Name string `json:"name" example:"Acme Pty Ltd"`

	Address *string `json:"address,omitempty" example:"1 King St, Sydney"`
	Phone   *string `json:"phone,omitempty" example:"555-0100"`
}

// Client is a stored client record.
type Client struct {
	ID      int64   `json:"id" example:"42"`
	Name    string  `json:"name" example:"Acme Pty Ltd"`
	Address *string `json:"address" example:"1 King St, Sydney"`
	Phone   *string `json:"phone" example:"555-0100"`

	// CreatedAt is RFC 3339 with fractional seconds, or null when unset.
	CreatedAt *string `json:"created_at" example:"2025-06-01T12:00:00.123456Z"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail" example:"name must not be empty"`
}

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Uptime  string `json:"uptime,omitempty" example:"1h23m45s"`
	Version string `json:"version,omitempty" example:"v0.1.0"`

	// Checks is only populated by /readyz.
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database is "ok" or "error: ..." for the active storage backend.
	Database string `json:"database"`

	// Backend names the active storage backend, "hosted" or "direct".
	Backend string `json:"backend"`
}

// String returns a pointer to s, for optional request fields.
func String(s string) *string { return &s }
