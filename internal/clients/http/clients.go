package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/mercia/internal/clients/domain"
	"github.com/aussiebroadwan/mercia/internal/clients/service"
	"github.com/aussiebroadwan/mercia/internal/clients/store"
	"github.com/aussiebroadwan/mercia/pkg/clientsdk"
	"github.com/aussiebroadwan/mercia/pkg/httpx"
	"github.com/aussiebroadwan/mercia/pkg/slogx"
)

const maxBodyBytes = 1 << 20

var errTrailingData = errors.New("unexpected data after JSON body")

// ClientsHandler serves the client registry endpoints.
type ClientsHandler struct {
	ClientService *service.ClientService
}

// HandleCreate handles POST /api/clients
//
//	@Summary		Create Client
//	@Description	Registers a client. The name is trimmed and must not be blank; address and phone are optional and trimmed when present.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clientsdk.CreateClientRequest	true	"Client to create"
//	@Success		200		{object}	clientsdk.Client				"The stored client"
//	@Failure		400		{object}	clientsdk.ErrorResponse			"Malformed JSON"
//	@Failure		422		{object}	clientsdk.ErrorResponse			"Blank name or wrongly typed field"
//	@Failure		500		{object}	clientsdk.ErrorResponse			"Storage backend failure"
//	@Router			/api/clients [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req clientsdk.CreateClientRequest
	if err := decodeBody(w, r, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			httpx.WriteDetail(w, http.StatusUnprocessableEntity, "invalid type for field "+typeErr.Field)
			return
		}
		httpx.WriteDetail(w, http.StatusBadRequest, "invalid JSON in request body")
		return
	}

	client, err := h.ClientService.CreateClient(ctx, domain.NewClient{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidName) {
			httpx.WriteDetail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.Error("create client failed", "error", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toClientResponse(client))
}

// HandleList handles GET /api/clients
//
//	@Summary		List Clients
//	@Description	Returns clients ordered by creation time, most recent first.
//	@Tags			Clients
//	@Produce		json
//	@Param			limit	query		int						false	"Maximum number of clients"	default(100)	minimum(0)
//	@Success		200		{array}		clientsdk.Client		"Clients, newest first"
//	@Failure		422		{object}	clientsdk.ErrorResponse	"Invalid limit"
//	@Failure		500		{object}	clientsdk.ErrorResponse	"Storage backend failure"
//	@Router			/api/clients [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		httpx.WriteDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if limit == 0 {
		httpx.WriteJSON(w, http.StatusOK, []clientsdk.Client{})
		return
	}

	clients, err := h.ClientService.ListClients(ctx, limit)
	if err != nil {
		log.Error("list clients failed", "error", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]clientsdk.Client, len(clients))
	for i, c := range clients {
		resp[i] = toClientResponse(c)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// decodeBody reads exactly one JSON value from the request body.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

// parseLimit maps an absent value to the default list size. An explicit 0
// is kept and yields an empty list.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return store.DefaultListLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, service.ErrInvalidLimit
	}
	return n, nil
}

func toClientResponse(c domain.Client) clientsdk.Client {
	resp := clientsdk.Client{
		ID:      c.ID,
		Name:    c.Name,
		Address: c.Address,
		Phone:   c.Phone,
	}
	if !c.CreatedAt.IsZero() {
		ts := c.CreatedAt.UTC().Format(time.RFC3339Nano)
		resp.CreatedAt = &ts
	}
	return resp
}
