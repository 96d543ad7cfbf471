package clientsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned for any response with an unexpected status code.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("clients api: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Detail)
}

// parseErrorResponse builds an APIError from a non-2xx body. Bodies that are
// not in the {"detail": ...} shape are kept verbatim.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Detail != "" {
		apiErr.Detail = er.Detail
	} else {
		apiErr.Detail = strings.TrimSpace(string(body))
	}
	return apiErr
}
