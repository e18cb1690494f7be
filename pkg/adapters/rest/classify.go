package rest

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/inkpad/inkpad/pkg/core"
)

// fallbackMessage is used when a failed response carries no usable body.
const fallbackMessage = "Request failed."

// classify turns a completed HTTP response into the raw success payload
// or a classified error. 401 is special-cased: the server's own text is
// replaced with the fixed session-expired message so backend detail never
// leaks into the UX.
func classify(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &core.APIError{
			Kind:    core.KindNetworkOrServer,
			Status:  resp.StatusCode,
			Message: fallbackMessage,
			Err:     err,
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	apiErr := &core.APIError{
		Kind:   kindFor(resp.StatusCode),
		Status: resp.StatusCode,
	}
	if resp.StatusCode == http.StatusUnauthorized {
		apiErr.Message = core.SessionExpiredMessage
	} else {
		apiErr.Message = messageFrom(body, resp.Header.Get("Content-Type"))
	}
	return nil, apiErr
}

func kindFor(status int) core.Kind {
	switch status {
	case http.StatusUnauthorized:
		return core.KindUnauthenticated
	case http.StatusNotFound:
		return core.KindNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return core.KindValidation
	default:
		return core.KindNetworkOrServer
	}
}

// messageFrom extracts a user-facing message from an error body: the
// "message" field when the body is JSON, the body text otherwise.
func messageFrom(body []byte, contentType string) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return fallbackMessage
	}

	if strings.Contains(contentType, "application/json") {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			return payload.Message
		}
		return fallbackMessage
	}
	return text
}

// transportError classifies a failure that produced no response at all.
func transportError(err error) *core.APIError {
	return &core.APIError{
		Kind:    core.KindNetworkOrServer,
		Message: err.Error(),
		Err:     err,
	}
}

// decodeError classifies a 2xx body the client could not decode.
func decodeError(err error) *core.APIError {
	return &core.APIError{
		Kind:    core.KindNetworkOrServer,
		Message: fallbackMessage,
		Err:     err,
	}
}
