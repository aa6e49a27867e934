package llm

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ollama/ollama/api"
)

// HTTPError is a non-200 answer from an OpenAI-compatible server.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// IsPermanent reports whether err is a client-side rejection that waiting
// will not fix, such as a wrong base path (404) or a bad key (401).
func IsPermanent(err error) bool {
	code := 0

	var httpErr *HTTPError
	var ollamaErr api.StatusError
	var ollamaErrPtr *api.StatusError
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.StatusCode
	case errors.As(err, &ollamaErr):
		code = ollamaErr.StatusCode
	case errors.As(err, &ollamaErrPtr):
		code = ollamaErrPtr.StatusCode
	}

	switch code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return code >= 400 && code < 500
}
