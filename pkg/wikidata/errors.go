package wikidata

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a permanently missing entity: the identifier resolves
// to nothing on the knowledge base. Callers distinguish it from transient
// failures with errors.Is and skip the identifier instead of retrying.
var ErrNotFound = errors.New("entity not found")

// StatusError is returned when the SPARQL endpoint answers with a non-2xx
// status code after all retries.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sparql endpoint returned HTTP %d", e.StatusCode)
}

// transientStatus reports whether an HTTP status is worth retrying.
func transientStatus(statusCode int) bool {
	return statusCode == 429 || statusCode >= 500
}
