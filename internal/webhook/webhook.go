// Package webhook verifies and decodes git provider webhook deliveries.
package webhook

import (
	"errors"
	"io"
	"net/http"
)

// maxBodyBytes bounds the size of an accepted delivery.
const maxBodyBytes = 1 << 20

// readBody reads the request body, writing the error response itself when it
// fails.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}
