package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/GregMSThompson/ledgerpro/internal/errs"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a JSON request body into v. Any decode failure is
// reported to the client as invalid input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return errs.NewValidationError("request body is required")
		case errors.As(err, &tooLarge):
			return errs.NewValidationError("request body is too large")
		default:
			return errs.NewValidationError("request body is not valid JSON")
		}
	}
	return nil
}
