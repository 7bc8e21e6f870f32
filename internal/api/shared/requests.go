package shared

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxRequestBytes caps request bodies. The largest legitimate payload is a
// regeneration request with a nuance parameter bag, well under this.
const maxRequestBytes = 1 << 20

// DecodeJSON decodes the request body into v. Unknown fields and oversized
// bodies are rejected so malformed client requests fail fast.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
