package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the page size when ?limit is omitted
	DefaultLimit = 100
	maxBodyBytes = 1 << 20
)

// DecodeJSONRequest decodes the body into v. On failure it writes a 400
// response and returns the error; callers just return.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, describeDecodeError(err))
		return err
	}
	return nil
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return "Request body is required"
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("Invalid JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return fmt.Sprintf("%s: cannot use JSON %s here", typeErr.Field, typeErr.Value)
		}
		return fmt.Sprintf("Request body must be a JSON object, got %s", typeErr.Value)
	case errors.As(err, &maxErr):
		return "Request body too large"
	default:
		return "Invalid request body: " + err.Error()
	}
}

// ParseID reads the {id} path value as a positive integer
func ParseID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be an integer, got %q", raw)
	}
	return id, nil
}

// Pagination holds offset/limit query parameters
type Pagination struct {
	Skip  int
	Limit int
}

// ParsePagination reads ?skip= and ?limit=, defaulting to 0 and 100.
// Non-integer or negative values are rejected.
func ParsePagination(r *http.Request) (Pagination, error) {
	p := Pagination{Skip: 0, Limit: DefaultLimit}
	q := r.URL.Query()
	if v := strings.TrimSpace(q.Get("skip")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, fmt.Errorf("skip must be a non-negative integer")
		}
		p.Skip = n
	}
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, fmt.Errorf("limit must be a non-negative integer")
		}
		p.Limit = n
	}
	return p, nil
}
