package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 1 << 20

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// ErrEmptyBody is returned by DecodeJSON for requests without a body.
var ErrEmptyBody = errors.New("httpx: empty request body")

// DecodeJSON reads a single JSON document from r into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}

// Page is a limit/offset window parsed from the query string.
type Page struct {
	Limit  int
	Offset int
}

// ParsePage reads "limit" and "offset". A missing or zero limit becomes
// maxLimit, and larger values are clamped to it.
func ParsePage(q url.Values, maxLimit int) (Page, error) {
	p, err := parsePage(q, maxLimit)
	if err != nil {
		return Page{}, err
	}
	if p.Limit == 0 {
		p.Limit = maxLimit
	}
	return p, nil
}

// ParseOptionalPage is ParsePage for listings that return every row unless
// asked otherwise: a missing or zero limit stays 0 (unbounded) and only an
// explicit limit is clamped to maxLimit.
func ParseOptionalPage(q url.Values, maxLimit int) (Page, error) {
	return parsePage(q, maxLimit)
}

func parsePage(q url.Values, maxLimit int) (Page, error) {
	var p Page

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Page{}, fmt.Errorf("limit must be a non-negative integer")
		}
		p.Limit = min(n, maxLimit)
	}

	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Page{}, fmt.Errorf("offset must be a non-negative integer")
		}
		p.Offset = n
	}

	return p, nil
}

// ParseTime reads an optional RFC3339 timestamp from the query string.
func ParseTime(q url.Values, key string) (*time.Time, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, fmt.Errorf("%s must be an RFC3339 timestamp", key)
	}
	t = t.UTC()
	return &t, nil
}

// ParseID reads an optional positive integer id from the query string.
func ParseID(q url.Values, key string) (int64, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return id, nil
}
