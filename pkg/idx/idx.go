// Package idx generates lexicographically sortable identifiers for request
// correlation. Database rows use integer keys; ULIDs are only used where an
// opaque, time-ordered value is handy (request ids, key ids).
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrInvalid reports a malformed ULID string.
var ErrInvalid = errors.New("idx: invalid ulid")

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns a ULID string for the current UTC time. Values created within
// the same millisecond are strictly increasing.
func New() string {
	return NewAt(time.Now().UTC())
}

// NewAt returns a ULID string stamped with t.
func NewAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// Parse validates s and returns it in canonical form.
func Parse(s string) (string, error) {
	u, err := ulid.ParseStrict(strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalid
	}
	return u.String(), nil
}

// Time extracts the embedded timestamp, or the zero time for invalid input.
func Time(s string) time.Time {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}
