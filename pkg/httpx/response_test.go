package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/polls/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteJSON(rec, http.StatusCreated, map[string]string{"message": "ok"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"message":"ok"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		ChoiceID int64 `json:"choice_id"`
	}

	req := httptest.NewRequest(http.MethodPost, "/vote", strings.NewReader(`{"choice_id": 3}`))
	require.NoError(t, httpx.DecodeJSON(httptest.NewRecorder(), req, &dst))
	require.Equal(t, int64(3), dst.ChoiceID)

	req = httptest.NewRequest(http.MethodPost, "/vote", strings.NewReader(""))
	require.ErrorIs(t, httpx.DecodeJSON(httptest.NewRecorder(), req, &dst), httpx.ErrEmptyBody)

	req = httptest.NewRequest(http.MethodPost, "/vote", strings.NewReader("{"))
	require.Error(t, httpx.DecodeJSON(httptest.NewRecorder(), req, &dst))
}

func TestParsePage(t *testing.T) {
	for _, tc := range []struct {
		name    string
		query   string
		want    httpx.Page
		wantErr bool
	}{
		{"defaults", "", httpx.Page{Limit: 100}, false},
		{"explicit", "limit=10&offset=20", httpx.Page{Limit: 10, Offset: 20}, false},
		{"clamped", "limit=1000", httpx.Page{Limit: 100}, false},
		{"zero means max", "limit=0", httpx.Page{Limit: 100}, false},
		{"negative limit", "limit=-1", httpx.Page{}, true},
		{"bad offset", "offset=abc", httpx.Page{}, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			require.NoError(t, err)

			got, err := httpx.ParsePage(q, 100)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseOptionalPage(t *testing.T) {
	for _, tc := range []struct {
		name  string
		query string
		want  httpx.Page
	}{
		{"unbounded by default", "", httpx.Page{}},
		{"zero stays unbounded", "limit=0&offset=5", httpx.Page{Offset: 5}},
		{"explicit", "limit=10", httpx.Page{Limit: 10}},
		{"clamped", "limit=1000", httpx.Page{Limit: 100}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			require.NoError(t, err)

			got, err := httpx.ParseOptionalPage(q, 100)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	_, err := httpx.ParseOptionalPage(url.Values{"limit": {"x"}}, 100)
	require.Error(t, err)
}

func TestParseTime(t *testing.T) {
	q := url.Values{"since": {"2024-05-01T10:00:00+02:00"}, "bad": {"yesterday"}}

	got, err := httpx.ParseTime(q, "since")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), *got)

	got, err = httpx.ParseTime(q, "until")
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = httpx.ParseTime(q, "bad")
	require.Error(t, err)
}

func TestParseID(t *testing.T) {
	q := url.Values{"question": {"12"}, "user": {"0"}}

	id, err := httpx.ParseID(q, "question")
	require.NoError(t, err)
	require.Equal(t, int64(12), id)

	id, err = httpx.ParseID(q, "missing")
	require.NoError(t, err)
	require.Zero(t, id)

	_, err = httpx.ParseID(q, "user")
	require.Error(t, err)
}
