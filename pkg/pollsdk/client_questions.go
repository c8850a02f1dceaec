package pollsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ListQuestions returns questions with their choices. opts may be nil.
func (c *SDKClient) ListQuestions(ctx context.Context, opts *ListQuestionsOptions) ([]Question, error) {
	path := "/questions"
	if opts != nil {
		q := url.Values{}
		if opts.Search != "" {
			q.Set("search", opts.Search)
		}
		if opts.Since != nil {
			q.Set("since", opts.Since.UTC().Format(time.RFC3339))
		}
		if opts.Until != nil {
			q.Set("until", opts.Until.UTC().Format(time.RFC3339))
		}
		setPage(q, opts.Limit, opts.Offset)
		path += encodeQuery(q)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}

	var out []Question
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetQuestion fetches one question. A missing id is an *APIError with status 404.
func (c *SDKClient) GetQuestion(ctx context.Context, id int64) (*Question, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/questions/"+strconv.FormatInt(id, 10), nil, "")
	if err != nil {
		return nil, err
	}

	var out Question
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func setPage(q url.Values, limit, offset int) {
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
}

func encodeQuery(q url.Values) string {
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
