package pollsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CreateQuestion publishes a question. Requires an admin session.
func (s *Session) CreateQuestion(ctx context.Context, text string, choices ...string) (*Question, error) {
	var out CreateQuestionResponse
	err := s.doAuthRequest(ctx, http.MethodPost, "/create-question",
		CreateQuestionRequest{QuestionText: text, Choices: choices},
		http.StatusCreated, &out)
	if err != nil {
		return nil, err
	}
	return &out.Question, nil
}

// Vote casts the session user's vote for choiceID. A second vote on the same
// question fails with an *APIError for which IsConflict is true.
func (s *Session) Vote(ctx context.Context, choiceID int64) error {
	return s.doAuthRequest(ctx, http.MethodPost, "/vote",
		VoteRequest{ChoiceID: choiceID}, http.StatusCreated, nil)
}

// VoteOn is Vote with the server also checking that choiceID belongs to questionID.
func (s *Session) VoteOn(ctx context.Context, questionID, choiceID int64) error {
	return s.doAuthRequest(ctx, http.MethodPost, "/vote",
		VoteRequest{ChoiceID: choiceID, QuestionID: questionID}, http.StatusCreated, nil)
}

// VotedQuestions lists the questions the session user voted on.
func (s *Session) VotedQuestions(ctx context.Context) ([]VotedQuestion, error) {
	var out []VotedQuestion
	if err := s.doAuthRequest(ctx, http.MethodGet, "/voted-questions", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUsers lists accounts. Requires an admin session. opts may be nil.
func (s *Session) ListUsers(ctx context.Context, opts *ListUsersOptions) ([]User, error) {
	q := url.Values{}
	if opts != nil {
		if opts.UserType != "" {
			q.Set("user_type", opts.UserType)
		}
		if opts.Search != "" {
			q.Set("search", opts.Search)
		}
		setPage(q, opts.Limit, opts.Offset)
	}

	var out []User
	if err := s.doAuthRequest(ctx, http.MethodGet, "/admin/users"+encodeQuery(q), nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListVotes lists raw vote records. Requires an admin session. opts may be nil.
func (s *Session) ListVotes(ctx context.Context, opts *ListVotesOptions) ([]VoteRecord, error) {
	q := url.Values{}
	if opts != nil {
		if opts.QuestionID > 0 {
			q.Set("question", strconv.FormatInt(opts.QuestionID, 10))
		}
		if opts.UserID > 0 {
			q.Set("user", strconv.FormatInt(opts.UserID, 10))
		}
		setPage(q, opts.Limit, opts.Offset)
	}

	var out []VoteRecord
	if err := s.doAuthRequest(ctx, http.MethodGet, "/admin/votes"+encodeQuery(q), nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}
