package pollsdk

import "time"

// ============================================================================
// Accounts
// ============================================================================

// RegisterRequest is the body of POST /register. UserType defaults to "user".
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserType  string `json:"user_type,omitempty"`
}

// User is the public view of an account. The password hash never leaves the server.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserType  string `json:"user_type"`
}

// RegisterResponse is returned with 201 from POST /register.
type RegisterResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the profile fields alongside both tokens.
type LoginResponse struct {
	Message   string `json:"message"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserType  string `json:"user_type"`
	Refresh   string `json:"refresh"`
	Access    string `json:"access"`
}

// RefreshRequest is the body of POST /token/refresh.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse always carries a new access token. Refresh is only set when
// the server rotates refresh tokens.
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// ============================================================================
// Questions
// ============================================================================

// CreateQuestionRequest is the body of POST /create-question.
type CreateQuestionRequest struct {
	QuestionText string   `json:"question_text"`
	Choices      []string `json:"choices"`
}

type Choice struct {
	ID         int64  `json:"id"`
	ChoiceText string `json:"choice_text"`
	Votes      int64  `json:"votes"`
}

// Question is a question with its choices in insertion order.
type Question struct {
	ID           int64     `json:"id"`
	QuestionText string    `json:"question_text"`
	PubDate      time.Time `json:"pub_date"`
	Choices      []Choice  `json:"choices"`
}

// CreateQuestionResponse is returned with 201 from POST /create-question.
type CreateQuestionResponse struct {
	Message  string   `json:"message"`
	Question Question `json:"question"`
}

// ListQuestionsOptions are the optional filters of GET /questions.
type ListQuestionsOptions struct {
	Search string
	Since  *time.Time
	Until  *time.Time
	Limit  int
	Offset int
}

// ============================================================================
// Votes
// ============================================================================

// VoteRequest is the body of POST /vote. QuestionID is optional; when set the
// server checks that the choice belongs to it.
type VoteRequest struct {
	ChoiceID   int64 `json:"choice_id"`
	QuestionID int64 `json:"question_id,omitempty"`
}

// MessageResponse is a bare confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// VotedQuestion is one entry of GET /voted-questions.
type VotedQuestion struct {
	ID             int64  `json:"id"`
	QuestionText   string `json:"question_text"`
	SelectedChoice string `json:"selected_choice"`
}

// ============================================================================
// Administration
// ============================================================================

// ListUsersOptions are the optional filters of GET /admin/users.
type ListUsersOptions struct {
	UserType string
	Search   string
	Limit    int
	Offset   int
}

// ListVotesOptions are the optional filters of GET /admin/votes.
type ListVotesOptions struct {
	QuestionID int64
	UserID     int64
	Limit      int
	Offset     int
}

// VoteRecord is one raw vote as listed by GET /admin/votes.
type VoteRecord struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	QuestionID int64     `json:"question_id"`
	ChoiceID   int64     `json:"choice_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ============================================================================
// Errors and health
// ============================================================================

// ErrorResponse covers the three error body shapes the API produces:
// {"error": "..."}, {"detail": "...", "code": "..."} and {"errors": {field: msg}}.
type ErrorResponse struct {
	Error  string            `json:"error,omitempty"`
	Detail string            `json:"detail,omitempty"`
	Code   string            `json:"code,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// HealthResponse is returned by /livez and /readyz. Checks is only set by /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency ("ok" or an error string).
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
