package http

import (
	"net/http"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
	"github.com/aussiebroadwan/polls/pkg/httpx"
	"github.com/aussiebroadwan/polls/pkg/pollsdk"
)

// Messages shared by several handlers.
const (
	msgInternal      = "Internal server error"
	msgNotFound      = "Not found."
	msgMalformedJSON = "Malformed JSON body."
)

func writeError(w http.ResponseWriter, code int, msg string) {
	httpx.WriteJSON(w, code, pollsdk.ErrorResponse{Error: msg})
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	httpx.WriteJSON(w, code, pollsdk.ErrorResponse{Detail: detail})
}

func toUser(u domain.User) pollsdk.User {
	return pollsdk.User{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		UserType:  string(u.Role),
	}
}

func toQuestion(q domain.Question) pollsdk.Question {
	out := pollsdk.Question{
		ID:           q.ID,
		QuestionText: q.Text,
		PubDate:      q.PubDate,
		Choices:      make([]pollsdk.Choice, len(q.Choices)),
	}
	for i, c := range q.Choices {
		out.Choices[i] = pollsdk.Choice{ID: c.ID, ChoiceText: c.Text, Votes: c.Votes}
	}
	return out
}
