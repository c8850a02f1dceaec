package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/polls/internal/polls/service"
	"github.com/aussiebroadwan/polls/pkg/httpx"
	"github.com/aussiebroadwan/polls/pkg/pollsdk"
	"github.com/aussiebroadwan/polls/pkg/slogx"
)

const (
	msgVoteCast         = "Vote cast successfully"
	msgChoiceIDRequired = "choice_id is required"
	msgChoiceNotFound   = "Choice not found"
	msgAlreadyVoted     = "You have already voted on this question"
	msgChoiceMismatch   = "Choice does not belong to this question"
)

type VoteHandler struct {
	VoteService *service.VoteService
}

// ServeHTTP records the caller's vote.
//
//	@Summary		Cast vote
//	@Description	One vote per user and question. question_id is optional and, when given, must match the choice.
//	@Tags			Votes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		pollsdk.VoteRequest	true	"Vote"
//	@Success		201		{object}	pollsdk.MessageResponse
//	@Failure		400		{object}	pollsdk.ErrorResponse	"Missing choice_id or choice not in question"
//	@Failure		401		{object}	pollsdk.ErrorResponse	"Missing or invalid token"
//	@Failure		404		{object}	pollsdk.ErrorResponse	"Choice not found"
//	@Failure		409		{object}	pollsdk.ErrorResponse	"Already voted"
//	@Security		BearerAuth
//	@Router			/vote [post].
func (h *VoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, httpx.DetailNoCredentials)
		return
	}

	var req pollsdk.VoteRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, httpx.ErrEmptyBody) {
		writeError(w, http.StatusBadRequest, msgMalformedJSON)
		return
	}
	if req.ChoiceID <= 0 {
		writeError(w, http.StatusBadRequest, msgChoiceIDRequired)
		return
	}

	_, err := h.VoteService.CastVote(ctx, userID, req.ChoiceID, req.QuestionID)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusCreated, pollsdk.MessageResponse{Message: msgVoteCast})
	case errors.Is(err, service.ErrChoiceNotFound):
		writeError(w, http.StatusNotFound, msgChoiceNotFound)
	case errors.Is(err, service.ErrAlreadyVoted):
		writeError(w, http.StatusConflict, msgAlreadyVoted)
	case errors.Is(err, service.ErrChoiceMismatch):
		writeError(w, http.StatusBadRequest, msgChoiceMismatch)
	default:
		slogx.FromContext(ctx).Error("failed to cast vote", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

type VotedQuestionsHandler struct {
	VoteService *service.VoteService
}

// ServeHTTP lists the questions the caller voted on.
//
//	@Summary		My voted questions
//	@Tags			Votes
//	@Produce		json
//	@Success		200	{array}		pollsdk.VotedQuestion
//	@Failure		401	{object}	pollsdk.ErrorResponse	"Missing or invalid token"
//	@Security		BearerAuth
//	@Router			/voted-questions [get].
func (h *VotedQuestionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, httpx.DetailNoCredentials)
		return
	}

	voted, err := h.VoteService.ListVotedQuestions(ctx, userID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list voted questions", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	out := make([]pollsdk.VotedQuestion, len(voted))
	for i, v := range voted {
		out[i] = pollsdk.VotedQuestion{
			ID:             v.QuestionID,
			QuestionText:   v.QuestionText,
			SelectedChoice: v.ChoiceText,
		}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
