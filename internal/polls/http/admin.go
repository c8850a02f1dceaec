package http

import (
	"net/http"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
	"github.com/aussiebroadwan/polls/internal/polls/service"
	"github.com/aussiebroadwan/polls/pkg/httpx"
	"github.com/aussiebroadwan/polls/pkg/pollsdk"
	"github.com/aussiebroadwan/polls/pkg/slogx"
)

// AdminHandler serves read-only listings for administrators.
type AdminHandler struct {
	UserService *service.UserService
	VoteService *service.VoteService
	MaxPageSize int
}

// HandleUsers lists accounts.
//
//	@Summary		List users
//	@Tags			Admin
//	@Produce		json
//	@Param			user_type	query		string	false	"user or admin"
//	@Param			search		query		string	false	"Substring of username, first or last name"
//	@Param			limit		query		int		false	"Page size"
//	@Param			offset		query		int		false	"Rows to skip"
//	@Success		200			{array}		pollsdk.User
//	@Failure		400			{object}	pollsdk.ErrorResponse	"Bad query parameter"
//	@Failure		401			{object}	pollsdk.ErrorResponse	"Missing or invalid token"
//	@Failure		403			{object}	pollsdk.ErrorResponse	"Not an admin"
//	@Security		BearerAuth
//	@Router			/admin/users [get].
func (h *AdminHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	page, err := httpx.ParsePage(q, h.MaxPageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	role := domain.Role(q.Get("user_type"))
	if role != "" && !role.Valid() {
		writeError(w, http.StatusBadRequest, "user_type must be user or admin")
		return
	}

	users, err := h.UserService.ListUsers(ctx, domain.UserFilter{
		Role:   role,
		Search: q.Get("search"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list users", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	out := make([]pollsdk.User, len(users))
	for i, u := range users {
		out[i] = toUser(u)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleVotes lists raw vote records.
//
//	@Summary		List votes
//	@Tags			Admin
//	@Produce		json
//	@Param			question	query		int	false	"Question ID"
//	@Param			user		query		int	false	"User ID"
//	@Param			limit		query		int	false	"Page size"
//	@Param			offset		query		int	false	"Rows to skip"
//	@Success		200			{array}		pollsdk.VoteRecord
//	@Failure		400			{object}	pollsdk.ErrorResponse	"Bad query parameter"
//	@Failure		401			{object}	pollsdk.ErrorResponse	"Missing or invalid token"
//	@Failure		403			{object}	pollsdk.ErrorResponse	"Not an admin"
//	@Security		BearerAuth
//	@Router			/admin/votes [get].
func (h *AdminHandler) HandleVotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	page, err := httpx.ParsePage(q, h.MaxPageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	questionID, err := httpx.ParseID(q, "question")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	userID, err := httpx.ParseID(q, "user")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	votes, err := h.VoteService.ListVotes(ctx, domain.VoteFilter{
		QuestionID: questionID,
		UserID:     userID,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list votes", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	out := make([]pollsdk.VoteRecord, len(votes))
	for i, v := range votes {
		out[i] = pollsdk.VoteRecord{
			ID:         v.ID,
			UserID:     v.UserID,
			QuestionID: v.QuestionID,
			ChoiceID:   v.ChoiceID,
			CreatedAt:  v.CreatedAt,
		}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
