package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
	"github.com/aussiebroadwan/polls/internal/polls/service"
	"github.com/aussiebroadwan/polls/pkg/httpx"
	"github.com/aussiebroadwan/polls/pkg/pollsdk"
	"github.com/aussiebroadwan/polls/pkg/slogx"
)

const msgQuestionCreated = "Question created successfully"

// QuestionsHandler serves the public read side of questions.
type QuestionsHandler struct {
	QuestionService *service.QuestionService
	MaxPageSize     int
}

// HandleList lists questions with their choices.
//
//	@Summary		List questions
//	@Description	Every question in creation order with choices and tallies, unless limit is given. Open to anonymous callers.
//	@Tags			Questions
//	@Produce		json
//	@Param			search	query		string	false	"Case-insensitive substring of the question text"
//	@Param			since	query		string	false	"RFC3339 lower bound on pub_date"
//	@Param			until	query		string	false	"RFC3339 upper bound on pub_date"
//	@Param			limit	query		int		false	"Page size, capped by the server maximum; omitted means all"
//	@Param			offset	query		int		false	"Rows to skip"
//	@Success		200		{array}		pollsdk.Question
//	@Failure		400		{object}	pollsdk.ErrorResponse	"Bad query parameter"
//	@Router			/questions [get].
func (h *QuestionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	page, err := httpx.ParseOptionalPage(q, h.MaxPageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	since, err := httpx.ParseTime(q, "since")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	until, err := httpx.ParseTime(q, "until")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	questions, err := h.QuestionService.ListQuestions(ctx, domain.QuestionFilter{
		Search: q.Get("search"),
		Since:  since,
		Until:  until,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list questions", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	out := make([]pollsdk.Question, len(questions))
	for i, question := range questions {
		out[i] = toQuestion(question)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet returns one question.
//
//	@Summary		Get question
//	@Tags			Questions
//	@Produce		json
//	@Param			id	path		int	true	"Question ID"
//	@Success		200	{object}	pollsdk.Question
//	@Failure		404	{object}	pollsdk.ErrorResponse	"Not found."
//	@Router			/questions/{id} [get].
func (h *QuestionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeDetail(w, http.StatusNotFound, msgNotFound)
		return
	}

	question, err := h.QuestionService.GetQuestion(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			writeDetail(w, http.StatusNotFound, msgNotFound)
			return
		}
		slogx.FromContext(ctx).Error("failed to get question", "error", err, "question_id", id)
		writeDetail(w, http.StatusInternalServerError, msgInternal)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toQuestion(question))
}

type CreateQuestionHandler struct {
	QuestionService *service.QuestionService
}

// ServeHTTP creates a question with its choices.
//
//	@Summary		Create question
//	@Description	Admin only. The question and all of its choices are stored together or not at all.
//	@Tags			Questions
//	@Accept			json
//	@Produce		json
//	@Param			body	body		pollsdk.CreateQuestionRequest	true	"Question"
//	@Success		201		{object}	pollsdk.CreateQuestionResponse
//	@Failure		400		{object}	pollsdk.ErrorResponse	"Validation error"
//	@Failure		401		{object}	pollsdk.ErrorResponse	"Missing or invalid token"
//	@Failure		403		{object}	pollsdk.ErrorResponse	"Not an admin"
//	@Security		BearerAuth
//	@Router			/create-question [post].
func (h *CreateQuestionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req pollsdk.CreateQuestionRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgMalformedJSON)
		return
	}

	question, err := h.QuestionService.CreateQuestion(ctx, req.QuestionText, req.Choices)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Summary())
			return
		}
		slogx.FromContext(ctx).Error("failed to create question", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, pollsdk.CreateQuestionResponse{
		Message:  msgQuestionCreated,
		Question: toQuestion(question),
	})
}
