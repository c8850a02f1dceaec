package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
	"github.com/aussiebroadwan/polls/internal/polls/store"
	"github.com/aussiebroadwan/polls/pkg/slogx"
)

// MaxTextLength bounds question and choice text.
const MaxTextLength = 255

const (
	MsgQuestionTextRequired = "question_text is required"
	MsgQuestionTextTooLong  = "question_text must be at most 255 characters"
	MsgChoicesRequired      = "At least one choice is required"
	MsgChoiceTextEmpty      = "Choice text cannot be empty."
	MsgChoiceTextTooLong    = "Choice text must be at most 255 characters"
)

type QuestionService struct {
	Store store.Store
}

// CreateQuestion stores a question and its choices in one transaction, so a
// failure part way leaves nothing behind. Texts are trimmed first.
func (s *QuestionService) CreateQuestion(ctx context.Context, text string, choices []string) (domain.Question, error) {
	l := slogx.FromContext(ctx)

	text = strings.TrimSpace(text)
	trimmed := make([]string, len(choices))
	for i, c := range choices {
		trimmed[i] = strings.TrimSpace(c)
	}

	verr := &ValidationError{}
	switch {
	case text == "":
		verr.add("question_text", MsgQuestionTextRequired)
	case utf8.RuneCountInString(text) > MaxTextLength:
		verr.add("question_text", MsgQuestionTextTooLong)
	}
	if len(trimmed) == 0 {
		verr.add("choices", MsgChoicesRequired)
	}
	for _, c := range trimmed {
		switch {
		case c == "":
			verr.add("choices", MsgChoiceTextEmpty)
		case utf8.RuneCountInString(c) > MaxTextLength:
			verr.add("choices", MsgChoiceTextTooLong)
		}
	}
	if err := verr.orNil(); err != nil {
		return domain.Question{}, err
	}

	var q domain.Question
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		q, err = tx.Questions().CreateQuestion(ctx, domain.Question{
			Text:    text,
			PubDate: time.Now().UTC(),
		})
		if err != nil {
			return err
		}

		q.Choices = make([]domain.Choice, 0, len(trimmed))
		for _, c := range trimmed {
			choice, err := tx.Questions().CreateChoice(ctx, domain.Choice{QuestionID: q.ID, Text: c})
			if err != nil {
				return err
			}
			q.Choices = append(q.Choices, choice)
		}
		return nil
	})
	if err != nil {
		l.Error("failed to create question", slog.Any("error", err))
		return domain.Question{}, err
	}

	l.Info("question created", slog.Int64("question_id", q.ID), slog.Int("choices", len(q.Choices)))
	return q, nil
}

// ListQuestions returns the matching aggregates ordered by id.
func (s *QuestionService) ListQuestions(ctx context.Context, f domain.QuestionFilter) ([]domain.Question, error) {
	f.Search = strings.TrimSpace(f.Search)

	questions, err := s.Store.Questions().ListQuestions(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return []domain.Question{}, nil
	}

	ids := make([]int64, len(questions))
	index := make(map[int64]int, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
		index[q.ID] = i
		questions[i].Choices = []domain.Choice{}
	}

	choices, err := s.Store.Questions().ListChoices(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range choices {
		if i, ok := index[c.QuestionID]; ok {
			questions[i].Choices = append(questions[i].Choices, c)
		}
	}
	return questions, nil
}

// GetQuestion returns one aggregate or ErrQuestionNotFound.
func (s *QuestionService) GetQuestion(ctx context.Context, id int64) (domain.Question, error) {
	q, err := s.Store.Questions().GetQuestion(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Question{}, ErrQuestionNotFound
	}
	return q, err
}

// DeleteQuestion removes a question with its choices and votes.
func (s *QuestionService) DeleteQuestion(ctx context.Context, id int64) error {
	err := s.Store.Questions().DeleteQuestion(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrQuestionNotFound
	}
	if err == nil {
		slogx.FromContext(ctx).Info("question deleted", slog.Int64("question_id", id))
	}
	return err
}
