package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
	"github.com/aussiebroadwan/polls/internal/polls/store"
	"github.com/aussiebroadwan/polls/pkg/slogx"
)

type VoteService struct {
	Store store.Store
}

// CastVote records userID's vote for choiceID and bumps the choice tally in
// the same transaction. When questionID is non-zero the choice must belong to
// it.
//
// The existence check only gives a clean error on the common path. The
// UNIQUE (user_id, question_id) constraint is what rejects a concurrent
// duplicate, which surfaces here as ErrAlreadyVoted too.
func (s *VoteService) CastVote(ctx context.Context, userID, choiceID, questionID int64) (domain.Vote, error) {
	l := slogx.FromContext(ctx)

	var vote domain.Vote
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		choice, err := tx.Questions().GetChoice(ctx, choiceID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrChoiceNotFound
			}
			return err
		}
		if questionID != 0 && questionID != choice.QuestionID {
			return ErrChoiceMismatch
		}

		_, err = tx.Votes().GetVote(ctx, userID, choice.QuestionID)
		switch {
		case err == nil:
			return ErrAlreadyVoted
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		vote, err = tx.Votes().CreateVote(ctx, domain.Vote{
			UserID:     userID,
			QuestionID: choice.QuestionID,
			ChoiceID:   choice.ID,
			CreatedAt:  time.Now().UTC(),
		})
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrAlreadyVoted
			}
			return err
		}

		return tx.Questions().IncrementVotes(ctx, choice.ID)
	})
	if err != nil {
		return domain.Vote{}, err
	}

	l.Info("vote cast",
		slog.Int64("user_id", userID),
		slog.Int64("question_id", vote.QuestionID),
		slog.Int64("choice_id", vote.ChoiceID),
	)
	return vote, nil
}

// ListVotedQuestions returns every question userID voted on with the text of
// the chosen choice, in voting order.
func (s *VoteService) ListVotedQuestions(ctx context.Context, userID int64) ([]domain.VotedQuestion, error) {
	out, err := s.Store.Votes().ListVotedQuestions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.VotedQuestion{}
	}
	return out, nil
}

// ListVotes returns raw vote records for administration.
func (s *VoteService) ListVotes(ctx context.Context, f domain.VoteFilter) ([]domain.Vote, error) {
	return s.Store.Votes().ListVotes(ctx, f)
}
