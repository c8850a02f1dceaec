package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
	"github.com/stretchr/testify/require"
)

type voteFixture struct {
	users     *UserService
	questions *QuestionService
	votes     *VoteService
}

func newVoteFixture(t *testing.T) voteFixture {
	t.Helper()
	st := newTestStore(t)
	return voteFixture{
		users:     &UserService{Store: st},
		questions: &QuestionService{Store: st},
		votes:     &VoteService{Store: st},
	}
}

func TestCastVote(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newVoteFixture(t)

	alice := mustRegister(t, f.users, "alice", domain.RoleUser)
	color, err := f.questions.CreateQuestion(ctx, "Color?", []string{"Red", "Blue"})
	require.NoError(t, err)
	pet, err := f.questions.CreateQuestion(ctx, "Pet?", []string{"Cat", "Dog"})
	require.NoError(t, err)
	red, blue := color.Choices[0], color.Choices[1]

	v, err := f.votes.CastVote(ctx, alice.ID, red.ID, 0)
	require.NoError(t, err)
	require.Equal(t, color.ID, v.QuestionID)

	got, err := f.questions.GetQuestion(ctx, color.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), got.Choices[0].Votes)
	require.Equal(t, int64(0), got.Choices[1].Votes)

	t.Run("second vote on same question", func(t *testing.T) {
		_, err := f.votes.CastVote(ctx, alice.ID, blue.ID, 0)
		require.ErrorIs(t, err, ErrAlreadyVoted)

		_, err = f.votes.CastVote(ctx, alice.ID, red.ID, 0)
		require.ErrorIs(t, err, ErrAlreadyVoted)

		got, err := f.questions.GetQuestion(ctx, color.ID)
		require.NoError(t, err)
		require.Equal(t, int64(1), totalVotes(got), "tally must be incremented exactly once")

		all, err := f.votes.ListVotes(ctx, domain.VoteFilter{QuestionID: color.ID})
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("unknown choice", func(t *testing.T) {
		_, err := f.votes.CastVote(ctx, alice.ID, 999, 0)
		require.ErrorIs(t, err, ErrChoiceNotFound)
	})

	t.Run("choice from another question", func(t *testing.T) {
		_, err := f.votes.CastVote(ctx, alice.ID, pet.Choices[0].ID, color.ID)
		require.ErrorIs(t, err, ErrChoiceMismatch)

		got, err := f.questions.GetQuestion(ctx, pet.ID)
		require.NoError(t, err)
		require.Zero(t, totalVotes(got))
	})

	t.Run("matching question id", func(t *testing.T) {
		_, err := f.votes.CastVote(ctx, alice.ID, pet.Choices[1].ID, pet.ID)
		require.NoError(t, err)
	})
}

func TestListVotedQuestions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newVoteFixture(t)

	alice := mustRegister(t, f.users, "alice", domain.RoleUser)
	bob := mustRegister(t, f.users, "bob", domain.RoleUser)

	color, err := f.questions.CreateQuestion(ctx, "Color?", []string{"Red", "Blue"})
	require.NoError(t, err)
	pet, err := f.questions.CreateQuestion(ctx, "Pet?", []string{"Cat", "Dog"})
	require.NoError(t, err)
	_, err = f.questions.CreateQuestion(ctx, "Unvoted?", []string{"x"})
	require.NoError(t, err)

	none, err := f.votes.ListVotedQuestions(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)

	_, err = f.votes.CastVote(ctx, alice.ID, pet.Choices[1].ID, 0)
	require.NoError(t, err)
	_, err = f.votes.CastVote(ctx, alice.ID, color.Choices[0].ID, 0)
	require.NoError(t, err)
	_, err = f.votes.CastVote(ctx, bob.ID, color.Choices[1].ID, 0)
	require.NoError(t, err)

	voted, err := f.votes.ListVotedQuestions(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, voted, 2)
	require.Equal(t, pet.ID, voted[0].QuestionID)
	require.Equal(t, "Dog", voted[0].ChoiceText)
	require.Equal(t, color.ID, voted[1].QuestionID)
	require.Equal(t, "Red", voted[1].ChoiceText)

	voted, err = f.votes.ListVotedQuestions(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, voted, 1)
	require.Equal(t, "Blue", voted[0].ChoiceText)
}

func TestCastVoteConcurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newVoteFixture(t)

	u := mustRegister(t, f.users, "racer", domain.RoleUser)
	q, err := f.questions.CreateQuestion(ctx, "Race?", []string{"a", "b", "c"})
	require.NoError(t, err)

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := range workers {
		wg.Add(1)
		go func(choiceID int64) {
			defer wg.Done()
			_, err := f.votes.CastVote(ctx, u.ID, choiceID, 0)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrAlreadyVoted):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(q.Choices[i%len(q.Choices)].ID)
	}
	wg.Wait()

	require.Equal(t, 1, successes)
	require.Equal(t, workers-1, conflicts)

	got, err := f.questions.GetQuestion(ctx, q.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), totalVotes(got))

	votes, err := f.votes.ListVotes(ctx, domain.VoteFilter{UserID: u.ID})
	require.NoError(t, err)
	require.Len(t, votes, 1)
}

func totalVotes(q domain.Question) int64 {
	var n int64
	for _, c := range q.Choices {
		n += c.Votes
	}
	return n
}
