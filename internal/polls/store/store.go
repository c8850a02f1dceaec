package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories so a transaction-scoped Store
// has exactly the same surface as the root one, and nested transactions are
// refused by the Tx implementation.
type Store interface {
	Users() Users
	Questions() Questions
	Votes() Votes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts u and returns it with the assigned ID.
	// A taken username yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// ListUsers returns users ordered by id.
	ListUsers(ctx context.Context, f domain.UserFilter) ([]domain.User, error)
}

type Questions interface {
	// CreateQuestion inserts the question row only. Choices are added with
	// CreateChoice inside the same transaction.
	CreateQuestion(ctx context.Context, q domain.Question) (domain.Question, error)

	CreateChoice(ctx context.Context, c domain.Choice) (domain.Choice, error)

	// GetQuestion returns the question with its choices.
	GetQuestion(ctx context.Context, id int64) (domain.Question, error)

	// ListQuestions returns questions ordered by id, without choices.
	ListQuestions(ctx context.Context, f domain.QuestionFilter) ([]domain.Question, error)

	// ListChoices returns the choices of every listed question ordered by id.
	ListChoices(ctx context.Context, questionIDs []int64) ([]domain.Choice, error)

	GetChoice(ctx context.Context, id int64) (domain.Choice, error)

	// IncrementVotes adds one to the choice tally. Only call it inside the
	// transaction that records the matching vote.
	IncrementVotes(ctx context.Context, choiceID int64) error

	// DeleteQuestion removes the question, its choices and their votes.
	DeleteQuestion(ctx context.Context, id int64) error
}

type Votes interface {
	// CreateVote inserts a vote. A second vote for the same user and
	// question yields ErrAlreadyExists.
	CreateVote(ctx context.Context, v domain.Vote) (domain.Vote, error)

	// GetVote returns the vote a user cast on a question.
	GetVote(ctx context.Context, userID, questionID int64) (domain.Vote, error)

	// ListVotedQuestions returns one entry per question userID voted on,
	// ordered by vote creation.
	ListVotedQuestions(ctx context.Context, userID int64) ([]domain.VotedQuestion, error)

	// ListVotes returns votes ordered by id.
	ListVotes(ctx context.Context, f domain.VoteFilter) ([]domain.Vote, error)
}
