package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
)

type votesRepo struct {
	db dbtx
}

func (r *votesRepo) CreateVote(ctx context.Context, v domain.Vote) (domain.Vote, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO votes (user_id, question_id, choice_id, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		v.UserID, v.QuestionID, v.ChoiceID, v.CreatedAt,
	).Scan(&v.ID)
	if err != nil {
		return domain.Vote{}, mapConstraint(err)
	}
	return v, nil
}

func (r *votesRepo) GetVote(ctx context.Context, userID, questionID int64) (domain.Vote, error) {
	var v domain.Vote
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, question_id, choice_id, created_at
		FROM votes WHERE user_id = ? AND question_id = ?`,
		userID, questionID,
	).Scan(&v.ID, &v.UserID, &v.QuestionID, &v.ChoiceID, &v.CreatedAt)
	if err != nil {
		return domain.Vote{}, mapNotFound(err)
	}
	return v, nil
}

func (r *votesRepo) ListVotedQuestions(ctx context.Context, userID int64) ([]domain.VotedQuestion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT q.id, q.question_text, c.choice_text, v.created_at
		FROM votes v
		JOIN questions q ON q.id = v.question_id
		JOIN choices c ON c.id = v.choice_id
		WHERE v.user_id = ?
		ORDER BY v.id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.VotedQuestion
	for rows.Next() {
		var vq domain.VotedQuestion
		if err := rows.Scan(&vq.QuestionID, &vq.QuestionText, &vq.ChoiceText, &vq.VotedAt); err != nil {
			return nil, err
		}
		out = append(out, vq)
	}
	return out, rows.Err()
}

func (r *votesRepo) ListVotes(ctx context.Context, f domain.VoteFilter) ([]domain.Vote, error) {
	var sb strings.Builder
	var args []any

	sb.WriteString(`SELECT id, user_id, question_id, choice_id, created_at FROM votes WHERE 1 = 1`)
	if f.QuestionID > 0 {
		sb.WriteString(` AND question_id = ?`)
		args = append(args, f.QuestionID)
	}
	if f.UserID > 0 {
		sb.WriteString(` AND user_id = ?`)
		args = append(args, f.UserID)
	}
	sb.WriteString(` ORDER BY id`)
	args = appendPage(&sb, args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Vote
	for rows.Next() {
		var v domain.Vote
		if err := rows.Scan(&v.ID, &v.UserID, &v.QuestionID, &v.ChoiceID, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
