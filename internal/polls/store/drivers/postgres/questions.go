package postgres

import (
	"context"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
	"github.com/lib/pq"
)

type questionsRepo struct {
	db dbtx
}

func (r *questionsRepo) CreateQuestion(ctx context.Context, q domain.Question) (domain.Question, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO questions (question_text, pub_date) VALUES ($1, $2) RETURNING id`,
		q.Text, q.PubDate,
	).Scan(&q.ID)
	if err != nil {
		return domain.Question{}, err
	}
	q.Choices = nil
	return q, nil
}

func (r *questionsRepo) CreateChoice(ctx context.Context, c domain.Choice) (domain.Choice, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO choices (question_id, choice_text, votes) VALUES ($1, $2, 0) RETURNING id`,
		c.QuestionID, c.Text,
	).Scan(&c.ID)
	if err != nil {
		return domain.Choice{}, err
	}
	c.Votes = 0
	return c, nil
}

func (r *questionsRepo) GetQuestion(ctx context.Context, id int64) (domain.Question, error) {
	var q domain.Question
	err := r.db.QueryRowContext(ctx,
		`SELECT id, question_text, pub_date FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.Text, &q.PubDate)
	if err != nil {
		return domain.Question{}, mapNotFound(err)
	}
	q.PubDate = q.PubDate.UTC()

	choices, err := r.ListChoices(ctx, []int64{q.ID})
	if err != nil {
		return domain.Question{}, err
	}
	q.Choices = choices
	return q, nil
}

func (r *questionsRepo) ListQuestions(ctx context.Context, f domain.QuestionFilter) ([]domain.Question, error) {
	var sq query
	sq.write(`SELECT id, question_text, pub_date FROM questions WHERE TRUE`)
	if f.Search != "" {
		sq.write(` AND question_text ILIKE ` + sq.arg(likePattern(f.Search)))
	}
	if f.Since != nil {
		sq.write(` AND pub_date >= ` + sq.arg(f.Since.UTC()))
	}
	if f.Until != nil {
		sq.write(` AND pub_date <= ` + sq.arg(f.Until.UTC()))
	}
	sq.write(` ORDER BY id`)
	sq.page(f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, sq.String(), sq.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.PubDate); err != nil {
			return nil, err
		}
		q.PubDate = q.PubDate.UTC()
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *questionsRepo) ListChoices(ctx context.Context, questionIDs []int64) ([]domain.Choice, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, question_id, choice_text, votes FROM choices WHERE question_id = ANY($1) ORDER BY id`,
		pq.Array(questionIDs),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Choice
	for rows.Next() {
		var c domain.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.Text, &c.Votes); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *questionsRepo) GetChoice(ctx context.Context, id int64) (domain.Choice, error) {
	var c domain.Choice
	err := r.db.QueryRowContext(ctx,
		`SELECT id, question_id, choice_text, votes FROM choices WHERE id = $1`, id,
	).Scan(&c.ID, &c.QuestionID, &c.Text, &c.Votes)
	if err != nil {
		return domain.Choice{}, mapNotFound(err)
	}
	return c, nil
}

func (r *questionsRepo) IncrementVotes(ctx context.Context, choiceID int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE choices SET votes = votes + 1 WHERE id = $1`, choiceID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *questionsRepo) DeleteQuestion(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
