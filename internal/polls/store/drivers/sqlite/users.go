package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/polls/internal/polls/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, password_hash, first_name, last_name, user_type, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	var role string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &role, &u.CreatedAt); err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash, first_name, last_name, user_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, string(u.Role), u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) ListUsers(ctx context.Context, f domain.UserFilter) ([]domain.User, error) {
	var sb strings.Builder
	var args []any

	sb.WriteString(`SELECT ` + userColumns + ` FROM users WHERE 1 = 1`)
	if f.Role != "" {
		sb.WriteString(` AND user_type = ?`)
		args = append(args, string(f.Role))
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		sb.WriteString(` AND (username LIKE ? ESCAPE '\' OR first_name LIKE ? ESCAPE '\' OR last_name LIKE ? ESCAPE '\')`)
		args = append(args, p, p, p)
	}
	sb.WriteString(` ORDER BY id`)
	args = appendPage(&sb, args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
