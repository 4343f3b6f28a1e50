package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"rms/internal/domain"
	"rms/internal/repository"
)

// passwordCost is the bcrypt cost used to hash user passwords
var passwordCost = bcrypt.DefaultCost

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository stores users keyed by username
type UserRepository struct {
	c *Connection
}

// Get returns the user with the given username or nil if there is none
func (r *UserRepository) Get(ctx context.Context, username string) (*domain.User, error) {
	var row userRow
	found, err := r.c.get(ctx, "get user", &row,
		`SELECT `+userColumns+` FROM user WHERE username = ?`, username)
	if err != nil || !found {
		return nil, err
	}

	return row.toRecord(), nil
}

// List returns every user in table order
func (r *UserRepository) List(ctx context.Context) ([]domain.UserSummary, error) {
	var rows []userRow
	if err := r.c.list(ctx, "list users", &rows,
		`SELECT `+userColumns+` FROM user ORDER BY userId`); err != nil {
		return nil, err
	}

	users := make([]domain.UserSummary, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].toSummary())
	}

	return users, nil
}

// Append inserts user and returns its username.
// It reports false if the username is already taken.
func (r *UserRepository) Append(ctx context.Context, user domain.User) (string, bool, error) {
	taken, err := r.c.exists(ctx, "append user",
		`SELECT userId FROM user WHERE username = ?`, user.Username)
	if err != nil || taken {
		return "", false, err
	}

	password, err := hashPassword(user.Password)
	if err != nil {
		return "", false, err
	}

	_, _, err = r.c.exec(ctx, "append user",
		`INSERT INTO user (username, firstname, lastname, email, password, phone, dob) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Username, stringToNull(user.Firstname), stringToNull(user.Lastname), stringToNull(user.Email),
		password, stringToNull(user.Phone), stringToNull(user.DOB))
	if err != nil {
		return "", false, err
	}

	return user.Username, true, nil
}

// Modify updates the profile of the user with the given username.
// The username itself is stable; the password is only replaced if user carries one.
// It reports false if there is no such user.
func (r *UserRepository) Modify(ctx context.Context, username string, user domain.User) (string, bool, error) {
	found, err := r.c.exists(ctx, "modify user",
		`SELECT userId FROM user WHERE username = ?`, username)
	if err != nil || !found {
		return "", false, err
	}

	password, err := hashPassword(user.Password)
	if err != nil {
		return "", false, err
	}

	affected, _, err := r.c.exec(ctx, "modify user",
		`UPDATE user SET firstname = ?, lastname = ?, phone = ?, email = ?, dob = ?, password = COALESCE(?, password) WHERE username = ?`,
		stringToNull(user.Firstname), stringToNull(user.Lastname), stringToNull(user.Phone),
		stringToNull(user.Email), stringToNull(user.DOB), password, username)
	if err != nil || affected < 1 {
		return "", false, err
	}

	return username, true, nil
}

// Delete removes the user together with its staffing and stock rows
func (r *UserRepository) Delete(ctx context.Context, username string) (bool, error) {
	affected, _, err := r.c.exec(ctx, "delete user", `DELETE FROM user WHERE username = ?`, username)
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// CheckPassword reports whether password matches the stored hash of the user.
// Users without a password never match.
func (r *UserRepository) CheckPassword(ctx context.Context, username, password string) (bool, error) {
	var hash sql.NullString
	found, err := r.c.get(ctx, "check password", &hash,
		`SELECT password FROM user WHERE username = ?`, username)
	if err != nil || !found || !hash.Valid || hash.String == "" {
		return false, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(hash.String), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, errors.Wrapf(err, "can't check password of user %q", username)
	}
}

func hashPassword(password string) (sql.NullString, error) {
	if password == "" {
		return sql.NullString{}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return sql.NullString{}, errors.Wrap(err, "can't hash password")
	}

	return sql.NullString{String: string(hash), Valid: true}, nil
}
