package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/welfarelink/pwd-records-api/internal/model"
	"github.com/welfarelink/pwd-records-api/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// ErrUserExists is returned when the username or email is already taken.
var ErrUserExists = errors.New("username or email already exists")

// ErrBadCredentials is returned on any authentication mismatch. The message
// never reveals whether the identifier or the password was wrong.
var ErrBadCredentials = errors.New("invalid credentials")

const userColumns = "id, username, email, password_hash, role, profile_image, created_at, updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var img sql.NullString
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &img, &u.CreatedAt, &u.UpdatedAt)
	u.ProfileImage = img.String
	return u, err
}

// Create inserts a user and returns its ID. The password is stored as a
// bcrypt hash, never plaintext.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, role model.Role, cost int) (uint64, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role) VALUES (?,?,?,?)",
		username, email, hash, role)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrUserExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

// GetByUsername fetches a user by normalized username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1", username))
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

// List returns all users ordered by username.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY username ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		var u model.User
		var img sql.NullString
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &img, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.ProfileImage = img.String
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateUserParams carries the optional fields of a partial user update.
// Nil pointers leave the column untouched.
type UpdateUserParams struct {
	Username     *string
	Email        *string
	ProfileImage *string
	Role         *model.Role
}

// Update applies only the provided fields. Role changes are gated to admins
// in the handler layer.
func (r *UserRepo) Update(ctx context.Context, id uint64, p UpdateUserParams) error {
	set := []string{}
	args := []any{}
	if p.Username != nil {
		set = append(set, "username = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(*p.Username)))
	}
	if p.Email != nil {
		set = append(set, "email = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(*p.Email)))
	}
	if p.ProfileImage != nil {
		set = append(set, "profile_image = ?")
		args = append(args, *p.ProfileImage)
	}
	if p.Role != nil {
		set = append(set, "role = ?")
		args = append(args, *p.Role)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		if isDuplicate(err) {
			return ErrUserExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePassword substitutes the password hash only after the current
// password verifies against the stored hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, currentPassword, newPassword string, cost int) error {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !utils.VerifyPassword(u.PasswordHash, currentPassword) {
		return ErrBadCredentials
	}
	hash, err := utils.HashPassword(newPassword, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, updated_at=CURRENT_TIMESTAMP WHERE id=?", hash, id)
	return err
}

// Delete removes a user after verifying nothing references them as creator
// or requester. The guard and the delete share one transaction.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	err = checkUsage(ctx, tx, id, []usageCheck{
		{"pwd_records", "user_id"},
		{"assistance_requests", "requested_by"},
	})
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM refresh_tokens WHERE user_id=?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM password_resets WHERE user_id=?", id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, "DELETE FROM users WHERE id=?", id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrNotFound
	}
	return err
}

// Authenticate verifies a username-or-email identifier plus password and
// returns the user on success. Both failure modes map to ErrBadCredentials
// so the response cannot be used to probe which part was wrong.
func (r *UserRepo) Authenticate(ctx context.Context, identifier, password string) (model.User, error) {
	var (
		u   model.User
		err error
	)
	if strings.Contains(identifier, "@") {
		u, err = r.GetByEmail(ctx, identifier)
	} else {
		u, err = r.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.User{}, ErrBadCredentials
		}
		return model.User{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, ErrBadCredentials
	}
	return u, nil
}
