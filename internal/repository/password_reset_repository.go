package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/welfarelink/pwd-records-api/internal/utils"
)

// PasswordResetRepo manages one-time reset codes. A code is valid while it
// is unexpired and unconsumed; consumption happens through a conditional
// UPDATE so that two concurrent reset attempts can never both spend the
// same code.
type PasswordResetRepo struct{ DB *sql.DB }

func NewPasswordResetRepo(db *sql.DB) *PasswordResetRepo { return &PasswordResetRepo{DB: db} }

// ErrCodeInvalid is returned when a code does not exist, has expired, or was
// already consumed. Callers cannot distinguish the three cases.
var ErrCodeInvalid = errors.New("invalid or expired code")

// Create invalidates any pending codes for the user and persists a fresh
// one with the given TTL. It returns the generated code for delivery by the
// notification collaborator.
func (r *PasswordResetRepo) Create(ctx context.Context, userID uint64, ttl time.Duration) (string, time.Time, error) {
	code, err := utils.NewOTPCode()
	if err != nil {
		return "", time.Time{}, err
	}
	exp := time.Now().UTC().Add(ttl)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", time.Time{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	// A user has at most one live code; older pending ones die here.
	if _, err = tx.ExecContext(ctx,
		"UPDATE password_resets SET consumed_at=NOW() WHERE user_id=? AND consumed_at IS NULL", userID); err != nil {
		return "", time.Time{}, err
	}
	if _, err = tx.ExecContext(ctx,
		"INSERT INTO password_resets (user_id, code, expires_at) VALUES (?,?,?)",
		userID, code, exp); err != nil {
		return "", time.Time{}, err
	}
	return code, exp, nil
}

// Verify checks that a code exists, is unexpired and unconsumed, and
// returns the owning user's id without spending the code.
func (r *PasswordResetRepo) Verify(ctx context.Context, code string) (uint64, error) {
	var userID uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id FROM password_resets WHERE code=? AND consumed_at IS NULL AND expires_at > NOW() LIMIT 1",
		code).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrCodeInvalid
	}
	return userID, err
}

// ResetPassword consumes the code and replaces the owner's password hash in
// a single transaction. The conditional UPDATE is the atomic check-then-act:
// RowsAffected 0 means the code was missing, expired or already spent.
func (r *PasswordResetRepo) ResetPassword(ctx context.Context, code, newPassword string, cost int) error {
	hash, err := utils.HashPassword(newPassword, cost)
	if err != nil {
		return err
	}

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

	res, err := tx.ExecContext(ctx,
		"UPDATE password_resets SET consumed_at=NOW() WHERE code=? AND consumed_at IS NULL AND expires_at > NOW()",
		code)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrCodeInvalid
		return err
	}

	var userID uint64
	if err = tx.QueryRowContext(ctx,
		"SELECT user_id FROM password_resets WHERE code=? LIMIT 1", code).Scan(&userID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		"UPDATE users SET password_hash=?, updated_at=CURRENT_TIMESTAMP WHERE id=?", hash, userID); err != nil {
		return err
	}
	return nil
}
