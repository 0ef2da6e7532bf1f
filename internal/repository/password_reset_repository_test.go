package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const consumeSQL = "UPDATE password_resets SET consumed_at=NOW() WHERE code=? AND consumed_at IS NULL AND expires_at > NOW()"

func TestResetPasswordSpentCodeFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPasswordResetRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(consumeSQL)).
		WithArgs("123456").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = repo.ResetPassword(context.Background(), "123456", "new-pass", 4)
	assert.True(t, errors.Is(err, ErrCodeInvalid))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetPasswordConsumesCodeOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPasswordResetRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(consumeSQL)).
		WithArgs("654321").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM password_resets WHERE code=? LIMIT 1")).
		WithArgs("654321").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash=?, updated_at=CURRENT_TIMESTAMP WHERE id=?")).
		WithArgs(sqlmock.AnyArg(), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ResetPassword(context.Background(), "654321", "new-pass", 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyUnknownCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPasswordResetRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT user_id FROM password_resets WHERE code=? AND consumed_at IS NULL AND expires_at > NOW() LIMIT 1")).
		WithArgs("000000").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err = repo.Verify(context.Background(), "000000")
	assert.True(t, errors.Is(err, ErrCodeInvalid))
	assert.NoError(t, mock.ExpectationsWereMet())
}
