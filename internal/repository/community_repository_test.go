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

func TestCommunityDeleteBlockedWhenReferenced(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCommunityRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM pwd_records WHERE community_id = ? FOR UPDATE")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	err = repo.Delete(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))

	var inUse *InUseError
	require.True(t, errors.As(err, &inUse))
	assert.Equal(t, "pwd_records", inUse.Table)
	assert.Equal(t, int64(3), inUse.Count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommunityDeleteUnreferenced(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCommunityRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM pwd_records WHERE community_id = ? FOR UPDATE")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM communities WHERE id=?")).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommunityDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCommunityRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM pwd_records WHERE community_id = ? FOR UPDATE")).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM communities WHERE id=?")).
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = repo.Delete(context.Background(), 99)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommunityUpdateNoopRename(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCommunityRepo(db)

	// The pool connects with clientFoundRows, so renaming a community to its
	// current name still reports one matched row.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE communities SET name=? WHERE id=?")).
		WithArgs("Hilltop", uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), 5, "Hilltop"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommunityUpdateMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCommunityRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE communities SET name=? WHERE id=?")).
		WithArgs("Hilltop", uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), 99, "Hilltop")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommunityCreateDuplicateName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCommunityRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO communities (name) VALUES (?)")).
		WithArgs("Hilltop").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'Hilltop'"))

	_, err = repo.Create(context.Background(), "Hilltop")
	assert.True(t, errors.Is(err, ErrConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}
