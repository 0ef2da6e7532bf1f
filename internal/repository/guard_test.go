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

// The usage count must be a locking read so a concurrent insert of a
// referencing row cannot land between the check and the delete.
func TestCheckUsageLocksScannedRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM disability_types WHERE category_id = ? FOR UPDATE")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM pwd_records WHERE disability_category_id = ? FOR UPDATE")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err = checkUsage(context.Background(), db, 7, []usageCheck{
		{"disability_types", "category_id"},
		{"pwd_records", "disability_category_id"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckUsageStopsAtFirstReference(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM disability_types WHERE category_id = ? FOR UPDATE")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	err = checkUsage(context.Background(), db, 7, []usageCheck{
		{"disability_types", "category_id"},
		{"pwd_records", "disability_category_id"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))

	var inUse *InUseError
	require.True(t, errors.As(err, &inUse))
	assert.Equal(t, "disability_types", inUse.Table)
	assert.Equal(t, int64(4), inUse.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
