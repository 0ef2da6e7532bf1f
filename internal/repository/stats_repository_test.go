package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/welfarelink/pwd-records-api/internal/model"
)

// Whitespace-insensitive pattern for the assessed-beneficiary join queries.
const assessedPattern = `SELECT COUNT\(DISTINCT ar\.beneficiary_id\)(?s:.*)JOIN pwd_records p(?s:.*)WHERE ar\.status=\?`

func TestGetForPeriodPendingMath(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewStatsRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM pwd_records WHERE quarter=? AND year=?")).
		WithArgs(model.Q2, 2025).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
	mock.ExpectQuery(assessedPattern).
		WithArgs(model.RequestAssessed, model.Q2, 2025).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	s, err := repo.GetForPeriod(context.Background(), model.Q2, 2025)
	require.NoError(t, err)
	assert.Equal(t, int64(10), s.TotalRegistered)
	assert.Equal(t, int64(4), s.TotalAssessed)
	assert.Equal(t, int64(6), s.Pending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompareKeepsOrderAndZeroFills(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewStatsRepo(db)

	registeredSQL := regexp.QuoteMeta("SELECT COUNT(*) FROM pwd_records WHERE year=?")

	// 2026 has no data; 2024 does. The caller's order must survive.
	mock.ExpectQuery(registeredSQL).WithArgs(2026).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(assessedPattern).WithArgs(model.RequestAssessed, 2026).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(registeredSQL).WithArgs(2024).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(assessedPattern).WithArgs(model.RequestAssessed, 2024).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	cmp, err := repo.Compare(context.Background(), []int{2026, 2024})
	require.NoError(t, err)
	assert.Equal(t, []int{2026, 2024}, cmp.Years)
	assert.Equal(t, []int64{0, 7}, cmp.TotalRegistered)
	assert.Equal(t, []int64{0, 3}, cmp.TotalAssessed)
	assert.Equal(t, []int64{0, 4}, cmp.Pending)
	assert.NoError(t, mock.ExpectationsWereMet())
}
