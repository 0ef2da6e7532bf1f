package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/welfarelink/pwd-records-api/internal/model"
)

func TestPWDListFiltersAndPaging(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPWDRepo(db)

	f := PWDFilter{Quarter: model.Q1, Year: 2025, Page: 2, PerPage: 10}

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM pwd_records p WHERE p.quarter = ? AND p.year = ?")).
		WithArgs(model.Q1, 2025).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "full_name", "gender", "quarter", "year",
		"community", "category", "type", "status", "created_at",
	}).
		AddRow(11, "Ama Mensah", "female", "Q1", 2025, "Hilltop", "Physical", "Amputation", "pending", now).
		AddRow(12, "Kofi Boateng", "male", "Q1", 2025, "Riverside", "Visual", "Low vision", "approved", now)

	mock.ExpectQuery("SELECT(?s:.*)FROM pwd_records p(?s:.*)LIMIT \\? OFFSET \\?").
		WithArgs(model.Q1, 2025, 10, 10).
		WillReturnRows(rows)

	out, total, err := repo.List(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, out, 2)
	assert.Equal(t, "Ama Mensah", out[0].FullName)
	assert.Equal(t, model.RecordApproved, out[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPWDCreateRejectsMismatchedPair(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPWDRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM disability_types WHERE id=? AND category_id=?")).
		WithArgs(uint64(9), uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	rec := model.PWDRecord{
		UserID:                 1,
		Quarter:                model.Q3,
		Year:                   2025,
		FullName:               "Yaw Owusu",
		Gender:                 model.GenderMale,
		DisabilityCategoryID:   2,
		DisabilityTypeID:       9,
		CommunityID:            1,
		AssistanceTypeNeededID: 1,
	}
	err = repo.Create(context.Background(), &rec)
	assert.True(t, errors.Is(err, ErrCategoryTypeMismatch))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPWDDeleteBlockedByRequests(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPWDRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM assistance_requests WHERE beneficiary_id = ? FOR UPDATE")).
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	err = repo.Delete(context.Background(), 4)
	assert.True(t, errors.Is(err, ErrConflict))

	var inUse *InUseError
	require.True(t, errors.As(err, &inUse))
	assert.Equal(t, "assistance_requests", inUse.Table)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPWDDeleteCascadesSatellites(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPWDRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM assistance_requests WHERE beneficiary_id = ? FOR UPDATE")).
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM guardians WHERE pwd_id=?")).
		WithArgs(uint64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM educations WHERE pwd_id=?")).
		WithArgs(uint64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM support_needs WHERE pwd_id=?")).
		WithArgs(uint64(4)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM pwd_records WHERE id=?")).
		WithArgs(uint64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}
