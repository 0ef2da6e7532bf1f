package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/welfarelink/pwd-records-api/internal/model"
)

func TestRequestCreateUnknownBeneficiary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRequestRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM pwd_records WHERE id=?")).
		WithArgs(uint64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	req := model.AssistanceRequest{AssistanceTypeID: 1, BeneficiaryID: 77, RequestedBy: 2, Amount: 150}
	err = repo.Create(context.Background(), &req)
	assert.True(t, errors.Is(err, ErrBeneficiaryMissing))
	assert.True(t, errors.Is(err, ErrValidation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestCreateUnknownAssistanceType(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRequestRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM pwd_records WHERE id=?")).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM assistance_types WHERE id=?")).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	req := model.AssistanceRequest{AssistanceTypeID: 42, BeneficiaryID: 3, RequestedBy: 2}
	err = repo.Create(context.Background(), &req)
	assert.True(t, errors.Is(err, ErrAssistanceTypeMissing))
	assert.True(t, errors.Is(err, ErrValidation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestUpdateStatusWithNotes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRequestRepo(db)

	notes := "documents verified on site"
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE assistance_requests SET status=?, admin_review_notes=?, updated_at=CURRENT_TIMESTAMP WHERE id=?")).
		WithArgs(model.RequestAssessed, notes, uint64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), 8, model.RequestAssessed, &notes))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestUpdateStatusWithoutNotesLeavesThem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRequestRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE assistance_requests SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?")).
		WithArgs(model.RequestReview, uint64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), 8, model.RequestReview, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestUpdateStatusMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRequestRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE assistance_requests SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?")).
		WithArgs(model.RequestDeclined, uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateStatus(context.Background(), 99, model.RequestDeclined, nil)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
