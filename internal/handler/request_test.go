package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/welfarelink/pwd-records-api/internal/model"
	"github.com/welfarelink/pwd-records-api/internal/repository"
)

func TestRequestListCombinesStatusAndRequestedBy(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := NewRequestHandler(repository.NewRequestRepo(db))

	mock.ExpectQuery(`SELECT COUNT\(\*\)(?s:.*)FROM assistance_requests ar(?s:.*)WHERE ar\.status = \? AND ar\.requested_by = \?`).
		WithArgs(model.RequestPending, uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	now := time.Now()
	mock.ExpectQuery(`SELECT(?s:.*)FROM assistance_requests ar(?s:.*)LIMIT \? OFFSET \?`).
		WithArgs(model.RequestPending, uint64(9), 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "assistance_type_id", "name", "beneficiary_id", "full_name",
			"requested_by", "username", "description", "amount", "admin_review_notes",
			"status", "created_at", "updated_at",
		}).AddRow(3, 1, "Wheelchair", 12, "Ama Mensah", 9, "kwame", "mobility aid", 250.0, "", "pending", now, now))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet,
		"/v1/assistance-requests/list?status=pending&requested_by=9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			Requests []struct {
				ID          uint64 `json:"id"`
				RequestedBy uint64 `json:"requested_by"`
			} `json:"requests"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	require.Len(t, body.Data.Requests, 1)
	assert.Equal(t, uint64(9), body.Data.Requests[0].RequestedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestListRejectsBadRequestedBy(t *testing.T) {
	h := NewRequestHandler(repository.NewRequestRepo(nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/assistance-requests/list?requested_by=kwame", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
