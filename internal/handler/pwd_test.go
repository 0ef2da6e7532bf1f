package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/welfarelink/pwd-records-api/internal/repository"
)

func TestUpdateStatusRejectsUnknownEnum(t *testing.T) {
	h := NewPWDHandler(repository.NewPWDRepo(nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/v1/pwd-records/3/status",
		strings.NewReader(`{"status":"archived"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	assert.Contains(t, body.Message, "status must be")
}

func TestListRejectsUnknownQuarter(t *testing.T) {
	h := NewPWDHandler(repository.NewPWDRepo(nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/pwd-records/list?quarter=Q9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListEnvelopeShape(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := NewPWDHandler(repository.NewPWDRepo(db))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM pwd_records p WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))

	now := time.Now()
	mock.ExpectQuery("SELECT(?s:.*)FROM pwd_records p(?s:.*)LIMIT \\? OFFSET \\?").
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "full_name", "gender", "quarter", "year",
			"community", "category", "type", "status", "created_at",
		}).AddRow(1, "Ama Mensah", "female", "Q1", 2025, "Hilltop", "Physical", "Amputation", "pending", now))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/pwd-records/list", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			Records    []json.RawMessage `json:"records"`
			Pagination struct {
				TotalRecords int64 `json:"total_records"`
				CurrentPage  int   `json:"current_page"`
				PerPage      int   `json:"per_page"`
				TotalPages   int   `json:"total_pages"`
			} `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Len(t, body.Data.Records, 1)
	assert.Equal(t, int64(45), body.Data.Pagination.TotalRecords)
	assert.Equal(t, 1, body.Data.Pagination.CurrentPage)
	assert.Equal(t, 20, body.Data.Pagination.PerPage)
	assert.Equal(t, 3, body.Data.Pagination.TotalPages)
	assert.NoError(t, mock.ExpectationsWereMet())
}
