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

	"github.com/welfarelink/pwd-records-api/internal/config"
	"github.com/welfarelink/pwd-records-api/internal/repository"
	"github.com/welfarelink/pwd-records-api/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     4,
		OTPTTLMin:      15,
	}
}

func postJSON(t *testing.T, h echo.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h(c))
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (status, message string) {
	t.Helper()
	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Status, body.Message
}

const selectUserByUsername = "SELECT id, username, email, password_hash, role, profile_image, created_at, updated_at FROM users WHERE username=? LIMIT 1"

func TestLoginUnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewAuthHandler(testConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db), repository.NewPasswordResetRepo(db))

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByUsername)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "username", "email", "password_hash", "role", "profile_image", "created_at", "updated_at",
		}))

	rec := postJSON(t, h.Login, "/v1/auth/login", `{"identifier":"ghost","password":"whatever"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	status, msg := decodeEnvelope(t, rec)
	assert.Equal(t, "error", status)
	assert.Equal(t, "invalid credentials", msg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A wrong password must produce exactly the same response as an unknown
// identifier so login cannot be used to probe for accounts.
func TestLoginWrongPasswordSameMessage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewAuthHandler(testConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db), repository.NewPasswordResetRepo(db))

	hash, err := utils.HashPassword("correct-horse", 4)
	require.NoError(t, err)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByUsername)).
		WithArgs("ama").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "username", "email", "password_hash", "role", "profile_image", "created_at", "updated_at",
		}).AddRow(1, "ama", "ama@example.com", hash, "officer", nil, now, now))

	rec := postJSON(t, h.Login, "/v1/auth/login", `{"identifier":"ama","password":"battery-staple"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	status, msg := decodeEnvelope(t, rec)
	assert.Equal(t, "error", status)
	assert.Equal(t, "invalid credentials", msg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginMissingFields(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewAuthHandler(testConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db), repository.NewPasswordResetRepo(db))

	rec := postJSON(t, h.Login, "/v1/auth/login", `{"identifier":"","password":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
