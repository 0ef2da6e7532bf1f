package database

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNReportsMatchedRows(t *testing.T) {
	cfg, err := mysql.ParseDSN(dsn("svc", "secret", "db", "3306", "welfarelink"))
	require.NoError(t, err)

	assert.True(t, cfg.ClientFoundRows,
		"updates must report matched rows so no-op writes to existing rows are not mapped to not-found")
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, "db:3306", cfg.Addr)
	assert.Equal(t, "welfarelink", cfg.DBName)
	assert.Equal(t, "svc", cfg.User)
	assert.Equal(t, "secret", cfg.Passwd)
	assert.Equal(t, "UTC", cfg.Loc.String())
}

func TestDSNOmitsEmptyPassword(t *testing.T) {
	cfg, err := mysql.ParseDSN(dsn("svc", "", "localhost", "3306", "welfarelink"))
	require.NoError(t, err)
	assert.Equal(t, "svc", cfg.User)
	assert.Empty(t, cfg.Passwd)
	assert.True(t, cfg.ClientFoundRows)
}
