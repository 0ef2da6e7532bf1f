package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("  Admin ")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	_, ok = ParseRole("superuser")
	assert.False(t, ok)

	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestParseQuarter(t *testing.T) {
	for _, raw := range []string{"q1", "Q1", " q1 "} {
		q, ok := ParseQuarter(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, Q1, q)
	}
	_, ok := ParseQuarter("Q5")
	assert.False(t, ok)
}

func TestQuarterOfMonth(t *testing.T) {
	cases := map[int]Quarter{
		1: Q1, 3: Q1,
		4: Q2, 6: Q2,
		7: Q3, 9: Q3,
		10: Q4, 12: Q4,
	}
	for month, want := range cases {
		assert.Equal(t, want, QuarterOfMonth(month), "month %d", month)
	}
}

func TestParseRecordStatus(t *testing.T) {
	s, ok := ParseRecordStatus("APPROVED")
	assert.True(t, ok)
	assert.Equal(t, RecordApproved, s)

	_, ok = ParseRecordStatus("archived")
	assert.False(t, ok)
}

func TestParseRequestStatus(t *testing.T) {
	s, ok := ParseRequestStatus("ready_to_access")
	assert.True(t, ok)
	assert.Equal(t, RequestReadyToAccess, s)

	for _, raw := range []string{"ready to access", "done", ""} {
		_, ok := ParseRequestStatus(raw)
		assert.False(t, ok, raw)
	}
}

func TestParseGender(t *testing.T) {
	g, ok := ParseGender("Female")
	assert.True(t, ok)
	assert.Equal(t, GenderFemale, g)

	_, ok = ParseGender("unknown")
	assert.False(t, ok)
}
