package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureWriterDetectsOversizedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 10}

	_, err := cw.Write(bytes.Repeat([]byte("a"), 6))
	require.NoError(t, err)
	_, err = cw.Write(bytes.Repeat([]byte("b"), 6))
	require.NoError(t, err)

	// The client always receives the full response; only caching is skipped.
	assert.Equal(t, 12, rec.Body.Len())
	assert.Equal(t, int64(12), cw.size)
	assert.True(t, cw.oversized())
}

func TestCaptureWriterBuffersWithinLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 64}

	_, err := cw.Write([]byte(`{"status":"success"}`))
	require.NoError(t, err)

	assert.False(t, cw.oversized())
	assert.Equal(t, rec.Body.String(), cw.buf.String())
}

func TestCaptureWriterUnlimited(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 0}

	_, err := cw.Write(bytes.Repeat([]byte("x"), 4096))
	require.NoError(t, err)

	assert.False(t, cw.oversized())
	assert.Equal(t, 4096, cw.buf.Len())
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	body := []byte(`{"status":"success","data":{}}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}
