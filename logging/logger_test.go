package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntries(t *testing.T, buf *bytes.Buffer) []Entry {
	t.Helper()
	var entries []Entry
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var entry Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLoggerFiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("studio", WARN, &buf)

	logger.Debug("tabs", "ignored", nil)
	logger.Info("tabs", "ignored", nil)
	logger.Warn("tabs", "tab not found", map[string]any{"tab": "gallery"})
	logger.Error("api", "fetch failed", errors.New("boom"), nil)

	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.Equal(t, "studio", entries[0].Component)
	assert.Equal(t, "gallery", entries[0].Fields["tab"])
	assert.Equal(t, "ERROR", entries[1].Level)
	assert.Equal(t, "boom", entries[1].Error)
}

func TestLogContextCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New("studio", DEBUG, &buf)

	logger.WithRequestID("req-1").WithCategory("api").WithField("path", "/api/my-artworks").Debug("request sent")

	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "req-1", entries[0].RequestID)
	assert.Equal(t, "api", entries[0].Category)
	assert.Equal(t, "/api/my-artworks", entries[0].Fields["path"])
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DEBUG,
		" WARN ":  WARN,
		"warning": WARN,
		"error":   ERROR,
		"":        INFO,
		"verbose": INFO,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestDiscardIsSilent(t *testing.T) {
	logger := Discard()
	assert.False(t, logger.Enabled(ERROR))
	logger.Error("x", "y", errors.New("z"), nil)
}

func TestHTTPLoggerAssignsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New("studio-serve", INFO, &buf)

	handler := NewHTTPLogger(logger).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/check-auth", nil)
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	requestID := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(requestID)
	require.NoError(t, err)

	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.Equal(t, requestID, entries[0].RequestID)
	assert.Equal(t, true, entries[0].Fields["script"])
	assert.EqualValues(t, http.StatusTeapot, entries[0].Fields["status"])
	headers, ok := entries[0].Fields["request_headers"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, headers, "Authorization")
}

func TestHTTPLoggerReusesIncomingRequestID(t *testing.T) {
	var buf bytes.Buffer
	handler := NewHTTPLogger(New("studio-serve", INFO, &buf)).Middleware(http.NotFoundHandler())

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, incoming, rec.Header().Get(RequestIDHeader))
}

func TestRotatingFileRollsAndCompresses(t *testing.T) {
	dir := t.TempDir()
	rf, err := NewRotatingFile(dir, "studio.log", 64, 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rf.Close() })

	line := []byte(strings.Repeat("x", 40) + "\n")
	for i := 0; i < 5; i++ {
		_, err := rf.Write(line)
		require.NoError(t, err)
	}

	archives, err := filepath.Glob(filepath.Join(dir, "studio.log.*.gz"))
	require.NoError(t, err)
	assert.Len(t, archives, 2)

	info, err := os.Stat(rf.Path())
	require.NoError(t, err)
	assert.Equal(t, int64(len(line)), info.Size())
}
