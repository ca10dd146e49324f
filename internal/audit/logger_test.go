package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunelink/auth-service/internal/logger"
)

func newCaptureLogger() (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(zerolog.New(&buf)), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		out = append(out, entry)
	}
	return out
}

func TestAuditFlag_OnEveryEntry(t *testing.T) {
	t.Parallel()

	l, buf := newCaptureLogger()
	ctx := context.Background()

	l.LoginSuccess(ctx, "a@b.com")
	l.LoginFailed(ctx, "a@b.com", "password mismatch")
	l.Registered(ctx, "a@b.com")
	l.RegistrationRejected(ctx, "a@b.com")
	l.Logout(ctx, "a@b.com")
	l.VerificationSent(ctx, "a@b.com")
	l.EmailVerified(ctx, "a@b.com")
	l.PreferenceUpdated(ctx, "a@b.com", "sp")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 8)
	for _, e := range entries {
		assert.Equal(t, true, e["audit"])
	}
}

func TestLoginFailed_CarriesReason(t *testing.T) {
	t.Parallel()

	l, buf := newCaptureLogger()
	l.LoginFailed(context.Background(), "a@b.com", "unknown email")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "login_failed", entries[0]["action"])
	assert.Equal(t, "unknown email", entries[0]["reason"])
}

func TestRequest_WarnsOnErrorStatus(t *testing.T) {
	t.Parallel()

	l, buf := newCaptureLogger()
	l.Request(context.Background(), "POST", "/users/login", 401, "Unauthorized")
	l.Request(context.Background(), "GET", "/healthz", 200, "OK")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "warn", entries[0]["level"])
	assert.Equal(t, "info", entries[1]["level"])
}

func TestEntries_TagRequestID(t *testing.T) {
	t.Parallel()

	l, buf := newCaptureLogger()
	ctx := logger.WithRequestID(context.Background(), "req-42")
	l.Registered(ctx, "a@b.com")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0]["request_id"])
}

func TestMaskEmail(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"alice@example.com": "al***@example.com",
		"ab@x.com":          "ab***@x.com",
		"a@b":               "***",
		"":                  "***",
	}
	for in, want := range cases {
		assert.Equal(t, want, maskEmail(in), "maskEmail(%q)", in)
	}
}
