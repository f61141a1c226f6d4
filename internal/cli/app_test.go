package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/accountlink/internal/domain"
	"github.com/MrSnakeDoc/accountlink/internal/httpserver"
	"github.com/MrSnakeDoc/accountlink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/accountlink/internal/logger"
	"github.com/MrSnakeDoc/accountlink/internal/store/memory"
)

const (
	fullToken     = "8d0c6f0e-3f3a-4d0e-9a51-2b7c9f1e6a10"
	likeOnlyToken = "1f9b2c4d-7e6a-4b3c-8d2e-5a4f3b2c1d0e"
)

func startSandbox(t *testing.T) string {
	t.Helper()

	st := memory.New()
	require.NoError(t, st.SaveLinks(context.Background(), []*domain.AccountLink{
		{
			Token:       fullToken,
			Username:    "alice",
			Email:       "alice@example.com",
			Domain:      "example.com",
			Permissions: []string{"kaleron/email", "krio/send-comment", "krio/read-comments", "krio/like"},
			CreatedAt:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			Token:       likeOnlyToken,
			Username:    "bob",
			Domain:      "example.org",
			Permissions: []string{"krio/like"},
			CreatedAt:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		},
	}))

	srv := httptest.NewServer(httpserver.NewRouter(deps.Deps{
		Logger:    logger.Nop(),
		StartTime: time.Now(),
		TimeNow:   time.Now,
		Store:     st,
		StoreKind: "memory",
		BasePath:  "/API/V1",
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/API/V1"
}

func run(t *testing.T, base, token string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	argv := append([]string{"kaleron", "--token", token, "--base-url", base, "--log-level", "error"}, args...)
	err := NewApp(&out).Run(argv)
	return out.String(), err
}

func TestInfo(t *testing.T) {
	base := startSandbox(t)

	out, err := run(t, base, fullToken, "info")
	require.NoError(t, err)
	assert.Equal(t,
		"username:    alice\n"+
			"domain:      example.com\n"+
			"created:     2024-03-01 10:00:00\n"+
			"permissions: kaleron/email, krio/send-comment, krio/read-comments, krio/like\n",
		out)
}

func TestEmail(t *testing.T) {
	base := startSandbox(t)

	out, err := run(t, base, fullToken, "email")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com\n", out)
}

func TestCommentRoundTrip(t *testing.T) {
	base := startSandbox(t)

	out, err := run(t, base, fullToken, "comment", "v1", "hello & welcome")
	require.NoError(t, err)
	assert.Equal(t, "comment posted on v1\n", out)

	_, err = run(t, base, fullToken, "comment", "v1", "second")
	require.NoError(t, err)

	out, err = run(t, base, fullToken, "comments", "v1")
	require.NoError(t, err)
	assert.Equal(t, "hello & welcome\nsecond\n", out)
}

func TestReactions(t *testing.T) {
	base := startSandbox(t)

	out, err := run(t, base, likeOnlyToken, "like", "v1")
	require.NoError(t, err)
	assert.Equal(t, "like toggled on v1\n", out)

	out, err = run(t, base, likeOnlyToken, "dislike", "v1")
	require.NoError(t, err)
	assert.Equal(t, "dislike toggled on v1\n", out)
}

func TestPermissionDenied(t *testing.T) {
	base := startSandbox(t)

	_, err := run(t, base, likeOnlyToken, "email")
	require.Error(t, err)
	assert.Equal(t, "insufficient permissions: kaleron/email", err.Error())
}

func TestUnlink(t *testing.T) {
	base := startSandbox(t)

	out, err := run(t, base, fullToken, "unlink")
	require.NoError(t, err)
	assert.Equal(t, "account link removed\n", out)

	_, err = run(t, base, fullToken, "info")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown link token")
}

func TestInvalidToken(t *testing.T) {
	base := startSandbox(t)

	_, err := run(t, base, "not-a-uuid", "info")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid link token")
}

func TestMissingArgs(t *testing.T) {
	base := startSandbox(t)

	_, err := run(t, base, fullToken, "comment", "v1")
	require.Error(t, err)
	assert.Equal(t, "usage: kaleron comment VIDEO CONTENT", err.Error())
}

func TestEndpointsFile(t *testing.T) {
	base := startSandbox(t)
	path := filepath.Join(t.TempDir(), "endpoints.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: "+base+"\n"), 0o644))

	var out bytes.Buffer
	err := NewApp(&out).Run([]string{"kaleron", "--token", fullToken, "--endpoints-file", path, "--log-level", "error", "email"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com\n", out.String())
}

func TestTokenFromEnv(t *testing.T) {
	base := startSandbox(t)
	t.Setenv("KALERON_LINK_TOKEN", fullToken)
	t.Setenv("KALERON_BASE_URL", base)

	var out bytes.Buffer
	err := NewApp(&out).Run([]string{"kaleron", "--log-level", "error", "email"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com\n", out.String())
}
