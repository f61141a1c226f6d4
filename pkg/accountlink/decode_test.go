package accountlink

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLinkDate(t *testing.T) {
	got, err := parseLinkDate("2023-12-31 23:59:59")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())

	bad := []string{
		"2023-12-31",
		"2023-12-31T23:59:59",
		"31-12-2023 23:59:59",
		"2023-13-01 00:00:00",
		"2024-3-01 10:00:00",
		"2024-03-01 1:00:00",
		"2024-03-01 10:00:00.999",
		"2024-03-01 10:00:00,5",
	}
	for _, bad := range bad {
		_, err := parseLinkDate(bad)
		assert.True(t, errors.Is(err, ErrMalformedTimestamp), bad)
	}
}

func TestFailureFromBody(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		remote string
		msg    string
	}{
		{"remote message", `{"error":"nope"}`, "nope", "(http://h/x) API returned an error: nope"},
		{"no message", `{}`, "", "(http://h/x) API error: unexpected status 500 Internal Server Error without error message"},
		{"error not string", `{"error":42}`, "", "(http://h/x) API error: unexpected status 500 Internal Server Error without error message"},
		{"not json", `oops`, "", "(http://h/x) API error: unexpected status 500 Internal Server Error: response body is not valid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := failureFromBody(GetEmail, "http://h/x", http.StatusInternalServerError, []byte(tt.body))
			assert.Equal(t, tt.remote, err.Remote)
			assert.Equal(t, "getEmail", err.Op)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestRequireStringsKeepsDuplicates(t *testing.T) {
	root, err := parseObject([]byte(`{"p":["a","b","a"]}`))
	require.NoError(t, err)

	got, err := requireStrings(root, "p")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "a"}, got)
}

func TestRemoteErrorWithoutCause(t *testing.T) {
	err := &RemoteError{Endpoint: "http://h/x"}
	assert.Equal(t, "(http://h/x) API error", err.Error())
	assert.Nil(t, err.Unwrap())
}
