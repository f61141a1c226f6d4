package accountlink

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/MrSnakeDoc/accountlink/internal/utils"
)

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultTimeout bounds requests made through the client New builds when
// no Doer is injected.
const DefaultTimeout = 30 * time.Second

type reply struct {
	status int
	body   gjson.Result
}

// do runs the dispatch protocol: permission check, request construction,
// transport, response handling.
func (l *Link) do(ctx context.Context, e Endpoint, params url.Values) (reply, error) {
	op, ok := operations[e]
	if !ok {
		return reply{}, fmt.Errorf("unknown endpoint %s", e)
	}

	if op.permission != "" && !l.Can(op.permission) {
		l.log.Debug("operation refused locally",
			zap.Stringer("op", e),
			zap.String("permission", op.permission))
		return reply{}, &PermissionError{Permission: op.permission}
	}

	return l.roundTrip(ctx, e, op, params)
}

func (l *Link) roundTrip(ctx context.Context, e Endpoint, op operation, params url.Values) (reply, error) {
	endpoint := l.endpoints.URL(e)

	query := url.Values{}
	query.Set("link-token", l.token.String())
	for key, values := range params {
		query[key] = values
	}

	req, err := http.NewRequestWithContext(ctx, op.method, endpoint+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return reply{}, l.remoteError(e, 0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}

	start := time.Now()
	resp, err := l.client.Do(req)
	if err != nil {
		l.log.Debug("account link request failed",
			zap.Stringer("op", e),
			zap.String("endpoint", endpoint),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return reply{}, l.remoteError(e, 0, fmt.Errorf("request failed: %w", err))
	}
	defer utils.Close(resp.Body)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return reply{}, l.remoteError(e, resp.StatusCode, fmt.Errorf("failed to read response: %w", err))
	}

	l.log.Debug("account link request",
		zap.Stringer("op", e),
		zap.String("method", op.method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return reply{}, failureFromBody(e, endpoint, resp.StatusCode, data)
	}

	if !op.decodes {
		return reply{status: resp.StatusCode}, nil
	}

	root, err := parseObject(data)
	if err != nil {
		return reply{}, l.remoteError(e, resp.StatusCode, err)
	}
	return reply{status: resp.StatusCode, body: root}, nil
}

func (l *Link) remoteError(e Endpoint, status int, err error) *RemoteError {
	return &RemoteError{
		Op:         e.String(),
		Endpoint:   l.endpoints.URL(e),
		StatusCode: status,
		Err:        err,
	}
}
