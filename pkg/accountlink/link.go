// Package accountlink is a client for Kaleron account links.
//
// A Link is bound to one link token. Its profile and permission list are
// fetched once by New and never refreshed: every operation is checked
// against that snapshot before any request is sent, so a permission
// revoked remotely afterwards only surfaces as a RemoteError.
//
// A Link is safe for concurrent use.
package accountlink

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultUserAgent is sent when WithUserAgent is not used.
const DefaultUserAgent = "accountlink-go"

// Link is a permission-scoped handle on a remote account.
type Link struct {
	token       uuid.UUID
	username    string
	domain      string
	permissions []string
	granted     *hashset.Set
	createdAt   time.Time

	client    Doer
	endpoints Endpoints
	log       *zap.Logger
	userAgent string
}

// Option customizes a Link built by New.
type Option func(*Link)

// WithHTTPClient sets the transport. The caller owns its lifecycle.
func WithHTTPClient(c Doer) Option {
	return func(l *Link) {
		if c != nil {
			l.client = c
		}
	}
}

// WithEndpoints replaces the endpoint set.
func WithEndpoints(es Endpoints) Option {
	return func(l *Link) { l.endpoints = es }
}

// WithBaseURL resolves every endpoint against base instead of DefaultBaseURL.
func WithBaseURL(base string) Option {
	return func(l *Link) { l.endpoints = Endpoints{BaseURL: base} }
}

// WithLogger enables debug logging of each dispatched call.
func WithLogger(log *zap.Logger) Option {
	return func(l *Link) {
		if log != nil {
			l.log = log
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(l *Link) { l.userAgent = ua }
}

// New fetches the link information for token and returns a ready handle.
//
// Any failure is a *RemoteError. A creation date that does not match
// LinkDateFormat additionally matches ErrMalformedTimestamp.
func New(ctx context.Context, token uuid.UUID, opts ...Option) (*Link, error) {
	l := &Link{
		token:     token,
		client:    &http.Client{Timeout: DefaultTimeout},
		endpoints: DefaultEndpoints(),
		log:       zap.NewNop(),
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(l)
	}

	r, err := l.do(ctx, Info, nil)
	if err != nil {
		return nil, err
	}
	if err := l.load(r); err != nil {
		return nil, l.remoteError(Info, r.status, err)
	}

	l.log.Debug("account link ready",
		zap.String("username", l.username),
		zap.String("domain", l.domain),
		zap.Int("permissions", len(l.permissions)))

	return l, nil
}

func (l *Link) load(r reply) error {
	username, err := requireString(r.body, "username")
	if err != nil {
		return err
	}
	permissions, err := requireStrings(r.body, "permissions")
	if err != nil {
		return err
	}
	domain, err := requireString(r.body, "domain")
	if err != nil {
		return err
	}
	date, err := requireString(r.body, "date")
	if err != nil {
		return err
	}
	createdAt, err := parseLinkDate(date)
	if err != nil {
		return err
	}

	granted := hashset.New()
	for _, p := range permissions {
		granted.Add(p)
	}

	l.username = username
	l.permissions = permissions
	l.granted = granted
	l.domain = domain
	l.createdAt = createdAt
	return nil
}

func (l *Link) Token() uuid.UUID     { return l.token }
func (l *Link) Username() string     { return l.username }
func (l *Link) Domain() string       { return l.domain }
func (l *Link) CreatedAt() time.Time { return l.createdAt }

// Permissions returns the permission list as received, in order.
func (l *Link) Permissions() []string {
	return slices.Clone(l.permissions)
}

// Can reports whether the cached permission set holds permission.
func (l *Link) Can(permission string) bool {
	return l.granted != nil && l.granted.Contains(permission)
}

// GetEmail returns the email address of the linked account.
func (l *Link) GetEmail(ctx context.Context) (string, error) {
	r, err := l.do(ctx, GetEmail, nil)
	if err != nil {
		return "", err
	}
	email, err := requireString(r.body, "email")
	if err != nil {
		return "", l.remoteError(GetEmail, r.status, err)
	}
	return email, nil
}

// SendComment posts content as a comment on video.
func (l *Link) SendComment(ctx context.Context, video, content string) error {
	_, err := l.do(ctx, SendComment, url.Values{
		"video":   {video},
		"content": {content},
	})
	return err
}

// ReadComments returns the comments of video in the order the service sent them.
func (l *Link) ReadComments(ctx context.Context, video string) ([]string, error) {
	r, err := l.do(ctx, ReadComments, url.Values{"video": {video}})
	if err != nil {
		return nil, err
	}
	comments, err := requireStrings(r.body, "comments")
	if err != nil {
		return nil, l.remoteError(ReadComments, r.status, err)
	}
	return comments, nil
}

func (l *Link) ToggleVideoLike(ctx context.Context, video string) error {
	_, err := l.do(ctx, Like, url.Values{"video": {video}})
	return err
}

// ToggleVideoDislike is gated by PermissionLike, like ToggleVideoLike.
func (l *Link) ToggleVideoDislike(ctx context.Context, video string) error {
	_, err := l.do(ctx, Dislike, url.Values{"video": {video}})
	return err
}

// Remove deletes the account link on the remote service. The handle keeps
// its snapshot; later calls fail remotely.
func (l *Link) Remove(ctx context.Context) error {
	_, err := l.do(ctx, RemoveLink, nil)
	return err
}

// String describes the link without its token.
func (l *Link) String() string {
	return fmt.Sprintf("AccountLink{username=%q, domain=%q, permissions=%v, createdAt=%s}",
		l.username, l.domain, l.permissions, l.createdAt.Format(time.RFC3339))
}
