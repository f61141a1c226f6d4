package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/accountlink/internal/domain"
	"github.com/MrSnakeDoc/accountlink/internal/store"
)

// DefaultLinkTTL is the default TTL for seeded links (0 = no expiry)
const DefaultLinkTTL time.Duration = 0

// maxToggleRetries bounds the WATCH retries of ToggleReaction
const maxToggleRetries = 5

// Store handles Redis operations for the sandbox
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

var _ store.Store = (*Store)(nil)

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		ttl:    DefaultLinkTTL,
	}
}

// SaveLinks stores multiple links in Redis (bulk operation)
func (s *Store) SaveLinks(ctx context.Context, links []*domain.AccountLink) error {
	pipe := s.client.Pipeline()

	for _, link := range links {
		data, err := json.Marshal(link)
		if err != nil {
			return fmt.Errorf("failed to marshal link %s: %w", link.Username, err)
		}

		pipe.Set(ctx, LinkKey(link.Token), data, s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save links: %w", err)
	}

	return nil
}

// GetLink retrieves a link from Redis by token
func (s *Store) GetLink(ctx context.Context, token string) (*domain.AccountLink, error) {
	data, err := s.client.Get(ctx, LinkKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", store.ErrLinkNotFound, token)
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	var link domain.AccountLink
	if err := json.Unmarshal(data, &link); err != nil {
		return nil, fmt.Errorf("failed to unmarshal link: %w", err)
	}
	if link.Permissions == nil {
		link.Permissions = []string{}
	}

	return &link, nil
}

// DeleteLink removes a link from Redis
func (s *Store) DeleteLink(ctx context.Context, token string) error {
	deleted, err := s.client.Del(ctx, LinkKey(token)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: %s", store.ErrLinkNotFound, token)
	}

	return nil
}

// AddComment appends a comment to the video's list
func (s *Store) AddComment(ctx context.Context, video, comment string) error {
	if err := s.client.RPush(ctx, CommentsKey(video), comment).Err(); err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return nil
}

// Comments returns the comments of a video in insertion order
func (s *Store) Comments(ctx context.Context, video string) ([]string, error) {
	comments, err := s.client.LRange(ctx, CommentsKey(video), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}
	if comments == nil {
		comments = []string{}
	}
	return comments, nil
}

// ToggleReaction flips a reaction and clears its opposite.
// The check and the update run under WATCH so concurrent toggles by the
// same account do not interleave; a lost race is retried.
func (s *Store) ToggleReaction(ctx context.Context, video, username string, r domain.Reaction) (bool, error) {
	key := ReactionsKey(video, r)
	opposite := ReactionsKey(video, r.Opposite())

	var set bool
	txf := func(tx *redis.Tx) error {
		member, err := tx.SIsMember(ctx, key, username).Result()
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if member {
				pipe.SRem(ctx, key, username)
				return nil
			}
			pipe.SAdd(ctx, key, username)
			pipe.SRem(ctx, opposite, username)
			return nil
		})
		set = !member
		return err
	}

	var err error
	for i := 0; i < maxToggleRetries; i++ {
		err = s.client.Watch(ctx, txf, key, opposite)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle %s: %w", r, err)
	}
	return set, nil
}

// Reactions counts the usernames holding a reaction on a video
func (s *Store) Reactions(ctx context.Context, video string, r domain.Reaction) (int, error) {
	n, err := s.client.SCard(ctx, ReactionsKey(video, r)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r, err)
	}
	return int(n), nil
}

// Ping checks the Redis connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
