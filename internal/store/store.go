// Package store defines the persistence contract of the sandbox.
package store

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/accountlink/internal/domain"
)

// ErrLinkNotFound is returned when no link exists for a token.
var ErrLinkNotFound = errors.New("account link not found")

// Store keeps the sandbox's links, comments and reactions.
type Store interface {
	// SaveLinks upserts links (bulk operation).
	SaveLinks(ctx context.Context, links []*domain.AccountLink) error
	GetLink(ctx context.Context, token string) (*domain.AccountLink, error)
	DeleteLink(ctx context.Context, token string) error

	// AddComment appends comment to the comments of video.
	AddComment(ctx context.Context, video, comment string) error
	// Comments returns the comments of video in insertion order.
	Comments(ctx context.Context, video string) ([]string, error)

	// ToggleReaction flips the reaction of username on video and clears the
	// opposite one. It reports whether the reaction is set afterwards.
	ToggleReaction(ctx context.Context, video, username string, r domain.Reaction) (bool, error)
	// Reactions counts the accounts holding r on video.
	Reactions(ctx context.Context, video string, r domain.Reaction) (int, error)

	Ping(ctx context.Context) error
}
