package domain

import (
	"slices"
	"time"
)

// AccountLink is the sandbox's record of one link token: the account it
// points at and what the link holder may do with it.
type AccountLink struct {
	// Token is the canonical UUID string of the link.
	Token string `json:"token"`

	Username string `json:"username"`
	Email    string `json:"email"`
	Domain   string `json:"domain"`

	// Permissions is served verbatim by the info endpoint, order kept.
	Permissions []string `json:"permissions"`

	// CreatedAt is served as "yyyy-MM-dd HH:mm:ss" in UTC.
	CreatedAt time.Time `json:"created_at"`
}

// HasPermission reports whether the link was granted permission.
func (l *AccountLink) HasPermission(permission string) bool {
	return slices.Contains(l.Permissions, permission)
}

// Reaction is a vote an account leaves on a video.
type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

// Opposite returns the reaction that is cleared when r is set.
func (r Reaction) Opposite() Reaction {
	if r == ReactionLike {
		return ReactionDislike
	}
	return ReactionLike
}
