package redis

import "github.com/MrSnakeDoc/accountlink/internal/domain"

const (
	// KeyPrefixLink is the prefix for account link keys
	KeyPrefixLink = "kaleron:link:"
	// KeyPrefixComments is the prefix for per-video comment lists
	KeyPrefixComments = "kaleron:comments:"
	// KeyPrefixReactions is the prefix for per-video reaction sets
	KeyPrefixReactions = "kaleron:reactions:"
)

// LinkKey returns the Redis key for a link by token
func LinkKey(token string) string {
	return KeyPrefixLink + token
}

// CommentsKey returns the Redis key of the comment list of a video
func CommentsKey(video string) string {
	return KeyPrefixComments + video
}

// ReactionsKey returns the Redis key of the set of usernames holding r on a video
func ReactionsKey(video string, r domain.Reaction) string {
	return KeyPrefixReactions + string(r) + ":" + video
}
