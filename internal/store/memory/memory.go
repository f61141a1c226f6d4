package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/MrSnakeDoc/accountlink/internal/domain"
	"github.com/MrSnakeDoc/accountlink/internal/store"
)

// Store provides in-memory storage for the sandbox.
// It is the default backend and the one used by tests.
type Store struct {
	mu        sync.RWMutex
	links     map[string]*domain.AccountLink      // token -> link
	comments  map[string][]string                 // video -> comments
	reactions map[reactionKey]map[string]struct{} // (video, reaction) -> usernames
}

type reactionKey struct {
	video    string
	reaction domain.Reaction
}

var _ store.Store = (*Store)(nil)

// New creates an empty memory store
func New() *Store {
	return &Store{
		links:     make(map[string]*domain.AccountLink),
		comments:  make(map[string][]string),
		reactions: make(map[reactionKey]map[string]struct{}),
	}
}

// SaveLinks adds or replaces links
func (s *Store) SaveLinks(_ context.Context, links []*domain.AccountLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, link := range links {
		cp := *link
		cp.Permissions = slices.Clone(link.Permissions)
		s.links[link.Token] = &cp
	}
	return nil
}

// GetLink returns a copy of the link stored for token
func (s *Store) GetLink(_ context.Context, token string) (*domain.AccountLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.links[token]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrLinkNotFound, token)
	}
	cp := *link
	cp.Permissions = slices.Clone(link.Permissions)
	return &cp, nil
}

// DeleteLink removes a link
func (s *Store) DeleteLink(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[token]; !ok {
		return fmt.Errorf("%w: %s", store.ErrLinkNotFound, token)
	}
	delete(s.links, token)
	return nil
}

// AddComment appends a comment to a video
func (s *Store) AddComment(_ context.Context, video, comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.comments[video] = append(s.comments[video], comment)
	return nil
}

// Comments returns the comments of a video, never nil
func (s *Store) Comments(_ context.Context, video string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]string, len(s.comments[video]))
	copy(comments, s.comments[video])
	return comments, nil
}

// ToggleReaction flips a reaction and clears its opposite
func (s *Store) ToggleReaction(_ context.Context, video, username string, r domain.Reaction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := reactionKey{video: video, reaction: r}
	voters := s.reactions[key]
	if _, ok := voters[username]; ok {
		delete(voters, username)
		return false, nil
	}

	if voters == nil {
		voters = make(map[string]struct{})
		s.reactions[key] = voters
	}
	voters[username] = struct{}{}
	delete(s.reactions[reactionKey{video: video, reaction: r.Opposite()}], username)
	return true, nil
}

// Reactions counts voters of a reaction on a video
func (s *Store) Reactions(_ context.Context, video string, r domain.Reaction) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.reactions[reactionKey{video: video, reaction: r}]), nil
}

// Ping always succeeds
func (s *Store) Ping(context.Context) error { return nil }
