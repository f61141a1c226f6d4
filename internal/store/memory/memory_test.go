package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/MrSnakeDoc/accountlink/internal/domain"
	"github.com/MrSnakeDoc/accountlink/internal/store"
)

const token = "0b7a6c1e-4f0f-4c36-9d5c-2f3c1d8e9a10"

func TestSaveAndGetLink(t *testing.T) {
	ctx := context.Background()
	s := New()

	link := &domain.AccountLink{Token: token, Username: "alice", Permissions: []string{"krio/like"}}
	if err := s.SaveLinks(ctx, []*domain.AccountLink{link}); err != nil {
		t.Fatalf("SaveLinks() error = %v", err)
	}

	got, err := s.GetLink(ctx, token)
	if err != nil {
		t.Fatalf("GetLink() error = %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("GetLink() username = %q, want alice", got.Username)
	}

	// Returned links are copies
	got.Permissions[0] = "tampered"
	again, _ := s.GetLink(ctx, token)
	if again.Permissions[0] != "krio/like" {
		t.Errorf("GetLink() leaked internal state, permissions = %v", again.Permissions)
	}
}

func TestGetLinkNotFound(t *testing.T) {
	_, err := New().GetLink(context.Background(), "missing")
	if !errors.Is(err, store.ErrLinkNotFound) {
		t.Errorf("GetLink() error = %v, want ErrLinkNotFound", err)
	}
}

func TestDeleteLink(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.SaveLinks(ctx, []*domain.AccountLink{{Token: token}})

	if err := s.DeleteLink(ctx, token); err != nil {
		t.Fatalf("DeleteLink() error = %v", err)
	}
	if _, err := s.GetLink(ctx, token); !errors.Is(err, store.ErrLinkNotFound) {
		t.Errorf("GetLink() after delete error = %v, want ErrLinkNotFound", err)
	}
	if err := s.DeleteLink(ctx, token); !errors.Is(err, store.ErrLinkNotFound) {
		t.Errorf("second DeleteLink() error = %v, want ErrLinkNotFound", err)
	}
}

func TestCommentsKeepOrderAndDuplicates(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, c := range []string{"first", "second", "first"} {
		if err := s.AddComment(ctx, "v1", c); err != nil {
			t.Fatalf("AddComment() error = %v", err)
		}
	}

	comments, _ := s.Comments(ctx, "v1")
	want := []string{"first", "second", "first"}
	if len(comments) != len(want) {
		t.Fatalf("Comments() = %v, want %v", comments, want)
	}
	for i := range want {
		if comments[i] != want[i] {
			t.Errorf("Comments()[%d] = %q, want %q", i, comments[i], want[i])
		}
	}

	empty, _ := s.Comments(ctx, "v2")
	if empty == nil || len(empty) != 0 {
		t.Errorf("Comments() for unknown video = %#v, want empty slice", empty)
	}
}

func TestToggleReaction(t *testing.T) {
	ctx := context.Background()
	s := New()

	tests := []struct {
		name     string
		reaction domain.Reaction
		wantSet  bool
		likes    int
		dislikes int
	}{
		{name: "like", reaction: domain.ReactionLike, wantSet: true, likes: 1, dislikes: 0},
		{name: "like again clears", reaction: domain.ReactionLike, wantSet: false, likes: 0, dislikes: 0},
		{name: "dislike", reaction: domain.ReactionDislike, wantSet: true, likes: 0, dislikes: 1},
		{name: "like replaces dislike", reaction: domain.ReactionLike, wantSet: true, likes: 1, dislikes: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := s.ToggleReaction(ctx, "v1", "alice", tt.reaction)
			if err != nil {
				t.Fatalf("ToggleReaction() error = %v", err)
			}
			if set != tt.wantSet {
				t.Errorf("ToggleReaction() = %v, want %v", set, tt.wantSet)
			}
			if n, _ := s.Reactions(ctx, "v1", domain.ReactionLike); n != tt.likes {
				t.Errorf("likes = %d, want %d", n, tt.likes)
			}
			if n, _ := s.Reactions(ctx, "v1", domain.ReactionDislike); n != tt.dislikes {
				t.Errorf("dislikes = %d, want %d", n, tt.dislikes)
			}
		})
	}
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.SaveLinks(ctx, []*domain.AccountLink{{Token: token}})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.AddComment(ctx, "v1", "hello")
		}()
		go func() {
			defer wg.Done()
			_, _ = s.GetLink(ctx, token)
			_, _ = s.Comments(ctx, "v1")
		}()
	}
	wg.Wait()

	comments, _ := s.Comments(ctx, "v1")
	if len(comments) != 50 {
		t.Errorf("Comments() after concurrent writes = %d, want 50", len(comments))
	}
}
