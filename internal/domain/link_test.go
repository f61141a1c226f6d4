package domain

import "testing"

func TestAccountLinkHasPermission(t *testing.T) {
	link := &AccountLink{Permissions: []string{"krio/like", "kaleron/email"}}

	tests := []struct {
		name       string
		permission string
		expected   bool
	}{
		{name: "granted", permission: "krio/like", expected: true},
		{name: "second granted", permission: "kaleron/email", expected: true},
		{name: "not granted", permission: "krio/send-comment", expected: false},
		{name: "prefix only", permission: "krio", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := link.HasPermission(tt.permission); got != tt.expected {
				t.Errorf("HasPermission(%q) = %v, want %v", tt.permission, got, tt.expected)
			}
		})
	}
}

func TestReactionOpposite(t *testing.T) {
	if got := ReactionLike.Opposite(); got != ReactionDislike {
		t.Errorf("ReactionLike.Opposite() = %v, want %v", got, ReactionDislike)
	}
	if got := ReactionDislike.Opposite(); got != ReactionLike {
		t.Errorf("ReactionDislike.Opposite() = %v, want %v", got, ReactionLike)
	}
}
