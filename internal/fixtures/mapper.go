package fixtures

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/accountlink/internal/domain"
)

// MapLinks converts fixtures into domain links. Tokens are normalized to
// their canonical UUID form and must be unique.
func MapLinks(file *File) ([]*domain.AccountLink, error) {
	links := make([]*domain.AccountLink, 0, len(file.Links))
	seen := make(map[string]bool, len(file.Links))

	for i, f := range file.Links {
		token, err := uuid.Parse(f.Token)
		if err != nil {
			return nil, fmt.Errorf("link %d: invalid token: %w", i, err)
		}

		canonical := token.String()
		if seen[canonical] {
			return nil, fmt.Errorf("link %d: duplicate token %s", i, canonical)
		}
		seen[canonical] = true

		permissions := slices.Clone(f.Permissions)
		if permissions == nil {
			permissions = []string{}
		}

		links = append(links, &domain.AccountLink{
			Token:       canonical,
			Username:    f.Username,
			Email:       f.Email,
			Domain:      f.Domain,
			Permissions: permissions,
			CreatedAt:   f.CreatedAt.UTC(),
		})
	}

	return links, nil
}
