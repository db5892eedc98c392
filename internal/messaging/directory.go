package messaging

import (
	"context"
	"strings"
	"unicode/utf8"

	"mentorin/server/internal/models"
)

const (
	// Queries shorter than this return nothing rather than scanning the
	// whole directory.
	minQueryLength = 2

	// Search results are capped; the UI only needs enough to pick a
	// recipient from.
	maxSearchResults = 20
)

// Directory finds candidate recipients for starting a new conversation.
type Directory struct {
	repo Repository
}

// NewDirectory creates a directory search over the given repository.
func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

// Search matches name and email case-insensitively against the query
// substring, across all roles, excluding the requesting user.
func (d *Directory) Search(ctx context.Context, query, excludeUserID string) ([]models.UserSearchResult, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minQueryLength {
		return []models.UserSearchResult{}, nil
	}
	return d.repo.SearchUsers(ctx, query, excludeUserID, maxSearchResults)
}
