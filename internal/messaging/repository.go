package messaging

import (
	"context"

	"mentorin/server/internal/models"
)

// Repository is the persistence contract the messaging core runs against.
// The production implementation is Postgres; tests use the in-memory one.
// Implementations wrap their own failures in StorageError so no driver
// types leak past this boundary.
type Repository interface {
	// InsertMessage appends msg and assigns its monotonic Seq.
	InsertMessage(ctx context.Context, msg *models.Message) error

	// MessagesBetween returns every message exchanged between the two
	// users, in either direction, ascending by (createdAt, seq).
	MessagesBetween(ctx context.Context, userA, userB string) ([]models.Message, error)

	// MessagesInvolving returns every message the user sent or received.
	MessagesInvolving(ctx context.Context, userID string) ([]models.Message, error)

	// MarkThreadRead flips is_read to true on every unread message from
	// senderID to receiverID and returns how many rows changed. The update
	// is a plain set-to-true, so concurrent calls commute.
	MarkThreadRead(ctx context.Context, receiverID, senderID string) (int64, error)

	// CountUnread counts unread messages addressed to the user across all
	// counterparts.
	CountUnread(ctx context.Context, userID string) (int, error)

	// GetUser returns the directory entry with the given ID, or nil if no
	// such user exists.
	GetUser(ctx context.Context, id string) (*models.User, error)

	// UsersByID returns the directory entries for the given IDs, keyed by
	// ID. Missing IDs are simply absent from the map.
	UsersByID(ctx context.Context, ids []string) (map[string]models.User, error)

	// SearchUsers matches name or email case-insensitively against the
	// query substring, excluding excludeUserID, capped at limit results.
	SearchUsers(ctx context.Context, query, excludeUserID string, limit int) ([]models.UserSearchResult, error)
}
