package messaging

import (
	"context"
	"errors"

	"mentorin/server/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository on a pgx connection pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a repository backed by the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const messageColumns = `id, seq, sender_id, sender_name, sender_role, receiver_id, receiver_name, receiver_role, content, is_read, created_at`

func scanMessage(row pgx.Row, m *models.Message) error {
	return row.Scan(
		&m.ID, &m.Seq, &m.SenderID, &m.SenderName, &m.SenderRole,
		&m.ReceiverID, &m.ReceiverName, &m.ReceiverRole,
		&m.Content, &m.IsRead, &m.CreatedAt,
	)
}

func (r *PostgresRepository) InsertMessage(ctx context.Context, msg *models.Message) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (id, sender_id, sender_name, sender_role, receiver_id, receiver_name, receiver_role, content, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING seq
	`, msg.ID, msg.SenderID, msg.SenderName, msg.SenderRole,
		msg.ReceiverID, msg.ReceiverName, msg.ReceiverRole,
		msg.Content, msg.IsRead, msg.CreatedAt).Scan(&msg.Seq)

	if err != nil {
		return &StorageError{Op: "insert message", Err: err}
	}
	return nil
}

func (r *PostgresRepository) MessagesBetween(ctx context.Context, userA, userB string) ([]models.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at ASC, seq ASC
	`, userA, userB)
	if err != nil {
		return nil, &StorageError{Op: "query thread", Err: err}
	}
	defer rows.Close()

	return collectMessages(rows, "query thread")
}

func (r *PostgresRepository) MessagesInvolving(ctx context.Context, userID string) ([]models.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at ASC, seq ASC
	`, userID)
	if err != nil {
		return nil, &StorageError{Op: "query user messages", Err: err}
	}
	defer rows.Close()

	return collectMessages(rows, "query user messages")
}

func collectMessages(rows pgx.Rows, op string) ([]models.Message, error) {
	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := scanMessage(rows, &m); err != nil {
			return nil, &StorageError{Op: op, Err: err}
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: op, Err: err}
	}
	return messages, nil
}

func (r *PostgresRepository) MarkThreadRead(ctx context.Context, receiverID, senderID string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE messages SET is_read = TRUE
		WHERE receiver_id = $1 AND sender_id = $2 AND NOT is_read
	`, receiverID, senderID)
	if err != nil {
		return 0, &StorageError{Op: "mark thread read", Err: err}
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND NOT is_read
	`, userID).Scan(&count)
	if err != nil {
		return 0, &StorageError{Op: "count unread", Err: err}
	}
	return count, nil
}

func (r *PostgresRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash, role, profile_photo, created_at, updated_at
		FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Email, &user.Name, &user.Password, &user.Role,
		&user.ProfilePhoto, &user.CreatedAt, &user.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "get user", Err: err}
	}
	return &user, nil
}

func (r *PostgresRepository) UsersByID(ctx context.Context, ids []string) (map[string]models.User, error) {
	users := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, email, name, password_hash, role, profile_photo, created_at, updated_at
		FROM users WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, &StorageError{Op: "query users", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var user models.User
		err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.Password, &user.Role,
			&user.ProfilePhoto, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, &StorageError{Op: "query users", Err: err}
		}
		users[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "query users", Err: err}
	}
	return users, nil
}

func (r *PostgresRepository) SearchUsers(ctx context.Context, query, excludeUserID string, limit int) ([]models.UserSearchResult, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, role, profile_photo
		FROM users
		WHERE id <> $1 AND (name ILIKE $2 OR email ILIKE $2)
		ORDER BY name ASC, id ASC
		LIMIT $3
	`, excludeUserID, "%"+query+"%", limit)
	if err != nil {
		return nil, &StorageError{Op: "search users", Err: err}
	}
	defer rows.Close()

	results := []models.UserSearchResult{}
	for rows.Next() {
		var res models.UserSearchResult
		if err := rows.Scan(&res.ID, &res.Name, &res.Role, &res.ProfilePhoto); err != nil {
			return nil, &StorageError{Op: "search users", Err: err}
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "search users", Err: err}
	}
	return results, nil
}
