package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

type PostgresChatRepository struct {
	db *sqlx.DB
}

func NewPostgresChatRepository(db *sqlx.DB) *PostgresChatRepository {
	return &PostgresChatRepository{db: db}
}

func (r *PostgresChatRepository) Create(ctx context.Context, msg *domain.ChatMessage) error {
	query := `
        INSERT INTO chat_messages (id, user_id, role, content, created_at)
        VALUES (:id, :user_id, :role, :content, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, msg); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProfileNotFound
		}
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

func (r *PostgresChatRepository) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.ChatMessage, error) {
	msgs := []*domain.ChatMessage{}
	query := `
        SELECT id, user_id, role, content, created_at FROM (
            SELECT id, user_id, role, content, created_at
            FROM chat_messages
            WHERE user_id = $1
            ORDER BY created_at DESC
            LIMIT $2
        ) recent
        ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &msgs, query, userID, limit); err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	return msgs, nil
}
