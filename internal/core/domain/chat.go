package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyMessage    = errors.New("message cannot be empty")
	ErrMessageTooLong  = errors.New("message is too long (max 4000 chars)")
	ErrInvalidChatRole = errors.New("invalid chat role")
)

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	MaxMessageLen     = 4000
)

type ChatMessage struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Role      string    `json:"role" db:"role"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func NewChatMessage(userID, role, content string) (*ChatMessage, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrProfileInvalidID
	}
	if role != ChatRoleUser && role != ChatRoleAssistant {
		return nil, ErrInvalidChatRole
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if len(content) > MaxMessageLen && role == ChatRoleUser {
		return nil, ErrMessageTooLong
	}

	return &ChatMessage{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}, nil
}
