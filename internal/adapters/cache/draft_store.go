package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

var _ domain.DraftStore = (*RedisDraftStore)(nil)

const DefaultDraftTTL = 30 * 24 * time.Hour

// RedisDraftStore keeps one onboarding draft per user. Every save refreshes
// the expiry, so abandoned drafts disappear on their own.
type RedisDraftStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDraftStore(rdb *redis.Client, ttl time.Duration) *RedisDraftStore {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &RedisDraftStore{rdb: rdb, ttl: ttl}
}

func draftKey(userID string) string {
	return fmt.Sprintf("onboarding:draft:%s", userID)
}

func (s *RedisDraftStore) Load(ctx context.Context, userID string) (*domain.OnboardingDraft, error) {
	val, err := s.rdb.Get(ctx, draftKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load onboarding draft: %w", err)
	}

	var draft domain.OnboardingDraft
	if err := json.Unmarshal(val, &draft); err != nil {
		s.rdb.Del(ctx, draftKey(userID))
		return nil, domain.ErrDraftNotFound
	}
	return &draft, nil
}

func (s *RedisDraftStore) Save(ctx context.Context, draft *domain.OnboardingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode onboarding draft: %w", err)
	}
	if err := s.rdb.Set(ctx, draftKey(draft.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save onboarding draft: %w", err)
	}
	return nil
}

func (s *RedisDraftStore) Clear(ctx context.Context, userID string) error {
	if err := s.rdb.Del(ctx, draftKey(userID)).Err(); err != nil {
		return fmt.Errorf("clear onboarding draft: %w", err)
	}
	return nil
}
