package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

// In-memory repositories hold copies of what they are given, so callers can
// mutate their values freely, like with a database.

type InMemoryProfileRepository struct {
	store map[string]domain.Profile

	mu sync.RWMutex
}

func NewInMemoryProfileRepository() *InMemoryProfileRepository {
	return &InMemoryProfileRepository{
		store: make(map[string]domain.Profile),
	}
}

func (r *InMemoryProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *p
	if old, ok := r.store[p.ID]; ok {
		clone.SubscriptionStatus = old.SubscriptionStatus
		clone.StripeCustomerID = old.StripeCustomerID
		if old.OnboardedAt != nil {
			clone.OnboardedAt = old.OnboardedAt
		}
	}
	r.store[p.ID] = clone
	return nil
}

func (r *InMemoryProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.store[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &p, nil
}

func (r *InMemoryProfileRepository) GetByStripeCustomerID(ctx context.Context, customerID string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.store {
		if p.StripeCustomerID != nil && *p.StripeCustomerID == customerID {
			return &p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r *InMemoryProfileRepository) UpdateSubscription(ctx context.Context, id, status string, customerID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.store[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.SubscriptionStatus = status
	if customerID != nil {
		c := *customerID
		p.StripeCustomerID = &c
	}
	p.UpdatedAt = time.Now().UTC()
	r.store[id] = p
	return nil
}

type InMemoryPlanRepository struct {
	store    map[string]domain.Plan
	workouts *InMemoryWorkoutRepository

	mu sync.RWMutex
}

// NewInMemoryPlanRepository stores activated plan workouts in workouts.
func NewInMemoryPlanRepository(workouts *InMemoryWorkoutRepository) *InMemoryPlanRepository {
	return &InMemoryPlanRepository{
		store:    make(map[string]domain.Plan),
		workouts: workouts,
	}
}

func clonePlan(p domain.Plan) *domain.Plan {
	p.Phases = append([]domain.Phase(nil), p.Phases...)
	return &p
}

func (r *InMemoryPlanRepository) Create(ctx context.Context, p *domain.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[p.ID] = *clonePlan(*p)
	return nil
}

func (r *InMemoryPlanRepository) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.store[id]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	return clonePlan(p), nil
}

func (r *InMemoryPlanRepository) GetActive(ctx context.Context, userID string) (*domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.store {
		if p.UserID == userID && p.Status == domain.PlanStatusActive {
			return clonePlan(p), nil
		}
	}
	return nil, domain.ErrNoActivePlan
}

func (r *InMemoryPlanRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := []*domain.Plan{}
	for _, p := range r.store {
		if p.UserID == userID {
			plans = append(plans, clonePlan(p))
		}
	}

	sort.Slice(plans, func(i, j int) bool {
		return plans[i].CreatedAt.After(plans[j].CreatedAt)
	})

	return plans, nil
}

func (r *InMemoryPlanRepository) ListGenerating(ctx context.Context) ([]*domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := []*domain.Plan{}
	for _, p := range r.store {
		if p.Status == domain.PlanStatusGenerating {
			plans = append(plans, clonePlan(p))
		}
	}

	sort.Slice(plans, func(i, j int) bool {
		return plans[i].CreatedAt.Before(plans[j].CreatedAt)
	})

	return plans, nil
}

func (r *InMemoryPlanRepository) Update(ctx context.Context, p *domain.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[p.ID]; !ok {
		return domain.ErrPlanNotFound
	}
	r.store[p.ID] = *clonePlan(*p)
	return nil
}

func (r *InMemoryPlanRepository) ActivateWithWorkouts(ctx context.Context, p *domain.Plan, workouts []*domain.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, other := range r.store {
		if other.UserID == p.UserID && other.Status == domain.PlanStatusActive && id != p.ID {
			other.Status = domain.PlanStatusArchived
			r.store[id] = other
		}
	}

	p.Status = domain.PlanStatusActive
	r.store[p.ID] = *clonePlan(*p)

	for _, w := range workouts {
		if err := r.workouts.Create(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

type InMemoryWorkoutRepository struct {
	store map[string]domain.Workout

	mu sync.RWMutex
}

func NewInMemoryWorkoutRepository() *InMemoryWorkoutRepository {
	return &InMemoryWorkoutRepository{
		store: make(map[string]domain.Workout),
	}
}

func (r *InMemoryWorkoutRepository) Create(ctx context.Context, w *domain.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w.Version = 1
	r.store[w.ID] = *w
	return nil
}

func (r *InMemoryWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.store[id]
	if !ok {
		return nil, domain.ErrWorkoutNotFound
	}
	return &w, nil
}

func (r *InMemoryWorkoutRepository) Update(ctx context.Context, w *domain.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[w.ID]
	if !ok {
		return domain.ErrWorkoutNotFound
	}
	if stored.Version != w.Version {
		return domain.ErrWorkoutConflict
	}

	w.Version++
	w.UpdatedAt = time.Now().UTC()
	r.store[w.ID] = *w
	return nil
}

func (r *InMemoryWorkoutRepository) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lo, hi := domain.FormatDate(from), domain.FormatDate(to)
	workouts := []*domain.Workout{}
	for _, w := range r.store {
		key := domain.FormatDate(w.ScheduledDate)
		if w.UserID == userID && key >= lo && key <= hi {
			clone := w
			workouts = append(workouts, &clone)
		}
	}

	sort.SliceStable(workouts, func(i, j int) bool {
		if !workouts[i].ScheduledDate.Equal(workouts[j].ScheduledDate) {
			return workouts[i].ScheduledDate.After(workouts[j].ScheduledDate)
		}
		return workouts[i].CreatedAt.Before(workouts[j].CreatedAt)
	})

	return workouts, nil
}

func (r *InMemoryWorkoutRepository) ListByDate(ctx context.Context, userID string, date time.Time) ([]*domain.Workout, error) {
	return r.ListByDateRange(ctx, userID, date, date)
}

type InMemoryMetricsRepository struct {
	store map[string]domain.DailyMetrics

	mu sync.RWMutex
}

func NewInMemoryMetricsRepository() *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{
		store: make(map[string]domain.DailyMetrics),
	}
}

func metricsKey(userID string, date time.Time) string {
	return userID + "|" + domain.FormatDate(date)
}

func (r *InMemoryMetricsRepository) Upsert(ctx context.Context, m *domain.DailyMetrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := metricsKey(m.UserID, m.Date)
	if old, ok := r.store[key]; ok {
		m.CreatedAt = old.CreatedAt
	}
	r.store[key] = *m
	return nil
}

func (r *InMemoryMetricsRepository) GetByDate(ctx context.Context, userID string, date time.Time) (*domain.DailyMetrics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.store[metricsKey(userID, date)]
	if !ok {
		return nil, domain.ErrMetricsNotFound
	}
	return &m, nil
}

func (r *InMemoryMetricsRepository) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailyMetrics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lo, hi := domain.FormatDate(from), domain.FormatDate(to)
	out := []*domain.DailyMetrics{}
	for _, m := range r.store {
		key := domain.FormatDate(m.Date)
		if m.UserID == userID && key >= lo && key <= hi {
			clone := m
			out = append(out, &clone)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return out, nil
}

type InMemoryChatRepository struct {
	messages []domain.ChatMessage

	mu sync.RWMutex
}

func NewInMemoryChatRepository() *InMemoryChatRepository {
	return &InMemoryChatRepository{}
}

func (r *InMemoryChatRepository) Create(ctx context.Context, msg *domain.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, *msg)
	return nil
}

func (r *InMemoryChatRepository) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var mine []*domain.ChatMessage
	for _, m := range r.messages {
		if m.UserID == userID {
			clone := m
			mine = append(mine, &clone)
		}
	}
	if len(mine) > limit {
		mine = mine[len(mine)-limit:]
	}
	if mine == nil {
		mine = []*domain.ChatMessage{}
	}
	return mine, nil
}

type InMemoryBillingEventRepository struct {
	seen map[string]bool

	mu sync.Mutex
}

func NewInMemoryBillingEventRepository() *InMemoryBillingEventRepository {
	return &InMemoryBillingEventRepository{
		seen: make(map[string]bool),
	}
}

func (r *InMemoryBillingEventRepository) MarkProcessed(ctx context.Context, e *domain.BillingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seen[e.ID] {
		return domain.ErrEventAlreadyHandled
	}
	r.seen[e.ID] = true
	return nil
}

func (r *InMemoryBillingEventRepository) Forget(ctx context.Context, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.seen, eventID)
	return nil
}

// InMemoryDraftStore is the process-local onboarding draft store used when
// Redis is not configured.
type InMemoryDraftStore struct {
	drafts map[string]domain.OnboardingDraft

	mu sync.RWMutex
}

func NewInMemoryDraftStore() *InMemoryDraftStore {
	return &InMemoryDraftStore{
		drafts: make(map[string]domain.OnboardingDraft),
	}
}

func (s *InMemoryDraftStore) Load(ctx context.Context, userID string) (*domain.OnboardingDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[userID]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	return &d, nil
}

func (s *InMemoryDraftStore) Save(ctx context.Context, draft *domain.OnboardingDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts[draft.UserID] = *draft
	return nil
}

func (s *InMemoryDraftStore) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, userID)
	return nil
}
