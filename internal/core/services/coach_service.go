package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/summit/internal/core/domain"
	"github.com/comitanigiacomo/summit/internal/core/prompt"
)

const (
	// ChatHistoryLimit is how many past messages go back to the model.
	ChatHistoryLimit = 20

	DefaultMessagesLimit = 50
	MaxMessagesLimit     = 200

	// AdaptWindowDays is the span a schedule adaptation may touch, today included.
	AdaptWindowDays = 7
)

type CoachService struct {
	chats     domain.ChatRepository
	workouts  domain.WorkoutRepository
	llm       domain.LanguageModel
	dashboard *DashboardService
	logger    *zap.Logger
}

func NewCoachService(chats domain.ChatRepository, workouts domain.WorkoutRepository, llm domain.LanguageModel, dashboard *DashboardService, logger *zap.Logger) *CoachService {
	return &CoachService{
		chats:     chats,
		workouts:  workouts,
		llm:       llm,
		dashboard: dashboard,
		logger:    logger,
	}
}

type ChatExchange struct {
	Message *domain.ChatMessage `json:"message"`
	Reply   *domain.ChatMessage `json:"reply"`
}

type AdaptResult struct {
	Summary  string            `json:"summary"`
	Workouts []*domain.Workout `json:"workouts"`
	Skipped  int               `json:"skipped"`
}

func (s *CoachService) snapshot(ctx context.Context, userID string, now time.Time) (prompt.CoachContext, error) {
	d, err := s.dashboard.Get(ctx, userID, now)
	if err != nil {
		return prompt.CoachContext{}, err
	}

	var upcoming []*domain.Workout
	for _, w := range d.Week.Workouts {
		if domain.FormatDate(w.ScheduledDate) >= d.Date {
			upcoming = append(upcoming, w)
		}
	}

	return prompt.CoachContext{
		Profile:      d.profile,
		Plan:         d.Plan,
		WeekNumber:   d.WeekNumber,
		Phase:        d.Phase,
		Streak:       d.Streak,
		Today:        d.local,
		TodayWorkout: d.TodayWorkout,
		Metrics:      d.TodayMetrics,
		Upcoming:     upcoming,
	}, nil
}

// Chat stores the user's message, asks the coach and stores the reply.
func (s *CoachService) Chat(ctx context.Context, userID, content string, now time.Time) (*ChatExchange, error) {
	msg, err := domain.NewChatMessage(userID, domain.ChatRoleUser, content)
	if err != nil {
		return nil, err
	}

	cc, err := s.snapshot(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	if err := s.chats.Create(ctx, msg); err != nil {
		return nil, err
	}

	history, err := s.chats.ListRecent(ctx, userID, ChatHistoryLimit)
	if err != nil {
		return nil, err
	}

	text, err := s.llm.Complete(ctx, prompt.BuildCoachSystemPrompt(cc), history)
	if err != nil {
		return nil, fmt.Errorf("coach reply: %w", err)
	}

	reply, err := domain.NewChatMessage(userID, domain.ChatRoleAssistant, text)
	if err != nil {
		return nil, err
	}
	if err := s.chats.Create(ctx, reply); err != nil {
		return nil, err
	}

	return &ChatExchange{Message: msg, Reply: reply}, nil
}

func (s *CoachService) Messages(ctx context.Context, userID string, limit int) ([]*domain.ChatMessage, error) {
	if limit <= 0 {
		limit = DefaultMessagesLimit
	}
	if limit > MaxMessagesLimit {
		limit = MaxMessagesLimit
	}
	return s.chats.ListRecent(ctx, userID, limit)
}

// Adapt asks the coach for a change-set over the next AdaptWindowDays and
// applies it. Changes outside the window or that fail validation are skipped.
func (s *CoachService) Adapt(ctx context.Context, userID, request string, now time.Time) (*AdaptResult, error) {
	msg, err := domain.NewChatMessage(userID, domain.ChatRoleUser, request)
	if err != nil {
		return nil, err
	}

	cc, err := s.snapshot(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	from := domain.TruncateDay(cc.Today)
	to := from.AddDate(0, 0, AdaptWindowDays-1)

	scheduled, err := s.workouts.ListByDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	chronological := make([]*domain.Workout, 0, len(scheduled))
	for i := len(scheduled) - 1; i >= 0; i-- {
		chronological = append(chronological, scheduled[i])
	}

	ask := &domain.ChatMessage{
		UserID:  userID,
		Role:    domain.ChatRoleUser,
		Content: prompt.BuildAdaptRequest(request, from, to, chronological),
	}
	text, err := s.llm.Complete(ctx, prompt.BuildCoachSystemPrompt(cc), []*domain.ChatMessage{ask})
	if err != nil {
		return nil, fmt.Errorf("coach adaptation: %w", err)
	}

	adaptation, err := prompt.ParseAdaptation(text)
	if err != nil {
		return nil, err
	}

	var planID *string
	if cc.Plan != nil {
		planID = &cc.Plan.ID
	}

	result := &AdaptResult{Summary: strings.TrimSpace(adaptation.Summary)}
	for _, change := range adaptation.Changes {
		w, err := s.applyChange(ctx, userID, planID, change, from, to, chronological, result.Summary)
		if err != nil {
			s.logger.Warn("skipping schedule change",
				zap.String("user_id", userID),
				zap.String("date", change.Date),
				zap.String("action", change.Action),
				zap.Error(err),
			)
			result.Skipped++
			continue
		}
		if w != nil {
			result.Workouts = append(result.Workouts, w)
		}
	}

	s.record(ctx, msg, result)
	return result, nil
}

func (s *CoachService) applyChange(
	ctx context.Context,
	userID string,
	planID *string,
	change prompt.AdaptChange,
	from, to time.Time,
	scheduled []*domain.Workout,
	summary string,
) (*domain.Workout, error) {
	date, err := domain.ParseDate(change.Date)
	if err != nil {
		return nil, err
	}
	if key := domain.FormatDate(date); key < domain.FormatDate(from) || key > domain.FormatDate(to) {
		return nil, fmt.Errorf("%w: %s is outside the adaptation window", domain.ErrInvalidArgument, change.Date)
	}

	existing := pickToday(scheduled, date)

	switch strings.ToLower(change.Action) {
	case prompt.AdaptActionRemove:
		if existing == nil || existing.IsRest() {
			return nil, nil
		}
		existing.ConvertToRest(summary)
		if err := s.workouts.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil

	case prompt.AdaptActionUpdate:
		wType := strings.ToLower(strings.TrimSpace(change.WorkoutType))
		if existing != nil {
			if err := existing.Update(wType, change.Title, change.Description, change.DurationMinutes); err != nil {
				return nil, err
			}
			if err := s.workouts.Update(ctx, existing); err != nil {
				return nil, err
			}
			return existing, nil
		}

		w, err := domain.NewWorkout(userID, planID, date, wType, change.Title, change.Description, change.DurationMinutes)
		if err != nil {
			return nil, err
		}
		if err := s.workouts.Create(ctx, w); err != nil {
			return nil, err
		}
		return w, nil

	default:
		return nil, fmt.Errorf("%w: unknown action %q", domain.ErrInvalidArgument, change.Action)
	}
}

// record keeps the adaptation in the chat transcript. Failures are logged only.
func (s *CoachService) record(ctx context.Context, request *domain.ChatMessage, result *AdaptResult) {
	if err := s.chats.Create(ctx, request); err != nil {
		s.logger.Warn("failed to store adaptation request", zap.Error(err))
		return
	}
	if result.Summary == "" {
		return
	}
	reply, err := domain.NewChatMessage(request.UserID, domain.ChatRoleAssistant, result.Summary)
	if err != nil {
		return
	}
	if err := s.chats.Create(ctx, reply); err != nil {
		s.logger.Warn("failed to store adaptation summary", zap.Error(err))
	}
}
