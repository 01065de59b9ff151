package workers

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
	DefaultQueueSize  = 100
	DefaultJobTimeout = 2 * time.Minute
)

type PlanRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	ListGenerating(ctx context.Context) ([]*domain.Plan, error)
	Update(ctx context.Context, plan *domain.Plan) error
	ActivateWithWorkouts(ctx context.Context, plan *domain.Plan, workouts []*domain.Workout) error
}

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
}

type PlanJob struct {
	PlanID string
}

// PlanWorker authors generating plans with the language model, one job at a time.
type PlanWorker struct {
	planRepo    PlanRepository
	profileRepo ProfileRepository
	llm         domain.LanguageModel
	logger      *zap.Logger
	jobs        chan PlanJob
	timeout     time.Duration
}

func NewPlanWorker(pRepo PlanRepository, prRepo ProfileRepository, llm domain.LanguageModel, logger *zap.Logger, queueSize int, timeout time.Duration) *PlanWorker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}
	return &PlanWorker{
		planRepo:    pRepo,
		profileRepo: prRepo,
		llm:         llm,
		logger:      logger,
		jobs:        make(chan PlanJob, queueSize),
		timeout:     timeout,
	}
}

// Start requeues plans left generating by a previous run, then consumes the
// queue until ctx is done.
func (w *PlanWorker) Start(ctx context.Context) {
	w.Resume(ctx)

	go func() {
		w.logger.Info("plan worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.logger.Info("plan worker shutting down")
				return
			}
		}
	}()
}

// Resume queues every plan still generating and fails the ones that do not
// fit in the queue. It returns the number queued.
func (w *PlanWorker) Resume(ctx context.Context) int {
	plans, err := w.planRepo.ListGenerating(ctx)
	if err != nil {
		w.logger.Error("failed to list generating plans", zap.Error(err))
		return 0
	}

	queued := 0
	for _, plan := range plans {
		if w.Enqueue(plan.ID) {
			queued++
			continue
		}
		plan.Fail()
		if err := w.planRepo.Update(ctx, plan); err != nil {
			w.logger.Error("failed to mark unqueued plan as failed", zap.String("plan_id", plan.ID), zap.Error(err))
		}
	}

	if len(plans) > 0 {
		w.logger.Info("resumed generating plans", zap.Int("queued", queued), zap.Int("failed", len(plans)-queued))
	}
	return queued
}

// Enqueue never blocks; it reports false when the queue is full.
func (w *PlanWorker) Enqueue(planID string) bool {
	select {
	case w.jobs <- PlanJob{PlanID: planID}:
		return true
	default:
		w.logger.Warn("plan queue full, dropping job", zap.String("plan_id", planID))
		return false
	}
}

func (w *PlanWorker) processJob(ctx context.Context, job PlanJob) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	log := w.logger.With(zap.String("plan_id", job.PlanID))

	plan, err := w.planRepo.GetByID(ctx, job.PlanID)
	if err != nil {
		log.Error("failed to load plan", zap.Error(err))
		return
	}
	if plan.Status != domain.PlanStatusGenerating {
		log.Debug("plan no longer generating, skipping", zap.String("status", plan.Status))
		return
	}

	workouts, err := w.author(ctx, plan)
	if err != nil {
		log.Error("plan generation failed", zap.Error(err))
		plan.Fail()
		if uerr := w.planRepo.Update(context.WithoutCancel(ctx), plan); uerr != nil {
			log.Error("failed to mark plan as failed", zap.Error(uerr))
		}
		return
	}

	plan.Activate()
	if err := w.planRepo.ActivateWithWorkouts(ctx, plan, workouts); err != nil {
		log.Error("failed to activate plan", zap.Error(err))
		plan.Fail()
		if uerr := w.planRepo.Update(context.WithoutCancel(ctx), plan); uerr != nil {
			log.Error("failed to mark plan as failed", zap.Error(uerr))
		}
		return
	}

	log.Info("plan generated",
		zap.String("name", plan.Name),
		zap.Int("weeks", plan.TotalWeeks),
		zap.Int("workouts", len(workouts)),
	)
}

// author fills the plan from the model's draft and returns its workouts.
func (w *PlanWorker) author(ctx context.Context, plan *domain.Plan) ([]*domain.Workout, error) {
	profile, err := w.profileRepo.GetByID(ctx, plan.UserID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	request := &domain.ChatMessage{
		UserID:  plan.UserID,
		Role:    domain.ChatRoleUser,
		Content: prompt.BuildPlanRequest(profile, plan.StartDate),
	}
	reply, err := w.llm.Complete(ctx, prompt.PlanSystemPrompt, []*domain.ChatMessage{request})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPlanGenerationFailed, err)
	}

	draft, err := prompt.ParsePlanDraft(reply)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPlanGenerationFailed, err)
	}
	if draft.TotalWeeks > domain.MaxPlanWeeks {
		return nil, domain.ErrInvalidTotalWeeks
	}

	if name := strings.TrimSpace(draft.Name); name != "" {
		plan.Name = name
	}
	plan.TotalWeeks = draft.TotalWeeks
	plan.Phases = draft.Phases

	return draft.Schedule(plan)
}
