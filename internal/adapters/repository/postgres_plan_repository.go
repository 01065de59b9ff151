package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

type PostgresPlanRepository struct {
	db *sqlx.DB
}

func NewPostgresPlanRepository(db *sqlx.DB) *PostgresPlanRepository {
	return &PostgresPlanRepository{db: db}
}

type phaseRow struct {
	PlanID string `db:"plan_id"`
	domain.Phase
}

const planColumns = `id, user_id, name, goal, start_date, total_weeks, status, created_at, updated_at`

func (r *PostgresPlanRepository) loadPhases(ctx context.Context, q sqlx.QueryerContext, plans ...*domain.Plan) error {
	if len(plans) == 0 {
		return nil
	}

	ids := make([]string, 0, len(plans))
	byID := make(map[string]*domain.Plan, len(plans))
	for _, p := range plans {
		ids = append(ids, p.ID)
		byID[p.ID] = p
		p.Phases = []domain.Phase{}
	}

	var rows []phaseRow
	query := `
        SELECT plan_id, name, week_start, week_end, focus
        FROM plan_phases
        WHERE plan_id = ANY($1)
        ORDER BY plan_id, position`
	if err := sqlx.SelectContext(ctx, q, &rows, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("load phases: %w", err)
	}

	for _, row := range rows {
		if p, ok := byID[row.PlanID]; ok {
			p.Phases = append(p.Phases, row.Phase)
		}
	}
	return nil
}

func replacePhases(ctx context.Context, tx *sqlx.Tx, plan *domain.Plan) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM plan_phases WHERE plan_id = $1`, plan.ID); err != nil {
		return fmt.Errorf("clear phases: %w", err)
	}
	for i, ph := range plan.Phases {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO plan_phases (plan_id, position, name, week_start, week_end, focus)
            VALUES ($1, $2, $3, $4, $5, $6)`,
			plan.ID, i, ph.Name, ph.WeekStart, ph.WeekEnd, ph.Focus,
		)
		if err != nil {
			return fmt.Errorf("insert phase %d: %w", i, err)
		}
	}
	return nil
}

func upsertPlan(ctx context.Context, tx *sqlx.Tx, p *domain.Plan) error {
	_, err := tx.ExecContext(ctx, `
        INSERT INTO plans (`+planColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            goal = EXCLUDED.goal,
            start_date = EXCLUDED.start_date,
            total_weeks = EXCLUDED.total_weeks,
            status = EXCLUDED.status,
            updated_at = EXCLUDED.updated_at`,
		p.ID, p.UserID, p.Name, p.Goal, p.StartDate, p.TotalWeeks, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProfileNotFound
		}
		return fmt.Errorf("upsert plan: %w", err)
	}
	return replacePhases(ctx, tx, p)
}

func (r *PostgresPlanRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *PostgresPlanRepository) Create(ctx context.Context, p *domain.Plan) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		return upsertPlan(ctx, tx, p)
	})
}

func (r *PostgresPlanRepository) Update(ctx context.Context, p *domain.Plan) error {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM plans WHERE id = $1)`, p.ID); err != nil {
		return fmt.Errorf("existence check failed: %w", err)
	}
	if !exists {
		return domain.ErrPlanNotFound
	}
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		return upsertPlan(ctx, tx, p)
	})
}

func (r *PostgresPlanRepository) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	var p domain.Plan
	err := r.db.GetContext(ctx, &p, `SELECT `+planColumns+` FROM plans WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || pgErrorCode(err) == "22P02" {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	if err := r.loadPhases(ctx, r.db, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPlanRepository) GetActive(ctx context.Context, userID string) (*domain.Plan, error) {
	var p domain.Plan
	err := r.db.GetContext(ctx, &p,
		`SELECT `+planColumns+` FROM plans WHERE user_id = $1 AND status = $2`,
		userID, domain.PlanStatusActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoActivePlan
		}
		return nil, fmt.Errorf("get active plan: %w", err)
	}
	if err := r.loadPhases(ctx, r.db, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPlanRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Plan, error) {
	plans := []*domain.Plan{}
	err := r.db.SelectContext(ctx, &plans,
		`SELECT `+planColumns+` FROM plans WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	if err := r.loadPhases(ctx, r.db, plans...); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *PostgresPlanRepository) ListGenerating(ctx context.Context) ([]*domain.Plan, error) {
	plans := []*domain.Plan{}
	err := r.db.SelectContext(ctx, &plans,
		`SELECT `+planColumns+` FROM plans WHERE status = $1 ORDER BY created_at`,
		domain.PlanStatusGenerating,
	)
	if err != nil {
		return nil, fmt.Errorf("list generating plans: %w", err)
	}
	if err := r.loadPhases(ctx, r.db, plans...); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *PostgresPlanRepository) ActivateWithWorkouts(ctx context.Context, p *domain.Plan, workouts []*domain.Workout) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
            UPDATE plans SET status = $1, updated_at = NOW()
            WHERE user_id = $2 AND status = $3 AND id <> $4`,
			domain.PlanStatusArchived, p.UserID, domain.PlanStatusActive, p.ID,
		)
		if err != nil {
			return fmt.Errorf("archive previous plan: %w", err)
		}

		p.Status = domain.PlanStatusActive
		if err := upsertPlan(ctx, tx, p); err != nil {
			return err
		}

		if len(workouts) == 0 {
			return nil
		}
		if _, err := tx.NamedExecContext(ctx, insertWorkoutSQL, workouts); err != nil {
			return fmt.Errorf("insert plan workouts: %w", err)
		}
		return nil
	})
}
