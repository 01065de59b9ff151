package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

const workoutColumns = `
    id, plan_id, user_id, scheduled_date, workout_type, title, description,
    duration_minutes, completed, completed_at, notes, version, created_at, updated_at`

const insertWorkoutSQL = `
    INSERT INTO workouts (` + workoutColumns + `) VALUES (
        :id, :plan_id, :user_id, :scheduled_date, :workout_type, :title, :description,
        :duration_minutes, :completed, :completed_at, :notes, 1, :created_at, :updated_at
    )`

type PostgresWorkoutRepository struct {
	db *sqlx.DB
}

func NewPostgresWorkoutRepository(db *sqlx.DB) *PostgresWorkoutRepository {
	return &PostgresWorkoutRepository{db: db}
}

func (r *PostgresWorkoutRepository) Create(ctx context.Context, w *domain.Workout) error {
	if _, err := r.db.NamedExecContext(ctx, insertWorkoutSQL, w); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProfileNotFound
		}
		return fmt.Errorf("failed to insert workout: %w", err)
	}
	w.Version = 1
	return nil
}

func (r *PostgresWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	var w domain.Workout
	err := r.db.GetContext(ctx, &w, `SELECT `+workoutColumns+` FROM workouts WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || pgErrorCode(err) == "22P02" {
			return nil, domain.ErrWorkoutNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &w, nil
}

// Update writes w only if the stored version still equals w.Version, then
// advances w.Version.
func (r *PostgresWorkoutRepository) Update(ctx context.Context, w *domain.Workout) error {
	query := `
        UPDATE workouts SET
            workout_type=$1, title=$2, description=$3, duration_minutes=$4,
            completed=$5, completed_at=$6, notes=$7,
            updated_at=NOW(), version = version + 1
        WHERE id=$8 AND version=$9
        RETURNING version, updated_at`

	row := r.db.QueryRowContext(ctx, query,
		w.WorkoutType, w.Title, w.Description, w.DurationMinutes,
		w.Completed, w.CompletedAt, w.Notes,
		w.ID, w.Version,
	)

	var newVersion int
	var newUpdatedAt time.Time
	if err := row.Scan(&newVersion, &newUpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var count int
			if checkErr := r.db.GetContext(ctx, &count, `SELECT count(*) FROM workouts WHERE id = $1`, w.ID); checkErr != nil {
				return fmt.Errorf("existence check failed: %w", checkErr)
			}
			if count == 0 {
				return domain.ErrWorkoutNotFound
			}
			return domain.ErrWorkoutConflict
		}
		return fmt.Errorf("update query failed: %w", err)
	}

	w.Version = newVersion
	w.UpdatedAt = newUpdatedAt
	return nil
}

func (r *PostgresWorkoutRepository) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Workout, error) {
	workouts := []*domain.Workout{}
	query := `
        SELECT ` + workoutColumns + ` FROM workouts
        WHERE user_id = $1 AND scheduled_date BETWEEN $2::date AND $3::date
        ORDER BY scheduled_date DESC, created_at ASC`

	if err := r.db.SelectContext(ctx, &workouts, query, userID, domain.FormatDate(from), domain.FormatDate(to)); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return workouts, nil
}

func (r *PostgresWorkoutRepository) ListByDate(ctx context.Context, userID string, date time.Time) ([]*domain.Workout, error) {
	return r.ListByDateRange(ctx, userID, date, date)
}
