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

const metricsColumns = `user_id, date, hrv, sleep_score, recovery_score, resting_hr, source, created_at, updated_at`

type PostgresMetricsRepository struct {
	db *sqlx.DB
}

func NewPostgresMetricsRepository(db *sqlx.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) Upsert(ctx context.Context, m *domain.DailyMetrics) error {
	query := `
        INSERT INTO daily_metrics (` + metricsColumns + `)
        VALUES (:user_id, :date, :hrv, :sleep_score, :recovery_score, :resting_hr, :source, :created_at, :updated_at)
        ON CONFLICT (user_id, date) DO UPDATE SET
            hrv = EXCLUDED.hrv,
            sleep_score = EXCLUDED.sleep_score,
            recovery_score = EXCLUDED.recovery_score,
            resting_hr = EXCLUDED.resting_hr,
            source = EXCLUDED.source,
            updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProfileNotFound
		}
		return fmt.Errorf("upsert metrics: %w", err)
	}
	return nil
}

func (r *PostgresMetricsRepository) GetByDate(ctx context.Context, userID string, date time.Time) (*domain.DailyMetrics, error) {
	var m domain.DailyMetrics
	query := `SELECT ` + metricsColumns + ` FROM daily_metrics WHERE user_id = $1 AND date = $2::date`
	if err := r.db.GetContext(ctx, &m, query, userID, domain.FormatDate(date)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMetricsNotFound
		}
		return nil, fmt.Errorf("get metrics: %w", err)
	}
	return &m, nil
}

func (r *PostgresMetricsRepository) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailyMetrics, error) {
	out := []*domain.DailyMetrics{}
	query := `
        SELECT ` + metricsColumns + ` FROM daily_metrics
        WHERE user_id = $1 AND date BETWEEN $2::date AND $3::date
        ORDER BY date ASC`
	if err := r.db.SelectContext(ctx, &out, query, userID, domain.FormatDate(from), domain.FormatDate(to)); err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	return out, nil
}
