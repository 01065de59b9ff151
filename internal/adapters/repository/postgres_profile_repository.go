package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

const queryTimeout = 3 * time.Second

type PostgresProfileRepository struct {
	db *sqlx.DB
}

func NewPostgresProfileRepository(db *sqlx.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{
		db: db,
	}
}

type profileRow struct {
	domain.Profile
	Equipment pq.StringArray `db:"equipment"`
}

func (r profileRow) toDomain() *domain.Profile {
	p := r.Profile
	p.Equipment = []string(r.Equipment)
	if p.Equipment == nil {
		p.Equipment = []string{}
	}
	return &p
}

const profileColumns = `
    id, email, display_name, goal, experience_level, days_per_week, equipment,
    timezone, subscription_status, stripe_customer_id, onboarded_at, created_at, updated_at`

func (r *PostgresProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
        INSERT INTO profiles (
            id, email, display_name, goal, experience_level, days_per_week, equipment,
            timezone, subscription_status, onboarded_at, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        ON CONFLICT (id) DO UPDATE SET
            email = EXCLUDED.email,
            display_name = EXCLUDED.display_name,
            goal = EXCLUDED.goal,
            experience_level = EXCLUDED.experience_level,
            days_per_week = EXCLUDED.days_per_week,
            equipment = EXCLUDED.equipment,
            timezone = EXCLUDED.timezone,
            onboarded_at = COALESCE(profiles.onboarded_at, EXCLUDED.onboarded_at),
            updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Email, p.DisplayName, p.Goal, p.ExperienceLevel, p.DaysPerWeek, pq.Array(p.Equipment),
		p.Timezone, p.SubscriptionStatus, p.OnboardedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("repository: upsert profile failed: %w", err)
	}
	return nil
}

func (r *PostgresProfileRepository) get(ctx context.Context, where string, arg any) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var row profileRow
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE ` + where
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("repository: get profile failed: %w", err)
	}
	return row.toDomain(), nil
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	return r.get(ctx, "id = $1", id)
}

func (r *PostgresProfileRepository) GetByStripeCustomerID(ctx context.Context, customerID string) (*domain.Profile, error) {
	return r.get(ctx, "stripe_customer_id = $1", customerID)
}

// UpdateSubscription leaves the stored customer id alone when customerID is nil.
func (r *PostgresProfileRepository) UpdateSubscription(ctx context.Context, id, status string, customerID *string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
        UPDATE profiles SET
            subscription_status = $2,
            stripe_customer_id = COALESCE($3, stripe_customer_id),
            updated_at = NOW()
        WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, status, customerID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: customer already linked to another profile", domain.ErrInvalidArgument)
		}
		return fmt.Errorf("repository: update subscription failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
