package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

type PostgresBillingEventRepository struct {
	db *sqlx.DB
}

func NewPostgresBillingEventRepository(db *sqlx.DB) *PostgresBillingEventRepository {
	return &PostgresBillingEventRepository{db: db}
}

func (r *PostgresBillingEventRepository) MarkProcessed(ctx context.Context, e *domain.BillingEvent) error {
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO billing_events (id, type, user_id, customer_id, received_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (id) DO NOTHING`,
		e.ID, e.Type, e.UserID, e.CustomerID, e.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("record billing event: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEventAlreadyHandled
	}
	return nil
}

func (r *PostgresBillingEventRepository) Forget(ctx context.Context, eventID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM billing_events WHERE id = $1`, eventID); err != nil {
		return fmt.Errorf("forget billing event: %w", err)
	}
	return nil
}
