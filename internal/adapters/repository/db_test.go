package repository

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/summit/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupTestDB(t *testing.T) *sqlx.DB {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "summit_user"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "summit_db"),
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}

	_, err = Migrate(context.Background(), db)
	require.NoError(t, err, "Failed to migrate test database")
	return db
}

func cleanup(t *testing.T, db *sqlx.DB) {
	_, err := db.Exec("TRUNCATE TABLE billing_events, chat_messages, daily_metrics, workouts, plan_phases, plans, profiles CASCADE")
	require.NoError(t, err, "Failed to clean up database")
}

func seedProfile(t *testing.T, db *sqlx.DB, id string) *domain.Profile {
	p, err := domain.NewProfile(id, domain.ProfileFields{
		Email:           id + "@summit.test",
		Goal:            domain.GoalEndurance,
		ExperienceLevel: domain.ExperienceBeginner,
		DaysPerWeek:     3,
		Equipment:       []string{"bike", "dumbbells"},
		Timezone:        "Europe/Rome",
	})
	require.NoError(t, err)
	require.NoError(t, NewPostgresProfileRepository(db).Upsert(context.Background(), p))
	return p
}
