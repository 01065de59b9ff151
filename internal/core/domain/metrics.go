package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMetricsNotFound  = errors.New("metrics not found")
	ErrInvalidScore     = errors.New("scores must be between 0 and 100")
	ErrInvalidHRV       = errors.New("hrv cannot be negative")
	ErrInvalidRestingHR = errors.New("resting heart rate must be between 20 and 250")
)

const DefaultMetricsSource = "manual"

// DailyMetrics holds optional wearable readings; at most one row per user per day.
type DailyMetrics struct {
	UserID        string    `json:"user_id" db:"user_id"`
	Date          time.Time `json:"date" db:"date"`
	HRV           *float64  `json:"hrv,omitempty" db:"hrv"`
	SleepScore    *int      `json:"sleep_score,omitempty" db:"sleep_score"`
	RecoveryScore *int      `json:"recovery_score,omitempty" db:"recovery_score"`
	RestingHR     *int      `json:"resting_hr,omitempty" db:"resting_hr"`
	Source        string    `json:"source" db:"source"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

func validScore(v *int) bool {
	return v == nil || (*v >= 0 && *v <= 100)
}

func NewDailyMetrics(userID string, date time.Time, hrv *float64, sleep, recovery, restingHR *int, source string) (*DailyMetrics, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrProfileInvalidID
	}
	if date.IsZero() {
		return nil, ErrInvalidArgument
	}
	if !validScore(sleep) || !validScore(recovery) {
		return nil, ErrInvalidScore
	}
	if hrv != nil && *hrv < 0 {
		return nil, ErrInvalidHRV
	}
	if restingHR != nil && (*restingHR < 20 || *restingHR > 250) {
		return nil, ErrInvalidRestingHR
	}
	if strings.TrimSpace(source) == "" {
		source = DefaultMetricsSource
	}

	now := time.Now().UTC()
	return &DailyMetrics{
		UserID:        userID,
		Date:          civil(date),
		HRV:           hrv,
		SleepScore:    sleep,
		RecoveryScore: recovery,
		RestingHR:     restingHR,
		Source:        strings.TrimSpace(source),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
