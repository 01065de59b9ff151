package domain

import "time"

// TrainingStats summarises adherence over a date range. Rest days are not
// counted as planned sessions.
type TrainingStats struct {
	StartDate      string     `json:"start_date"`
	EndDate        string     `json:"end_date"`
	Planned        int        `json:"planned"`
	Completed      int        `json:"completed"`
	CompletionRate float64    `json:"completion_rate"`
	TotalMinutes   int        `json:"total_minutes"`
	ByType         []TypeStat `json:"by_type"`
	DailyMinutes   []int      `json:"daily_minutes"`
}

type TypeStat struct {
	WorkoutType    string  `json:"workout_type"`
	Planned        int     `json:"planned"`
	Completed      int     `json:"completed"`
	Minutes        int     `json:"minutes"`
	CompletionRate float64 `json:"completion_rate"`
}

type StatsInput struct {
	UserID    string
	StartDate time.Time
	EndDate   time.Time
}
