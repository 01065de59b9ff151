package domain

import (
	"fmt"
	"time"
)

// ReviewWindow is how long before the next plan week the review prompt shows.
const ReviewWindow = 24 * time.Hour

// ShouldShowReview reports whether now falls in the review window: the fixed
// 24 hours before the next plan week begins. The plan start date is read as
// a calendar date in now's location.
func ShouldShowReview(planStart time.Time, currentWeek, totalWeeks int, now time.Time) (bool, error) {
	if currentWeek < 0 {
		return false, fmt.Errorf("%w: current week %d", ErrInvalidArgument, currentWeek)
	}
	if totalWeeks < 1 {
		return false, fmt.Errorf("%w: total weeks %d", ErrInvalidArgument, totalWeeks)
	}
	if currentWeek == 0 || currentWeek >= totalWeeks {
		return false, nil
	}

	y, m, d := planStart.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	nextWeekStart := start.AddDate(0, 0, currentWeek*daysPerWeek)
	windowStart := nextWeekStart.Add(-ReviewWindow)

	return !now.Before(windowStart) && now.Before(nextWeekStart), nil
}
