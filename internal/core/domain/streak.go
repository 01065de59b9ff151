package domain

import "time"

// StreakWindowDays bounds how far back the streak walk looks.
const StreakWindowDays = 90

type dayStatus int

const (
	dayUnscheduled dayStatus = iota
	dayRest
	dayMissed
	dayCompleted
)

// mergeDays folds a workout history into one status per calendar date.
// A non-rest workout outranks a rest entry on the same date, and one
// completed non-rest workout marks the whole date completed.
func mergeDays(history []*Workout) map[string]dayStatus {
	days := make(map[string]dayStatus, len(history))
	for _, w := range history {
		if w == nil {
			continue
		}
		key := dateKey(w.ScheduledDate)
		current := days[key]

		switch {
		case w.IsRest():
			if current == dayUnscheduled {
				days[key] = dayRest
			}
		case w.Completed:
			days[key] = dayCompleted
		case current != dayCompleted:
			days[key] = dayMissed
		}
	}
	return days
}

// CalculateStreak counts consecutive qualifying days walking back from
// yesterday; today is skipped because it may still be in progress.
//
// Rest days and completed workouts extend the streak, a missed workout ends
// it. A day with no record ends an active streak but is skipped while the
// streak is still zero.
func CalculateStreak(history []*Workout, today time.Time) int {
	if len(history) == 0 {
		return 0
	}

	days := mergeDays(history)
	day := civil(today)
	streak := 0

	for i := 1; i <= StreakWindowDays; i++ {
		switch days[dateKey(day.AddDate(0, 0, -i))] {
		case dayRest, dayCompleted:
			streak++
		case dayMissed:
			return streak
		default:
			if streak > 0 {
				return streak
			}
		}
	}

	return streak
}
