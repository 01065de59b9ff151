package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

// CoachContext is the athlete snapshot given to the coach on every turn.
type CoachContext struct {
	Profile      *domain.Profile
	Plan         *domain.Plan
	WeekNumber   int
	Phase        *domain.Phase
	Streak       int
	Today        time.Time
	TodayWorkout *domain.Workout
	Metrics      *domain.DailyMetrics
	Upcoming     []*domain.Workout
}

func BuildCoachSystemPrompt(c CoachContext) string {
	var b strings.Builder

	b.WriteString("You are Summit, a supportive and knowledgeable fitness coach. ")
	b.WriteString("Keep answers short, practical and specific to the athlete below. ")
	b.WriteString("Never give medical diagnoses; suggest seeing a professional for pain or injury.\n\n")

	fmt.Fprintf(&b, "Today: %s\n", domain.FormatDisplayDate(c.Today))
	if p := c.Profile; p != nil {
		if p.DisplayName != "" {
			fmt.Fprintf(&b, "Athlete: %s\n", p.DisplayName)
		}
		fmt.Fprintf(&b, "Goal: %s, experience: %s, %d days/week\n", p.Goal, p.ExperienceLevel, p.DaysPerWeek)
	}

	if c.Plan != nil {
		fmt.Fprintf(&b, "Plan: %s, week %d of %d", c.Plan.Name, c.WeekNumber, c.Plan.TotalWeeks)
		if c.Phase != nil {
			fmt.Fprintf(&b, " (%s phase)", c.Phase.Name)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("Plan: none yet\n")
	}

	fmt.Fprintf(&b, "Current streak: %d days\n", c.Streak)

	if w := c.TodayWorkout; w != nil {
		status := "not done yet"
		if w.Completed {
			status = "completed"
		}
		fmt.Fprintf(&b, "Today's workout: %s (%s, %d min, %s)\n", w.Title, w.WorkoutType, w.DurationMinutes, status)
	} else {
		b.WriteString("Today's workout: nothing scheduled\n")
	}

	if m := c.Metrics; m != nil {
		b.WriteString("Today's readiness:")
		if m.SleepScore != nil {
			fmt.Fprintf(&b, " sleep %d", *m.SleepScore)
		}
		if m.RecoveryScore != nil {
			fmt.Fprintf(&b, " recovery %d", *m.RecoveryScore)
		}
		if m.HRV != nil {
			fmt.Fprintf(&b, " hrv %.0fms", *m.HRV)
		}
		b.WriteString("\n")
	}

	if len(c.Upcoming) > 0 {
		b.WriteString("Upcoming:\n")
		writeWorkouts(&b, c.Upcoming)
	}

	return b.String()
}

func writeWorkouts(b *strings.Builder, workouts []*domain.Workout) {
	for _, w := range workouts {
		fmt.Fprintf(b, "- %s: %s (%s, %d min)\n", domain.FormatDate(w.ScheduledDate), w.Title, w.WorkoutType, w.DurationMinutes)
	}
}

const (
	AdaptActionUpdate = "update"
	AdaptActionRemove = "remove"
)

type Adaptation struct {
	Summary string        `json:"summary"`
	Changes []AdaptChange `json:"changes"`
}

type AdaptChange struct {
	Date            string `json:"date"`
	Action          string `json:"action"`
	WorkoutType     string `json:"workout_type"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
}

// BuildAdaptRequest asks for a change-set limited to the listed window.
func BuildAdaptRequest(request string, from, to time.Time, workouts []*domain.Workout) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The athlete asks to adjust their schedule between %s and %s.\n",
		domain.FormatDate(from), domain.FormatDate(to))
	fmt.Fprintf(&b, "Request: %s\n\n", strings.TrimSpace(request))

	if len(workouts) == 0 {
		b.WriteString("Nothing is scheduled in that window.\n")
	} else {
		b.WriteString("Currently scheduled:\n")
		writeWorkouts(&b, workouts)
	}

	fmt.Fprintf(&b, "\nOnly change dates inside the window. workout_type is one of: %s.\n", workoutTypeList())
	b.WriteString(`Use action "remove" to turn a day into rest, "update" to replace or add a workout.
Respond with JSON only:
{"summary": "one sentence for the athlete",
 "changes": [{"date": "YYYY-MM-DD", "action": "update", "workout_type": "run", "title": "...", "description": "...", "duration_minutes": 30}]}`)

	return b.String()
}

func ParseAdaptation(reply string) (*Adaptation, error) {
	var a Adaptation
	if err := decode(reply, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
