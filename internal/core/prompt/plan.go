package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

const PlanSystemPrompt = `You are Summit, an experienced endurance and strength coach.
You design periodized training plans. Reply with a single JSON object and nothing else.`

type PlanDraft struct {
	Name       string         `json:"name"`
	TotalWeeks int            `json:"total_weeks"`
	Phases     []domain.Phase `json:"phases"`
	Workouts   []DraftWorkout `json:"workouts"`
}

type DraftWorkout struct {
	Week            int    `json:"week"`
	Day             int    `json:"day"`
	WorkoutType     string `json:"workout_type"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
}

func workoutTypeList() string {
	return strings.Join([]string{
		domain.WorkoutTypeRun, domain.WorkoutTypeStrength, domain.WorkoutTypeCross,
		domain.WorkoutTypeMobility, domain.WorkoutTypeHIIT, domain.WorkoutTypeRest,
	}, ", ")
}

// BuildPlanRequest describes the athlete and the JSON contract of the reply.
func BuildPlanRequest(p *domain.Profile, start time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a training plan for this athlete.\n\n")
	fmt.Fprintf(&b, "Goal: %s\n", p.Goal)
	fmt.Fprintf(&b, "Experience: %s\n", p.ExperienceLevel)
	fmt.Fprintf(&b, "Training days per week: %d\n", p.DaysPerWeek)
	if len(p.Equipment) > 0 {
		fmt.Fprintf(&b, "Available equipment: %s\n", strings.Join(p.Equipment, ", "))
	} else {
		fmt.Fprintf(&b, "Available equipment: none (bodyweight only)\n")
	}
	fmt.Fprintf(&b, "Plan starts on Monday %s.\n\n", domain.FormatDate(start))

	fmt.Fprintf(&b, "Rules:\n")
	fmt.Fprintf(&b, "- total_weeks between 4 and %d.\n", domain.MaxPlanWeeks)
	fmt.Fprintf(&b, "- phases are ordered, contiguous and cover weeks 1..total_weeks exactly.\n")
	fmt.Fprintf(&b, "- one workout per day for every day of every week; day 1 is Monday, day 7 is Sunday.\n")
	fmt.Fprintf(&b, "- workout_type is one of: %s.\n\n", workoutTypeList())

	b.WriteString(`Respond with JSON shaped like:
{"name": "...", "total_weeks": 8,
 "phases": [{"name": "Base", "week_start": 1, "week_end": 3, "focus": "..."}],
 "workouts": [{"week": 1, "day": 1, "workout_type": "run", "title": "...", "description": "...", "duration_minutes": 40}]}`)

	return b.String()
}

func ParsePlanDraft(reply string) (*PlanDraft, error) {
	var draft PlanDraft
	if err := decode(reply, &draft); err != nil {
		return nil, err
	}
	if err := domain.ValidatePhases(draft.Phases, draft.TotalWeeks); err != nil {
		return nil, err
	}
	return &draft, nil
}

// Schedule places the draft onto plan dates. Days the model left empty
// become rest days so that every plan day has a record.
func (d *PlanDraft) Schedule(plan *domain.Plan) ([]*domain.Workout, error) {
	taken := make(map[string]bool)
	out := make([]*domain.Workout, 0, plan.TotalWeeks*7)

	for _, dw := range d.Workouts {
		date, err := plan.ScheduledDate(dw.Week, dw.Day)
		if err != nil {
			return nil, err
		}
		wType := strings.ToLower(strings.TrimSpace(dw.WorkoutType))
		w, err := domain.NewWorkout(plan.UserID, &plan.ID, date, wType, dw.Title, dw.Description, dw.DurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("week %d day %d: %w", dw.Week, dw.Day, err)
		}
		taken[domain.FormatDate(date)] = true
		out = append(out, w)
	}

	for week := 1; week <= plan.TotalWeeks; week++ {
		for day := 1; day <= 7; day++ {
			date, _ := plan.ScheduledDate(week, day)
			if taken[domain.FormatDate(date)] {
				continue
			}
			w, err := domain.NewWorkout(plan.UserID, &plan.ID, date, domain.WorkoutTypeRest, "", "", 0)
			if err != nil {
				return nil, err
			}
			out = append(out, w)
		}
	}

	return out, nil
}
