package domain

import "math/rand/v2"

const (
	SleepCautionThreshold    = 60
	RecoveryCautionThreshold = 50
)

const (
	MessageFatigue      = "Your sleep was rough last night. Keep today easy and listen to your body."
	MessageRecovery     = "Recovery is running low. Dial back the intensity and prioritise quality over load."
	MessageFreeDay      = "Nothing on the schedule today. Enjoy the free day and move however feels good."
	MessageRestDay      = "Rest day. This is where the adaptation happens, so recover well."
	MessageStreak30     = "30+ days strong. Consistency like this is what builds real fitness."
	MessageStreak14     = "Two weeks without missing a beat. Keep the momentum going."
	MessageStreak7      = "A full week streak. You're building a habit that sticks."
	MessageStreakActive = "You're on a roll. Let's keep the streak alive today."
)

var GenericMessages = [4]string{
	"Every session counts. Let's get after it.",
	"Show up, do the work, and the results will follow.",
	"Today's effort is tomorrow's fitness. You've got this.",
	"Small steps every day add up to big changes.",
}

// Picker returns an index in [0, n).
type Picker func(n int) int

type MessageInput struct {
	Metrics      *DailyMetrics
	Streak       int
	TodayWorkout *Workout
}

type MotivationSelector struct {
	pick Picker
}

// NewMotivationSelector uses pick to choose between generic messages, or the
// package PRNG when pick is nil.
func NewMotivationSelector(pick Picker) *MotivationSelector {
	if pick == nil {
		pick = rand.IntN
	}
	return &MotivationSelector{pick: pick}
}

// Select walks the priority ladder; the first matching rule wins.
func (s *MotivationSelector) Select(in MessageInput) string {
	if m := in.Metrics; m != nil {
		if m.SleepScore != nil && *m.SleepScore < SleepCautionThreshold {
			return MessageFatigue
		}
		if m.RecoveryScore != nil && *m.RecoveryScore < RecoveryCautionThreshold {
			return MessageRecovery
		}
	}

	if in.TodayWorkout == nil {
		return MessageFreeDay
	}
	if in.TodayWorkout.IsRest() {
		return MessageRestDay
	}

	switch {
	case in.Streak >= 30:
		return MessageStreak30
	case in.Streak >= 14:
		return MessageStreak14
	case in.Streak >= 7:
		return MessageStreak7
	case in.Streak > 0:
		return MessageStreakActive
	}

	i := s.pick(len(GenericMessages))
	if i < 0 || i >= len(GenericMessages) {
		i = 0
	}
	return GenericMessages[i]
}
