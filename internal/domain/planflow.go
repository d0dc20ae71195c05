package domain

import "errors"

// PlanStep names a state of the meal-plan flow.
type PlanStep string

const (
	// StepQuiz is the preference-editing state.
	StepQuiz PlanStep = "quiz"
	// StepPlan is the plan-viewing state, reachable only through a
	// successful generation.
	StepPlan PlanStep = "plan"
)

// ErrEmptyPlan blocks the quiz -> plan transition when generation produced
// no days.
var ErrEmptyPlan = errors.New("generated meal plan contains no days")

// PlanFlow is the meal-plan flow state machine as an explicit value object.
// Transitions return a new value; callers pass flows around instead of
// mutating shared state.
type PlanFlow struct {
	Step        PlanStep      `json:"step"`
	Preferences DietPreferences `json:"preferences"`
	Plan        []MealPlanDay `json:"plan,omitempty"`
	DaysCount   int           `json:"daysCount"`
}

// NewPlanFlow starts a flow at the quiz step with the given preferences.
func NewPlanFlow(prefs DietPreferences, daysCount int) PlanFlow {
	return PlanFlow{Step: StepQuiz, Preferences: prefs, DaysCount: daysCount}
}

// ToPlan moves the flow to the plan step. The transition is guarded: an
// empty day list is rejected and the flow is returned unchanged, preferences
// untouched.
func (f PlanFlow) ToPlan(days []MealPlanDay) (PlanFlow, error) {
	if len(days) == 0 {
		return f, ErrEmptyPlan
	}
	f.Step = StepPlan
	f.Plan = days
	return f, nil
}

// AdjustPreferences returns the flow to the quiz step so preferences can be
// edited. The previously generated plan is dropped.
func (f PlanFlow) AdjustPreferences() PlanFlow {
	f.Step = StepQuiz
	f.Plan = nil
	return f
}

// WithPreferences replaces the flow's preferences. Allowed in any step; the
// step itself is unchanged.
func (f PlanFlow) WithPreferences(prefs DietPreferences) PlanFlow {
	f.Preferences = prefs
	return f
}
