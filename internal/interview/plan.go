package interview

import "time"

// Difficulty grades a question slot.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// PlanSlot is one position in the fixed question sequence: a difficulty
// paired with the time a candidate gets to answer it.
type PlanSlot struct {
	Difficulty       Difficulty
	TimeLimitSeconds int
}

// questionPlan is the fixed interview structure. Two easy warm-ups, two
// medium, two hard, with time limits growing alongside difficulty.
var questionPlan = []PlanSlot{
	{Difficulty: DifficultyEasy, TimeLimitSeconds: 20},
	{Difficulty: DifficultyEasy, TimeLimitSeconds: 20},
	{Difficulty: DifficultyMedium, TimeLimitSeconds: 60},
	{Difficulty: DifficultyMedium, TimeLimitSeconds: 60},
	{Difficulty: DifficultyHard, TimeLimitSeconds: 120},
	{Difficulty: DifficultyHard, TimeLimitSeconds: 120},
}

// QuestionPlan returns a copy of the fixed plan. Callers may not mutate
// the canonical sequence.
func QuestionPlan() []PlanSlot {
	plan := make([]PlanSlot, len(questionPlan))
	copy(plan, questionPlan)
	return plan
}

// PlanDifficulties returns the plan's difficulty order, retained on the
// session for display.
func PlanDifficulties() []Difficulty {
	seq := make([]Difficulty, len(questionPlan))
	for i, slot := range questionPlan {
		seq[i] = slot.Difficulty
	}
	return seq
}

// Deadline computes the absolute answer deadline for a slot entered at now.
func (p PlanSlot) Deadline(now time.Time) time.Time {
	return now.Add(time.Duration(p.TimeLimitSeconds) * time.Second)
}

// MaxAnswerDuration caps the reported time spent on a single answer.
const MaxAnswerDuration = 10 * time.Minute
