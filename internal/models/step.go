package models

// Step is the currently active prompt.
type Step struct {
	Prompt        AlphabetItem   `json:"prompt"`
	Options       []AlphabetItem `json:"options"`
	PointsAtStake int            `json:"points_at_stake"`
	AnswerMode    AnswerMode     `json:"answer_mode"`
}

// Clone returns a copy that shares no slices with s.
func (s Step) Clone() Step {
	out := s
	out.Options = append([]AlphabetItem(nil), s.Options...)
	return out
}

// StepRecord is an immutable history entry for one judged attempt.
type StepRecord struct {
	Step
	Attempted     AlphabetItem `json:"attempted"`
	WasCorrect    bool         `json:"was_correct"`
	PointsAwarded int          `json:"points_awarded"`
}
