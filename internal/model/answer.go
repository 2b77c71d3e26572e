package model

// Canonical answer literals
const (
	AnswerYes = "yes"
	AnswerNo  = "no"
	AnswerNA  = "N/A"
)

// AnswerValue holds one question's answer. Yes/no and single-choice answers
// carry Choice; multi-choice answers carry Choices. A dependency-suppressed
// question is force-filled with MultiAnswer(AnswerNA).
type AnswerValue struct {
	Choice  string   `json:"choice,omitempty" bson:"choice,omitempty"`
	Choices []string `json:"choices,omitempty" bson:"choices,omitempty"`
}

// ChoiceAnswer builds a yes/no or single-choice answer
func ChoiceAnswer(v string) AnswerValue {
	return AnswerValue{Choice: v}
}

// MultiAnswer builds a multi-choice answer
func MultiAnswer(vs ...string) AnswerValue {
	return AnswerValue{Choices: vs}
}

// NAFill is the value force-set on questions suppressed by a governing answer
func NAFill() AnswerValue {
	return MultiAnswer(AnswerNA)
}

// IsSuppressing reports whether this answer suppresses dependent questions
func (a AnswerValue) IsSuppressing() bool {
	if a.Choice == AnswerNo || a.Choice == AnswerNA {
		return true
	}
	return len(a.Choices) == 1 && a.Choices[0] == AnswerNA
}

// AnswerMap maps question ID to the recorded answer
type AnswerMap map[string]AnswerValue

// FlagMap maps question ID to marked-for-review
type FlagMap map[string]bool

// NotesMap maps section ID to a free-text note blob
type NotesMap map[string]string
