package model

// QuestionKind defines the answer shape a question expects
type QuestionKind string

const (
	QuestionKindYesNo  QuestionKind = "YES_NO" // "yes" / "no" / "N/A"
	QuestionKindSingle QuestionKind = "SINGLE" // one option from Options
	QuestionKindMulti  QuestionKind = "MULTI"  // any subset of Options
)

// SentinelBillName is the reserved answer-map key holding the bill's display
// name. It belongs to no section and is skipped by validation.
const SentinelBillName = "00"

// Question is a single scorecard question
type Question struct {
	ID        string       `json:"id"`
	SectionID string       `json:"sectionId"`
	Kind      QuestionKind `json:"kind"`
	Prompt    string       `json:"prompt"`
	Options   []string     `json:"options,omitempty"`
}

// Section is an ordered group of questions
type Section struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Section IDs, in scorecard order. Submit is the terminal review step and
// carries no questions of its own.
const (
	SectionGeneral        = "general"
	SectionAccountability = "accountability"
	SectionBias           = "bias"
	SectionData           = "data"
	SectionInstitution    = "institution"
	SectionLabor          = "labor"
	SectionSubmit         = "submit"
)
