package model

import "time"

// Draft is the mutable working state for one (user, bill) pair. It is created
// when the user starts scoring a bill and deleted when the scorecard is
// submitted.
type Draft struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	UserID         string    `json:"userId" bson:"userId"`
	BillID         string    `json:"billId" bson:"billId"`
	AssignmentID   string    `json:"assignmentId" bson:"assignmentId"`
	Answers        AnswerMap `json:"answers" bson:"answers"`
	Flags          FlagMap   `json:"flags" bson:"flags"`
	Notes          NotesMap  `json:"notes" bson:"notes"`
	CurrentSection string    `json:"currentSection" bson:"currentSection"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

// NewDraft creates an empty draft with the bill display name pre-filled under
// the sentinel key.
func NewDraft(userID, billID, assignmentID, billName string) *Draft {
	return &Draft{
		UserID:       userID,
		BillID:       billID,
		AssignmentID: assignmentID,
		Answers: AnswerMap{
			SentinelBillName: ChoiceAnswer(billName),
		},
		Flags:          FlagMap{},
		Notes:          NotesMap{},
		CurrentSection: SectionGeneral,
		UpdatedAt:      time.Now(),
	}
}

// Clone returns a deep copy so queued persistence never races a later mutation
func (d *Draft) Clone() *Draft {
	cp := *d
	cp.Answers = make(AnswerMap, len(d.Answers))
	for k, v := range d.Answers {
		if v.Choices != nil {
			v.Choices = append([]string(nil), v.Choices...)
		}
		cp.Answers[k] = v
	}
	cp.Flags = make(FlagMap, len(d.Flags))
	for k, v := range d.Flags {
		cp.Flags[k] = v
	}
	cp.Notes = make(NotesMap, len(d.Notes))
	for k, v := range d.Notes {
		cp.Notes[k] = v
	}
	return &cp
}
