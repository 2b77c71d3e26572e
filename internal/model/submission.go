package model

import "time"

// Submission is an immutable snapshot of a completed draft. Created exactly
// once per assignment; never mutated after creation.
type Submission struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	UserID       string    `json:"userId" bson:"userId"`
	BillID       string    `json:"billId" bson:"billId"`
	AssignmentID string    `json:"assignmentId" bson:"assignmentId"`
	Answers      AnswerMap `json:"answers" bson:"answers"`
	Notes        NotesMap  `json:"notes" bson:"notes"`
	SubmittedAt  time.Time `json:"submittedAt" bson:"submittedAt"`
}
