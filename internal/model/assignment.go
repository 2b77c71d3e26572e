package model

import "time"

// AssignmentStatus is the lifecycle state of a scoring assignment
type AssignmentStatus string

const (
	AssignmentAssigned   AssignmentStatus = "assigned"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentCompleted  AssignmentStatus = "completed" // terminal
)

// ValidTransition reports whether moving from one status to another is allowed
func ValidTransition(from, to AssignmentStatus) bool {
	switch {
	case from == AssignmentAssigned && to == AssignmentInProgress:
		return true
	case from == AssignmentInProgress && to == AssignmentCompleted:
		return true
	}
	return false
}

// Assignment relates a user to a bill. Exactly one per (user, bill).
type Assignment struct {
	ID        string           `json:"id" bson:"_id,omitempty"`
	UserID    string           `json:"userId" bson:"userId"`
	BillID    string           `json:"billId" bson:"billId"`
	Status    AssignmentStatus `json:"status" bson:"status"`
	CreatedAt time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt" bson:"updatedAt"`
}
