package model

import "time"

// Bill is a piece of legislation available for scoring
type Bill struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Number    string    `json:"number" bson:"number"` // e.g. "HB 1234"
	Title     string    `json:"title" bson:"title"`
	State     string    `json:"state" bson:"state"`
	Session   string    `json:"session" bson:"session"`
	URL       string    `json:"url,omitempty" bson:"url,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// DisplayName is the label stored under the sentinel answer key
func (b *Bill) DisplayName() string {
	if b.Number == "" {
		return b.Title
	}
	return b.Number + " - " + b.Title
}
