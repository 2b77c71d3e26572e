package model

import "time"

// Role controls access to admin surfaces
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleScorer Role = "scorer"
)

// User is an account that can be assigned bills to score
type User struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Username  string    `json:"username" bson:"username"`
	Password  string    `json:"-" bson:"password"` // demo credential, seeded
	Role      Role      `json:"role" bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
