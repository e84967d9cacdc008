package model

import "time"

// Todo is a single task owned by exactly one user. Ownership is set at
// creation and never changes; every query that touches a todo filters by
// the owner as well as the id.
type Todo struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	OwnerID     string     `json:"ownerId"`
	CreatedAt   time.Time  `json:"createdAt"`
}
