package domain

import "time"

// Priority levels accepted for a todo.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// DefaultCategory is applied when the client leaves the category empty.
const DefaultCategory = "general"

// Todo represents a user-owned task item. UserID is set at creation from the
// authenticated session and is never reassigned afterwards.
type Todo struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IsOverdue reports whether the todo has a due date strictly before the
// reference time and is not completed.
func (t *Todo) IsOverdue(reference time.Time) bool {
	return t != nil && t.DueDate != nil && t.DueDate.Before(reference) && !t.Completed
}

// ValidPriority reports whether p is one of the accepted priority levels.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
