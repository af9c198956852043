package repository

import (
	"context"
	"time"

	"github.com/techgit41/Advanced-Todo-App/domain"
)

// TodoFilter narrows and orders a user's todo listing. Zero values leave the
// corresponding dimension unconstrained.
type TodoFilter struct {
	Category  string
	Priority  string
	Completed *bool
	Search    string
	SortBy    string
	SortOrder string
}

// TodoPatch carries only the fields supplied in a partial update. Nil pointers
// leave the stored value untouched. HasDueDate distinguishes "clear the due
// date" (true with nil DueDate) from "leave it alone" (false).
type TodoPatch struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *string
	Completed   *bool
	DueDate     *time.Time
	HasDueDate  bool
	Tags        []string
	HasTags     bool
}

// TodoRepository persists user-owned todos. Every lookup that takes a userID
// is owner-scoped: a todo stored under a different owner behaves exactly like
// a missing one.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	List(ctx context.Context, userID string, filter TodoFilter) ([]domain.Todo, error)
	FindOwned(ctx context.Context, userID, id string) (*domain.Todo, error)
	UpdateOwned(ctx context.Context, userID, id string, patch TodoPatch) (*domain.Todo, error)
	DeleteOwned(ctx context.Context, userID, id string) error
	Aggregate(ctx context.Context, userID string, now time.Time) (*domain.StatsReport, error)
}
