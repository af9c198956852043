package todo

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/techgit41/Advanced-Todo-App/domain"
	"github.com/techgit41/Advanced-Todo-App/repository"
	"github.com/techgit41/Advanced-Todo-App/usecase"
)

// CreateInput carries the client-supplied fields of a new todo. The owner is
// never part of it; it always comes from the verified session.
type CreateInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
	DueDate     *time.Time
	Completed   bool
	Tags        []string
}

type UseCase struct {
	todos       repository.TodoRepository
	broadcaster usecase.ChangeBroadcaster
	logger      *zap.Logger
	now         func() time.Time
}

func New(todos repository.TodoRepository, broadcaster usecase.ChangeBroadcaster, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		todos:       todos,
		broadcaster: broadcaster,
		logger:      logger,
		now:         time.Now,
	}
}

// Create validates the input, fills defaults, persists the todo under userID
// and broadcasts a created event.
func (uc *UseCase) Create(ctx context.Context, userID string, input CreateInput) (*domain.Todo, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	if input.Priority != "" && !domain.ValidPriority(input.Priority) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "invalid priority")
	}

	now := uc.now().UTC()
	todo := &domain.Todo{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Completed:   input.Completed,
		Tags:        input.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if todo.Category == "" {
		todo.Category = domain.DefaultCategory
	}
	if todo.Priority == "" {
		todo.Priority = domain.PriorityMedium
	}
	if todo.Tags == nil {
		todo.Tags = []string{}
	}

	created, err := uc.todos.Create(ctx, todo)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, domain.TodoEvent{
		Action: domain.ActionCreated,
		Todo:   created,
		UserID: created.UserID,
	})
	return created, nil
}

// List returns the caller's todos matching the filter. Ownership scoping is
// applied by the repository regardless of the filter values.
func (uc *UseCase) List(ctx context.Context, userID string, filter repository.TodoFilter) ([]domain.Todo, error) {
	return uc.todos.List(ctx, userID, filter)
}

// Update applies the supplied fields to an owned todo and broadcasts an
// updated event. A todo owned by someone else is indistinguishable from a
// missing one.
func (uc *UseCase) Update(ctx context.Context, userID, id string, patch repository.TodoPatch) (*domain.Todo, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	if patch.Priority != nil && !domain.ValidPriority(*patch.Priority) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "invalid priority")
	}

	updated, err := uc.todos.UpdateOwned(ctx, userID, id, patch)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, domain.TodoEvent{
		Action: domain.ActionUpdated,
		Todo:   updated,
		UserID: updated.UserID,
	})
	return updated, nil
}

// Delete removes an owned todo and broadcasts a deleted event carrying only
// the identifier.
func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	if err := uc.todos.DeleteOwned(ctx, userID, id); err != nil {
		return err
	}

	uc.publish(ctx, domain.TodoEvent{
		Action: domain.ActionDeleted,
		TodoID: id,
		UserID: userID,
	})
	return nil
}

// Stats aggregates the caller's todos: overall counts plus the per-category
// breakdown. Overdue means a due date strictly before now on an uncompleted
// todo.
func (uc *UseCase) Stats(ctx context.Context, userID string) (*domain.StatsReport, error) {
	return uc.todos.Aggregate(ctx, userID, uc.now().UTC())
}

func (uc *UseCase) publish(ctx context.Context, event domain.TodoEvent) {
	if uc.broadcaster == nil {
		return
	}
	uc.broadcaster.BroadcastTodo(ctx, event)
	uc.logger.Debug("todo event published",
		zap.String("action", event.Action),
		zap.String("user_id", event.UserID),
	)
}
