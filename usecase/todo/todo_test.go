package todo

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/techgit41/Advanced-Todo-App/domain"
	"github.com/techgit41/Advanced-Todo-App/repository"
)

type memTodoRepo struct {
	todos map[string]*domain.Todo
	seq   int
}

func newMemTodoRepo() *memTodoRepo {
	return &memTodoRepo{todos: map[string]*domain.Todo{}}
}

func (r *memTodoRepo) Create(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
	r.seq++
	stored := *todo
	stored.ID = fmt.Sprintf("todo-%d", r.seq)
	r.todos[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memTodoRepo) List(_ context.Context, userID string, filter repository.TodoFilter) ([]domain.Todo, error) {
	out := []domain.Todo{}
	for _, t := range r.todos {
		if t.UserID != userID {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(t.Title), needle) &&
				!strings.Contains(strings.ToLower(t.Description), needle) {
				continue
			}
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *memTodoRepo) FindOwned(_ context.Context, userID, id string) (*domain.Todo, error) {
	t, ok := r.todos[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTodoNotFound
	}
	out := *t
	return &out, nil
}

func (r *memTodoRepo) UpdateOwned(_ context.Context, userID, id string, patch repository.TodoPatch) (*domain.Todo, error) {
	t, ok := r.todos[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTodoNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.HasDueDate {
		t.DueDate = patch.DueDate
	}
	if patch.HasTags {
		t.Tags = patch.Tags
	}
	t.UpdatedAt = time.Now().UTC()
	out := *t
	return &out, nil
}

func (r *memTodoRepo) DeleteOwned(_ context.Context, userID, id string) error {
	t, ok := r.todos[id]
	if !ok || t.UserID != userID {
		return domain.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *memTodoRepo) Aggregate(_ context.Context, userID string, now time.Time) (*domain.StatsReport, error) {
	report := &domain.StatsReport{ByCategory: []domain.CategoryStat{}}
	byCategory := map[string]*domain.CategoryStat{}
	for _, t := range r.todos {
		if t.UserID != userID {
			continue
		}
		report.Overall.Total++
		if t.Completed {
			report.Overall.Completed++
		}
		if t.Priority == domain.PriorityHigh {
			report.Overall.HighPriority++
		}
		if t.IsOverdue(now) {
			report.Overall.Overdue++
		}
		stat, ok := byCategory[t.Category]
		if !ok {
			stat = &domain.CategoryStat{Category: t.Category}
			byCategory[t.Category] = stat
		}
		stat.Count++
		if t.Completed {
			stat.Completed++
		}
	}
	for _, stat := range byCategory {
		report.ByCategory = append(report.ByCategory, *stat)
	}
	return report, nil
}

type recordingBroadcaster struct {
	events []domain.TodoEvent
}

func (b *recordingBroadcaster) BroadcastTodo(_ context.Context, event domain.TodoEvent) {
	b.events = append(b.events, event)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateAppliesDefaults(t *testing.T) {
	t.Parallel()

	repo := newMemTodoRepo()
	bc := &recordingBroadcaster{}
	uc := New(repo, bc, nil)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	created, err := uc.Create(context.Background(), "alice", CreateInput{Title: "buy milk"})
	require.NoError(t, err)
	require.Equal(t, "alice", created.UserID)
	require.Equal(t, domain.DefaultCategory, created.Category)
	require.Equal(t, domain.PriorityMedium, created.Priority)
	require.False(t, created.Completed)
	require.NotNil(t, created.Tags)
	require.Empty(t, created.Tags)
	require.Equal(t, fixed, created.CreatedAt)
	require.Equal(t, fixed, created.UpdatedAt)

	require.Len(t, bc.events, 1)
	require.Equal(t, domain.ActionCreated, bc.events[0].Action)
	require.Equal(t, "alice", bc.events[0].UserID)
	require.Equal(t, created.ID, bc.events[0].Todo.ID)
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	uc := New(newMemTodoRepo(), nil, nil)

	_, err := uc.Create(context.Background(), "alice", CreateInput{Title: "   "})
	require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.Create(context.Background(), "alice", CreateInput{Title: "x", Priority: "urgent"})
	require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestUpdatePartial(t *testing.T) {
	t.Parallel()

	repo := newMemTodoRepo()
	bc := &recordingBroadcaster{}
	uc := New(repo, bc, nil)

	created, err := uc.Create(context.Background(), "alice", CreateInput{
		Title:       "buy milk",
		Description: "two liters",
	})
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), "alice", created.ID, repository.TodoPatch{
		Title: strPtr("buy oat milk"),
	})
	require.NoError(t, err)
	require.Equal(t, "buy oat milk", updated.Title)
	require.Equal(t, "two liters", updated.Description, "untouched fields survive")
	require.Equal(t, "alice", updated.UserID)

	require.Equal(t, domain.ActionUpdated, bc.events[len(bc.events)-1].Action)
}

func TestUpdateClearsDueDate(t *testing.T) {
	t.Parallel()

	repo := newMemTodoRepo()
	uc := New(repo, nil, nil)

	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	created, err := uc.Create(context.Background(), "alice", CreateInput{Title: "taxes", DueDate: &due})
	require.NoError(t, err)
	require.NotNil(t, created.DueDate)

	updated, err := uc.Update(context.Background(), "alice", created.ID, repository.TodoPatch{
		HasDueDate: true,
	})
	require.NoError(t, err)
	require.Nil(t, updated.DueDate)
}

func TestUpdateValidation(t *testing.T) {
	t.Parallel()

	repo := newMemTodoRepo()
	bc := &recordingBroadcaster{}
	uc := New(repo, bc, nil)

	created, err := uc.Create(context.Background(), "alice", CreateInput{Title: "buy milk"})
	require.NoError(t, err)
	bc.events = nil

	_, err = uc.Update(context.Background(), "alice", created.ID, repository.TodoPatch{Title: strPtr(" ")})
	require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.Update(context.Background(), "alice", created.ID, repository.TodoPatch{Priority: strPtr("asap")})
	require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	require.Empty(t, bc.events, "rejected updates are not broadcast")
}

func TestOwnershipScoping(t *testing.T) {
	t.Parallel()

	repo := newMemTodoRepo()
	bc := &recordingBroadcaster{}
	uc := New(repo, bc, nil)

	created, err := uc.Create(context.Background(), "alice", CreateInput{Title: "private"})
	require.NoError(t, err)
	bc.events = nil

	_, err = uc.Update(context.Background(), "bob", created.ID, repository.TodoPatch{Completed: boolPtr(true)})
	require.ErrorIs(t, err, domain.ErrTodoNotFound)

	err = uc.Delete(context.Background(), "bob", created.ID)
	require.ErrorIs(t, err, domain.ErrTodoNotFound)

	require.Empty(t, bc.events)

	// the owner still sees it untouched
	got, err := repo.FindOwned(context.Background(), "alice", created.ID)
	require.NoError(t, err)
	require.False(t, got.Completed)
}

func TestDeleteBroadcastsID(t *testing.T) {
	t.Parallel()

	repo := newMemTodoRepo()
	bc := &recordingBroadcaster{}
	uc := New(repo, bc, nil)

	created, err := uc.Create(context.Background(), "alice", CreateInput{Title: "done with this"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), "alice", created.ID))

	_, err = repo.FindOwned(context.Background(), "alice", created.ID)
	require.ErrorIs(t, err, domain.ErrTodoNotFound)

	last := bc.events[len(bc.events)-1]
	require.Equal(t, domain.ActionDeleted, last.Action)
	require.Equal(t, created.ID, last.TodoID)
	require.Nil(t, last.Todo)
}

func TestListFilters(t *testing.T) {
	t.Parallel()

	repo := newMemTodoRepo()
	uc := New(repo, nil, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, "alice", CreateInput{Title: "buy milk", Category: "errands"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "alice", CreateInput{Title: "ship release", Category: "work", Priority: domain.PriorityHigh})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "bob", CreateInput{Title: "buy bread", Category: "errands"})
	require.NoError(t, err)

	all, err := uc.List(ctx, "alice", repository.TodoFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	work, err := uc.List(ctx, "alice", repository.TodoFilter{Category: "work"})
	require.NoError(t, err)
	require.Len(t, work, 1)
	require.Equal(t, "ship release", work[0].Title)

	found, err := uc.List(ctx, "alice", repository.TodoFilter{Search: "MILK"})
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestStats(t *testing.T) {
	t.Parallel()

	repo := newMemTodoRepo()
	uc := New(repo, nil, nil)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }
	ctx := context.Background()

	past := fixed.Add(-24 * time.Hour)
	future := fixed.Add(24 * time.Hour)

	_, err := uc.Create(ctx, "alice", CreateInput{Title: "late", DueDate: &past})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "alice", CreateInput{Title: "done late", DueDate: &past, Completed: true})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "alice", CreateInput{Title: "urgent", Priority: domain.PriorityHigh, DueDate: &future})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "bob", CreateInput{Title: "not hers"})
	require.NoError(t, err)

	report, err := uc.Stats(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, int64(3), report.Overall.Total)
	require.Equal(t, int64(1), report.Overall.Completed)
	require.Equal(t, int64(1), report.Overall.HighPriority)
	require.Equal(t, int64(1), report.Overall.Overdue, "completed todos are never overdue")
	require.Len(t, report.ByCategory, 1)
	require.Equal(t, domain.DefaultCategory, report.ByCategory[0].Category)
	require.Equal(t, int64(3), report.ByCategory[0].Count)
}
