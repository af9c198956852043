package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/techgit41/Advanced-Todo-App/repository"
)

func TestBuildTodoFilter(t *testing.T) {
	t.Parallel()

	owner := primitive.NewObjectID()
	completed := false

	filter := buildTodoFilter(owner, repository.TodoFilter{
		Category:  "work",
		Priority:  "high",
		Completed: &completed,
	})
	require.Equal(t, owner, filter["user_id"])
	require.Equal(t, "work", filter["category"])
	require.Equal(t, "high", filter["priority"])
	require.Equal(t, false, filter["completed"])
	require.NotContains(t, filter, "$or")

	// zero values constrain nothing beyond ownership
	bare := buildTodoFilter(owner, repository.TodoFilter{})
	require.Len(t, bare, 1)
}

func TestBuildTodoFilterSearchEscapesRegex(t *testing.T) {
	t.Parallel()

	owner := primitive.NewObjectID()
	filter := buildTodoFilter(owner, repository.TodoFilter{Search: "a+b (urgent)"})

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)

	title := or[0].(bson.M)["title"].(primitive.Regex)
	require.Equal(t, `a\+b \(urgent\)`, title.Pattern)
	require.Equal(t, "i", title.Options)
}

func TestBuildTodoSort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      bson.D
	}{
		{"default", "", "", bson.D{{Key: "created_at", Value: -1}}},
		{"unknown field falls back", "owner", "asc", bson.D{{Key: "created_at", Value: 1}}},
		{"due date ascending", "dueDate", "asc", bson.D{{Key: "due_date", Value: 1}}},
		{"title default order", "title", "", bson.D{{Key: "title", Value: -1}}},
		{"bad order stays descending", "priority", "up", bson.D{{Key: "priority", Value: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildTodoSort(repository.TodoFilter{SortBy: tt.sortBy, SortOrder: tt.sortOrder})
			require.Equal(t, tt.want, got)
		})
	}
}

func TestBuildTodoUpdate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	title := "new title"
	done := true

	update := buildTodoUpdate(repository.TodoPatch{Title: &title, Completed: &done}, now)
	set := update["$set"].(bson.M)
	require.Equal(t, now, set["updated_at"])
	require.Equal(t, "new title", set["title"])
	require.Equal(t, true, set["completed"])
	require.NotContains(t, set, "description")
	require.NotContains(t, set, "due_date")
	require.NotContains(t, set, "tags")
}

func TestBuildTodoUpdateAlwaysStamps(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	set := buildTodoUpdate(repository.TodoPatch{}, now)["$set"].(bson.M)
	require.Len(t, set, 1)
	require.Equal(t, now, set["updated_at"])
}

func TestBuildTodoUpdateDueDateAndTags(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	due := now.Add(48 * time.Hour)

	set := buildTodoUpdate(repository.TodoPatch{HasDueDate: true, DueDate: &due}, now)["$set"].(bson.M)
	require.Equal(t, due, set["due_date"])

	// a present-but-nil due date clears the field
	set = buildTodoUpdate(repository.TodoPatch{HasDueDate: true}, now)["$set"].(bson.M)
	require.Contains(t, set, "due_date")
	require.Nil(t, set["due_date"])

	// nil tags with the flag set store an empty array, never null
	set = buildTodoUpdate(repository.TodoPatch{HasTags: true}, now)["$set"].(bson.M)
	require.Equal(t, []string{}, set["tags"])
}
