package mongodb

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/techgit41/Advanced-Todo-App/repository"
)

// sortFields maps the API sort keys onto document field names. Anything else
// falls back to creation time.
var sortFields = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"priority":  "priority",
	"dueDate":   "due_date",
}

func buildTodoFilter(owner primitive.ObjectID, f repository.TodoFilter) bson.M {
	filter := bson.M{"user_id": owner}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}
	if f.Completed != nil {
		filter["completed"] = *f.Completed
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	return filter
}

func buildTodoSort(f repository.TodoFilter) bson.D {
	field, ok := sortFields[f.SortBy]
	if !ok {
		field = "created_at"
	}
	direction := -1
	if f.SortOrder == "asc" {
		direction = 1
	}
	return bson.D{{Key: field, Value: direction}}
}

// buildTodoUpdate turns a patch into a $set document. updated_at is always
// stamped server-side, even when the patch is otherwise empty.
func buildTodoUpdate(patch repository.TodoPatch, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Priority != nil {
		set["priority"] = *patch.Priority
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}
	if patch.HasDueDate {
		if patch.DueDate != nil {
			set["due_date"] = *patch.DueDate
		} else {
			set["due_date"] = nil
		}
	}
	if patch.HasTags {
		tags := patch.Tags
		if tags == nil {
			tags = []string{}
		}
		set["tags"] = tags
	}
	return bson.M{"$set": set}
}
