package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/techgit41/Advanced-Todo-App/domain"
	"github.com/techgit41/Advanced-Todo-App/repository"
)

type todoDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Priority    string             `bson:"priority"`
	DueDate     *time.Time         `bson:"due_date,omitempty"`
	Completed   bool               `bson:"completed"`
	Tags        []string           `bson:"tags"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *todoDoc) toDomain() *domain.Todo {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Todo{
		ID:          d.ID.Hex(),
		UserID:      d.UserID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Priority:    d.Priority,
		DueDate:     d.DueDate,
		Completed:   d.Completed,
		Tags:        tags,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type todoRepository struct {
	collection *mongo.Collection
}

// NewTodoRepository returns a MongoDB-backed implementation of TodoRepository.
func NewTodoRepository(db *mongo.Database) repository.TodoRepository {
	collection := db.Collection("todos")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Listing is always scoped by owner; index creation failure is not fatal
	// (the database may be offline at startup).
	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})

	return &todoRepository{collection: collection}
}

func (r *todoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	owner, err := primitive.ObjectIDFromHex(todo.UserID)
	if err != nil {
		return nil, domain.ErrInvalidPayload
	}

	doc := todoDoc{
		ID:          primitive.NewObjectID(),
		UserID:      owner,
		Title:       todo.Title,
		Description: todo.Description,
		Category:    todo.Category,
		Priority:    todo.Priority,
		DueDate:     todo.DueDate,
		Completed:   todo.Completed,
		Tags:        todo.Tags,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *todoRepository) List(ctx context.Context, userID string, filter repository.TodoFilter) ([]domain.Todo, error) {
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrInvalidPayload
	}

	opts := options.Find().SetSort(buildTodoSort(filter))
	cursor, err := r.collection.Find(ctx, buildTodoFilter(owner, filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	todos := []domain.Todo{}
	for cursor.Next(ctx) {
		var doc todoDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		todos = append(todos, *doc.toDomain())
	}
	return todos, cursor.Err()
}

func (r *todoRepository) FindOwned(ctx context.Context, userID, id string) (*domain.Todo, error) {
	match, err := ownedFilter(userID, id)
	if err != nil {
		return nil, err
	}

	var doc todoDoc
	if err := r.collection.FindOne(ctx, match).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *todoRepository) UpdateOwned(ctx context.Context, userID, id string, patch repository.TodoPatch) (*domain.Todo, error) {
	match, err := ownedFilter(userID, id)
	if err != nil {
		return nil, err
	}

	result := r.collection.FindOneAndUpdate(
		ctx,
		match,
		buildTodoUpdate(patch, time.Now().UTC()),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		if errors.Is(result.Err(), mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, result.Err()
	}

	var doc todoDoc
	if err := result.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *todoRepository) DeleteOwned(ctx context.Context, userID, id string) error {
	match, err := ownedFilter(userID, id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, match)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *todoRepository) Aggregate(ctx context.Context, userID string, now time.Time) (*domain.StatsReport, error) {
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrInvalidPayload
	}

	overall, err := r.aggregateOverall(ctx, owner, now)
	if err != nil {
		return nil, err
	}
	byCategory, err := r.aggregateCategories(ctx, owner)
	if err != nil {
		return nil, err
	}

	return &domain.StatsReport{Overall: overall, ByCategory: byCategory}, nil
}

func (r *todoRepository) aggregateOverall(ctx context.Context, owner primitive.ObjectID, now time.Time) (domain.Stats, error) {
	completedCond := bson.M{"$cond": bson.A{"$completed", 1, 0}}
	highCond := bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$priority", domain.PriorityHigh}}, 1, 0}}
	overdueCond := bson.M{"$cond": bson.A{
		bson.M{"$and": bson.A{
			"$due_date",
			bson.M{"$lt": bson.A{"$due_date", now}},
			bson.M{"$eq": bson.A{"$completed", false}},
		}},
		1, 0,
	}}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": owner}}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"total":         bson.M{"$sum": 1},
			"completed":     bson.M{"$sum": completedCond},
			"high_priority": bson.M{"$sum": highCond},
			"overdue":       bson.M{"$sum": overdueCond},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.Stats{}, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total        int64 `bson:"total"`
		Completed    int64 `bson:"completed"`
		HighPriority int64 `bson:"high_priority"`
		Overdue      int64 `bson:"overdue"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return domain.Stats{}, err
	}
	if len(rows) == 0 {
		return domain.Stats{}, nil
	}
	return domain.Stats{
		Total:        rows[0].Total,
		Completed:    rows[0].Completed,
		HighPriority: rows[0].HighPriority,
		Overdue:      rows[0].Overdue,
	}, nil
}

func (r *todoRepository) aggregateCategories(ctx context.Context, owner primitive.ObjectID) ([]domain.CategoryStat, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": owner}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$category",
			"count":     bson.M{"$sum": 1},
			"completed": bson.M{"$sum": bson.M{"$cond": bson.A{"$completed", 1, 0}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Category  string `bson:"_id"`
		Count     int64  `bson:"count"`
		Completed int64  `bson:"completed"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	stats := make([]domain.CategoryStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, domain.CategoryStat{
			Category:  row.Category,
			Count:     row.Count,
			Completed: row.Completed,
		})
	}
	return stats, nil
}

// ownedFilter builds the {_id, user_id} match clause shared by every
// owner-scoped lookup. Malformed identifiers cannot match any document and
// are reported as not found.
func ownedFilter(userID, id string) (bson.M, error) {
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrTodoNotFound
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTodoNotFound
	}
	return bson.M{"_id": objectID, "user_id": owner}, nil
}
