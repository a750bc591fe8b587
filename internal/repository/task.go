package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/taskboardhq/taskboard-api/internal/model"
)

// TaskRepository defines the interface for task-related database operations.
// Reads and single-document writes are scoped to the owning user; the
// board-level helpers operate on every task under a board and are used for
// counts and cascade deletion.
type TaskRepository interface {
	CreateTask(ctx context.Context, task *model.Task) (*model.Task, error)
	GetTask(ctx context.Context, id, ownerID string) (*model.Task, error)
	ListTasks(ctx context.Context, ownerID string, params FilterTasksParams) ([]*model.Task, error)
	UpdateTask(ctx context.Context, id, ownerID string, params UpdateTaskParams) (*model.Task, error)
	DeleteTask(ctx context.Context, id, ownerID string) error
	DeleteTasksByBoard(ctx context.Context, boardID string) (int64, error)
	CountTasksByBoard(ctx context.Context, boardID string, completed *bool) (int64, error)
}

// FilterTasksParams defines the optional filters for listing tasks.
type FilterTasksParams struct {
	BoardID   *string
	Completed *bool
}

// UpdateTaskParams defines the optional parameters for updating a task.
// Only the fields that are not nil will be updated.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	BoardID     *string
	Completed   *bool
	Priority    *string
	DueDate     *time.Time
}

const taskCollection = "tasks"

type taskMongoRepository struct {
	db *mongo.Database
}

// NewTaskMongoRepository creates a new MongoDB repository for tasks.
func NewTaskMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) TaskRepository {
	collection := db.Collection(taskCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "board_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "completed", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create task indexes")
	}

	return &taskMongoRepository{db: db}
}

func (r *taskMongoRepository) CreateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	result, err := r.db.Collection(taskCollection).InsertOne(ctx, task)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		task.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return task, nil
}

func (r *taskMongoRepository) GetTask(ctx context.Context, id, ownerID string) (*model.Task, error) {
	filter, err := ownedTaskFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(taskCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var task model.Task
	if err := result.Decode(&task); err != nil {
		return nil, err
	}

	return &task, nil
}

func (r *taskMongoRepository) ListTasks(
	ctx context.Context,
	ownerID string,
	params FilterTasksParams,
) ([]*model.Task, error) {
	ownerObjectID, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	filter := bson.M{"user_id": ownerObjectID}
	if params.BoardID != nil {
		boardObjectID, err := bson.ObjectIDFromHex(*params.BoardID)
		if err != nil {
			return nil, mongo.ErrNoDocuments
		}
		filter["board_id"] = boardObjectID
	}
	if params.Completed != nil {
		filter["completed"] = *params.Completed
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(taskCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []*model.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskMongoRepository) UpdateTask(
	ctx context.Context,
	id, ownerID string,
	params UpdateTaskParams,
) (*model.Task, error) {
	filter, err := ownedTaskFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Title != nil {
		updateMap["title"] = *params.Title
	}
	if params.Description != nil {
		updateMap["description"] = *params.Description
	}
	if params.BoardID != nil {
		boardObjectID, err := bson.ObjectIDFromHex(*params.BoardID)
		if err != nil {
			return nil, mongo.ErrNoDocuments
		}
		updateMap["board_id"] = boardObjectID
	}
	if params.Completed != nil {
		updateMap["completed"] = *params.Completed
	}
	if params.Priority != nil {
		updateMap["priority"] = *params.Priority
	}
	if params.DueDate != nil {
		updateMap["due_date"] = *params.DueDate
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(taskCollection).FindOneAndUpdate(
		ctx,
		filter,
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var task model.Task
	if err := result.Decode(&task); err != nil {
		return nil, err
	}

	return &task, nil
}

func (r *taskMongoRepository) DeleteTask(ctx context.Context, id, ownerID string) error {
	filter, err := ownedTaskFilter(id, ownerID)
	if err != nil {
		return err
	}

	result := r.db.Collection(taskCollection).FindOneAndDelete(ctx, filter)
	return result.Err()
}

func (r *taskMongoRepository) DeleteTasksByBoard(ctx context.Context, boardID string) (int64, error) {
	boardObjectID, err := bson.ObjectIDFromHex(boardID)
	if err != nil {
		return 0, mongo.ErrNoDocuments
	}

	result, err := r.db.Collection(taskCollection).DeleteMany(ctx, bson.M{"board_id": boardObjectID})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}

func (r *taskMongoRepository) CountTasksByBoard(
	ctx context.Context,
	boardID string,
	completed *bool,
) (int64, error) {
	boardObjectID, err := bson.ObjectIDFromHex(boardID)
	if err != nil {
		return 0, mongo.ErrNoDocuments
	}

	filter := bson.M{"board_id": boardObjectID}
	if completed != nil {
		filter["completed"] = *completed
	}

	return r.db.Collection(taskCollection).CountDocuments(ctx, filter)
}

// ownedTaskFilter builds the {_id, user_id} filter shared by all
// ownership-scoped task queries. Malformed ids behave like missing documents.
func ownedTaskFilter(id, ownerID string) (bson.M, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	ownerObjectID, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	return bson.M{"_id": objectID, "user_id": ownerObjectID}, nil
}
