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

// BoardRepository defines the interface for board-related database operations.
// Every read and write is scoped to the owning user: a board that exists but
// belongs to someone else behaves exactly like a missing board.
type BoardRepository interface {
	CreateBoard(ctx context.Context, board *model.Board) (*model.Board, error)
	GetBoard(ctx context.Context, id, ownerID string) (*model.Board, error)
	ListBoards(ctx context.Context, ownerID string, includeArchived bool) ([]*model.Board, error)
	UpdateBoard(ctx context.Context, id, ownerID string, params UpdateBoardParams) (*model.Board, error)
	DeleteBoard(ctx context.Context, id, ownerID string) error
}

// UpdateBoardParams defines the optional parameters for updating a board.
// Only the fields that are not nil will be updated.
type UpdateBoardParams struct {
	Title       *string
	Description *string
	Color       *string
	IsArchived  *bool
}

const boardCollection = "boards"

type boardMongoRepository struct {
	db *mongo.Database
}

// NewBoardMongoRepository creates a new MongoDB repository for boards.
func NewBoardMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) BoardRepository {
	collection := db.Collection(boardCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_archived", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create board indexes")
	}

	return &boardMongoRepository{db: db}
}

func (r *boardMongoRepository) CreateBoard(ctx context.Context, board *model.Board) (*model.Board, error) {
	now := time.Now()
	board.CreatedAt = now
	board.UpdatedAt = now

	result, err := r.db.Collection(boardCollection).InsertOne(ctx, board)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		board.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return board, nil
}

func (r *boardMongoRepository) GetBoard(ctx context.Context, id, ownerID string) (*model.Board, error) {
	filter, err := ownedBoardFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(boardCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var board model.Board
	if err := result.Decode(&board); err != nil {
		return nil, err
	}

	return &board, nil
}

func (r *boardMongoRepository) ListBoards(
	ctx context.Context,
	ownerID string,
	includeArchived bool,
) ([]*model.Board, error) {
	ownerObjectID, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	filter := bson.M{"user_id": ownerObjectID}
	if !includeArchived {
		filter["is_archived"] = false
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(boardCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var boards []*model.Board
	if err := cursor.All(ctx, &boards); err != nil {
		return nil, err
	}

	return boards, nil
}

func (r *boardMongoRepository) UpdateBoard(
	ctx context.Context,
	id, ownerID string,
	params UpdateBoardParams,
) (*model.Board, error) {
	filter, err := ownedBoardFilter(id, ownerID)
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
	if params.Color != nil {
		updateMap["color"] = *params.Color
	}
	if params.IsArchived != nil {
		updateMap["is_archived"] = *params.IsArchived
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(boardCollection).FindOneAndUpdate(
		ctx,
		filter,
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var board model.Board
	if err := result.Decode(&board); err != nil {
		return nil, err
	}

	return &board, nil
}

func (r *boardMongoRepository) DeleteBoard(ctx context.Context, id, ownerID string) error {
	filter, err := ownedBoardFilter(id, ownerID)
	if err != nil {
		return err
	}

	result := r.db.Collection(boardCollection).FindOneAndDelete(ctx, filter)
	return result.Err()
}

// ownedBoardFilter builds the {_id, user_id} filter shared by all
// ownership-scoped board queries. Malformed ids behave like missing documents.
func ownedBoardFilter(id, ownerID string) (bson.M, error) {
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
