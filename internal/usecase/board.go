package usecase

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/taskboardhq/taskboard-api/internal/model"
	"github.com/taskboardhq/taskboard-api/internal/repository"
)

// BoardUsecase defines the interface for board-related use cases. Every
// operation is scoped to the calling owner; a board owned by someone else is
// reported exactly like a nonexistent one.
type BoardUsecase interface {
	CreateBoard(ctx context.Context, ownerID string, params CreateBoardParams) (*model.Board, error)
	ListBoards(ctx context.Context, ownerID string, includeArchived bool) ([]BoardWithCounts, error)
	GetBoard(ctx context.Context, ownerID, boardID string) (*BoardWithCounts, error)
	UpdateBoard(ctx context.Context, ownerID, boardID string, params UpdateBoardParams) (*model.Board, error)

	// DeleteBoard removes a board. Without cascadeTasks it refuses when the
	// board still has tasks; with it, the tasks are deleted first. The two
	// steps are not atomic: a task created concurrently can survive.
	DeleteBoard(ctx context.Context, ownerID, boardID string, cascadeTasks bool) error
}

// CreateBoardParams defines the parameters for creating a board.
type CreateBoardParams struct {
	Title       string
	Description string
	Color       string
}

// UpdateBoardParams defines the optional fields for a partial board update.
type UpdateBoardParams struct {
	Title       *string
	Description *string
	Color       *string
	IsArchived  *bool
}

// BoardWithCounts is a board annotated with its aggregate task counts.
type BoardWithCounts struct {
	model.Board
	TaskCount      int64 `json:"taskCount"`
	CompletedCount int64 `json:"completedCount"`
}

var (
	ErrBoardNotFound      = errors.New("board not found")
	ErrBoardTitleRequired = errors.New("board title is required")
	ErrBoardHasTasks      = errors.New("board has tasks")
)

type boardUsecase struct {
	boardRepo repository.BoardRepository
	taskRepo  repository.TaskRepository
}

// NewBoardUsecase creates a new instance of BoardUsecase.
func NewBoardUsecase(boardRepo repository.BoardRepository, taskRepo repository.TaskRepository) BoardUsecase {
	return &boardUsecase{
		boardRepo: boardRepo,
		taskRepo:  taskRepo,
	}
}

func (u *boardUsecase) CreateBoard(
	ctx context.Context,
	ownerID string,
	params CreateBoardParams,
) (*model.Board, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, ErrBoardTitleRequired
	}

	color := params.Color
	if color == "" {
		color = model.DefaultBoardColor
	}

	ownerObjectID, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, err
	}

	return u.boardRepo.CreateBoard(ctx, &model.Board{
		Title:       title,
		Description: strings.TrimSpace(params.Description),
		Color:       color,
		OwnerID:     ownerObjectID,
		IsArchived:  false,
	})
}

func (u *boardUsecase) ListBoards(
	ctx context.Context,
	ownerID string,
	includeArchived bool,
) ([]BoardWithCounts, error) {
	boards, err := u.boardRepo.ListBoards(ctx, ownerID, includeArchived)
	if err != nil {
		return nil, err
	}

	// Two count queries per board. Fine at this scale; revisit with an
	// aggregation pipeline if board lists ever grow.
	annotated := make([]BoardWithCounts, 0, len(boards))
	for _, board := range boards {
		withCounts, err := u.withCounts(ctx, board)
		if err != nil {
			return nil, err
		}
		annotated = append(annotated, withCounts)
	}

	return annotated, nil
}

func (u *boardUsecase) GetBoard(ctx context.Context, ownerID, boardID string) (*BoardWithCounts, error) {
	board, err := u.boardRepo.GetBoard(ctx, boardID, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}

	withCounts, err := u.withCounts(ctx, board)
	if err != nil {
		return nil, err
	}

	return &withCounts, nil
}

func (u *boardUsecase) UpdateBoard(
	ctx context.Context,
	ownerID, boardID string,
	params UpdateBoardParams,
) (*model.Board, error) {
	updateParams := repository.UpdateBoardParams{
		Color:      params.Color,
		IsArchived: params.IsArchived,
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, ErrBoardTitleRequired
		}
		updateParams.Title = &title
	}

	if params.Description != nil {
		description := strings.TrimSpace(*params.Description)
		updateParams.Description = &description
	}

	board, err := u.boardRepo.UpdateBoard(ctx, boardID, ownerID, updateParams)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}

	return board, nil
}

func (u *boardUsecase) DeleteBoard(ctx context.Context, ownerID, boardID string, cascadeTasks bool) error {
	board, err := u.boardRepo.GetBoard(ctx, boardID, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrBoardNotFound
		}
		return err
	}

	if cascadeTasks {
		if _, err := u.taskRepo.DeleteTasksByBoard(ctx, board.ID.Hex()); err != nil {
			return err
		}
	} else {
		taskCount, err := u.taskRepo.CountTasksByBoard(ctx, board.ID.Hex(), nil)
		if err != nil {
			return err
		}
		if taskCount > 0 {
			return ErrBoardHasTasks
		}
	}

	if err := u.boardRepo.DeleteBoard(ctx, boardID, ownerID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrBoardNotFound
		}
		return err
	}

	return nil
}

func (u *boardUsecase) withCounts(ctx context.Context, board *model.Board) (BoardWithCounts, error) {
	total, err := u.taskRepo.CountTasksByBoard(ctx, board.ID.Hex(), nil)
	if err != nil {
		return BoardWithCounts{}, err
	}

	completed := true
	completedCount, err := u.taskRepo.CountTasksByBoard(ctx, board.ID.Hex(), &completed)
	if err != nil {
		return BoardWithCounts{}, err
	}

	return BoardWithCounts{
		Board:          *board,
		TaskCount:      total,
		CompletedCount: completedCount,
	}, nil
}
