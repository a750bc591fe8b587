package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/taskboardhq/taskboard-api/internal/model"
	"github.com/taskboardhq/taskboard-api/internal/repository"
)

// TaskUsecase defines the interface for task-related use cases. Like boards,
// every operation is scoped to the calling owner.
type TaskUsecase interface {
	// CreateTask persists a task under a board that must exist and belong to
	// the caller.
	CreateTask(ctx context.Context, ownerID string, params CreateTaskParams) (*model.Task, error)
	ListTasks(ctx context.Context, ownerID string, params FilterTasksParams) ([]*model.Task, error)
	GetTask(ctx context.Context, ownerID, taskID string) (*model.Task, error)

	// UpdateTask applies a partial update. Reassigning the task to another
	// board requires that board to exist and belong to the caller.
	UpdateTask(ctx context.Context, ownerID, taskID string, params UpdateTaskParams) (*model.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error

	// ToggleCompletion flips the completed flag.
	ToggleCompletion(ctx context.Context, ownerID, taskID string) (*model.Task, error)
}

// CreateTaskParams defines the parameters for creating a task.
type CreateTaskParams struct {
	Title       string
	Description string
	BoardID     string
	Priority    string
	DueDate     *time.Time
}

// FilterTasksParams defines the optional filters for listing tasks.
type FilterTasksParams struct {
	BoardID   *string
	Completed *bool
}

// UpdateTaskParams defines the optional fields for a partial task update.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	BoardID     *string
	Completed   *bool
	Priority    *string
	DueDate     *time.Time
}

var (
	ErrTaskNotFound            = errors.New("task not found")
	ErrTaskTitleRequired       = errors.New("task title is required")
	ErrTaskDescriptionRequired = errors.New("task description is required")
	ErrBoardIDRequired         = errors.New("board id is required")
	ErrTargetBoardNotFound     = errors.New("target board not found")
)

type taskUsecase struct {
	taskRepo  repository.TaskRepository
	boardRepo repository.BoardRepository
}

// NewTaskUsecase creates a new instance of TaskUsecase.
func NewTaskUsecase(taskRepo repository.TaskRepository, boardRepo repository.BoardRepository) TaskUsecase {
	return &taskUsecase{
		taskRepo:  taskRepo,
		boardRepo: boardRepo,
	}
}

func (u *taskUsecase) CreateTask(
	ctx context.Context,
	ownerID string,
	params CreateTaskParams,
) (*model.Task, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, ErrTaskTitleRequired
	}

	description := strings.TrimSpace(params.Description)
	if description == "" {
		return nil, ErrTaskDescriptionRequired
	}

	if params.BoardID == "" {
		return nil, ErrBoardIDRequired
	}

	board, err := u.boardRepo.GetBoard(ctx, params.BoardID, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}

	priority := params.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	ownerObjectID, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, err
	}

	return u.taskRepo.CreateTask(ctx, &model.Task{
		Title:       title,
		Description: description,
		OwnerID:     ownerObjectID,
		BoardID:     board.ID,
		Completed:   false,
		Priority:    priority,
		DueDate:     params.DueDate,
	})
}

func (u *taskUsecase) ListTasks(
	ctx context.Context,
	ownerID string,
	params FilterTasksParams,
) ([]*model.Task, error) {
	tasks, err := u.taskRepo.ListTasks(ctx, ownerID, repository.FilterTasksParams{
		BoardID:   params.BoardID,
		Completed: params.Completed,
	})
	if err != nil {
		// A malformed board filter can never match anything.
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []*model.Task{}, nil
		}
		return nil, err
	}

	if tasks == nil {
		tasks = []*model.Task{}
	}

	return tasks, nil
}

func (u *taskUsecase) GetTask(ctx context.Context, ownerID, taskID string) (*model.Task, error) {
	task, err := u.taskRepo.GetTask(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

func (u *taskUsecase) UpdateTask(
	ctx context.Context,
	ownerID, taskID string,
	params UpdateTaskParams,
) (*model.Task, error) {
	task, err := u.taskRepo.GetTask(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	updateParams := repository.UpdateTaskParams{
		Completed: params.Completed,
		Priority:  params.Priority,
		DueDate:   params.DueDate,
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, ErrTaskTitleRequired
		}
		updateParams.Title = &title
	}

	if params.Description != nil {
		description := strings.TrimSpace(*params.Description)
		if description == "" {
			return nil, ErrTaskDescriptionRequired
		}
		updateParams.Description = &description
	}

	if params.BoardID != nil && *params.BoardID != task.BoardID.Hex() {
		if _, err := u.boardRepo.GetBoard(ctx, *params.BoardID, ownerID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrTargetBoardNotFound
			}
			return nil, err
		}
		updateParams.BoardID = params.BoardID
	}

	updated, err := u.taskRepo.UpdateTask(ctx, taskID, ownerID, updateParams)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return updated, nil
}

func (u *taskUsecase) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	if err := u.taskRepo.DeleteTask(ctx, taskID, ownerID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTaskNotFound
		}
		return err
	}

	return nil
}

func (u *taskUsecase) ToggleCompletion(ctx context.Context, ownerID, taskID string) (*model.Task, error) {
	task, err := u.taskRepo.GetTask(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	completed := !task.Completed
	updated, err := u.taskRepo.UpdateTask(ctx, taskID, ownerID, repository.UpdateTaskParams{
		Completed: &completed,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return updated, nil
}
