package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/taskboardhq/taskboard-api/internal/httpjson"
	"github.com/taskboardhq/taskboard-api/internal/middleware"
	"github.com/taskboardhq/taskboard-api/internal/payload"
	"github.com/taskboardhq/taskboard-api/internal/usecase"
	"github.com/taskboardhq/taskboard-api/shared/validator"
)

// TaskHandler handles ownership-scoped task CRUD.
type TaskHandler struct {
	taskUsecase usecase.TaskUsecase
	validate    *validator.Validator
	logger      *zerolog.Logger
}

// NewTaskHandler creates a new TaskHandler instance.
func NewTaskHandler(
	taskUsecase usecase.TaskUsecase,
	validate *validator.Validator,
	logger *zerolog.Logger,
) *TaskHandler {
	return &TaskHandler{
		taskUsecase: taskUsecase,
		validate:    validate,
		logger:      logger,
	}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req payload.CreateTaskRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskUsecase.CreateTask(r.Context(), userID, usecase.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		BoardID:     req.BoardID,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTaskTitleRequired):
			httpjson.Error(w, http.StatusBadRequest, "Task title is required")
		case errors.Is(err, usecase.ErrTaskDescriptionRequired):
			httpjson.Error(w, http.StatusBadRequest, "Task description is required")
		case errors.Is(err, usecase.ErrBoardIDRequired):
			httpjson.Error(w, http.StatusBadRequest, "Board ID is required")
		case errors.Is(err, usecase.ErrBoardNotFound):
			httpjson.Error(w, http.StatusNotFound, "Board not found")
		default:
			h.logger.Error().Err(err).Msg("failed to create task")
			httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
		}
		return
	}

	httpjson.Write(w, http.StatusCreated, payload.TaskResponse{
		Message: "Task added successfully",
		Task:    task,
	})
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var params usecase.FilterTasksParams
	if boardID := r.URL.Query().Get("boardId"); boardID != "" {
		params.BoardID = &boardID
	}
	if completedStr := r.URL.Query().Get("completed"); completedStr != "" {
		completed := completedStr == "true"
		params.Completed = &completed
	}

	tasks, err := h.taskUsecase.ListTasks(r.Context(), userID, params)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list tasks")
		httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	httpjson.Write(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	task, err := h.taskUsecase.GetTask(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Task not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to get task")
		httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	httpjson.Write(w, http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req payload.UpdateTaskRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskUsecase.UpdateTask(r.Context(), userID, chi.URLParam(r, "id"), usecase.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		BoardID:     req.BoardID,
		Completed:   req.Completed,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTaskNotFound):
			httpjson.Error(w, http.StatusNotFound, "Task not found")
		case errors.Is(err, usecase.ErrTargetBoardNotFound):
			httpjson.Error(w, http.StatusNotFound, "Target board not found")
		case errors.Is(err, usecase.ErrTaskTitleRequired):
			httpjson.Error(w, http.StatusBadRequest, "Task title is required")
		case errors.Is(err, usecase.ErrTaskDescriptionRequired):
			httpjson.Error(w, http.StatusBadRequest, "Task description is required")
		default:
			h.logger.Error().Err(err).Msg("failed to update task")
			httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
		}
		return
	}

	httpjson.Write(w, http.StatusOK, payload.TaskResponse{
		Message: "Task updated successfully",
		Task:    task,
	})
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	if err := h.taskUsecase.DeleteTask(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Task not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to delete task")
		httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	httpjson.Write(w, http.StatusOK, payload.MessageResponse{
		Message: "Task deleted successfully",
	})
}

func (h *TaskHandler) ToggleTaskCompletion(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	task, err := h.taskUsecase.ToggleCompletion(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Task not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to toggle task completion")
		httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	httpjson.Write(w, http.StatusOK, payload.TaskResponse{
		Message: "Task status updated",
		Task:    task,
	})
}
