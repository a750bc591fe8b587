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

// BoardHandler handles ownership-scoped board CRUD.
type BoardHandler struct {
	boardUsecase usecase.BoardUsecase
	validate     *validator.Validator
	logger       *zerolog.Logger
}

// NewBoardHandler creates a new BoardHandler instance.
func NewBoardHandler(
	boardUsecase usecase.BoardUsecase,
	validate *validator.Validator,
	logger *zerolog.Logger,
) *BoardHandler {
	return &BoardHandler{
		boardUsecase: boardUsecase,
		validate:     validate,
		logger:       logger,
	}
}

func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req payload.CreateBoardRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	board, err := h.boardUsecase.CreateBoard(r.Context(), userID, usecase.CreateBoardParams{
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrBoardTitleRequired) {
			httpjson.Error(w, http.StatusBadRequest, "Board title is required")
			return
		}

		h.logger.Error().Err(err).Msg("failed to create board")
		httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	httpjson.Write(w, http.StatusCreated, payload.BoardResponse{
		Message: "Board created successfully",
		Board:   board,
	})
}

func (h *BoardHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	includeArchived := r.URL.Query().Get("includeArchived") == "true"

	boards, err := h.boardUsecase.ListBoards(r.Context(), userID, includeArchived)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list boards")
		httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	httpjson.Write(w, http.StatusOK, boards)
}

func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	board, err := h.boardUsecase.GetBoard(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrBoardNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Board not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to get board")
		httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	httpjson.Write(w, http.StatusOK, board)
}

func (h *BoardHandler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req payload.UpdateBoardRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	board, err := h.boardUsecase.UpdateBoard(r.Context(), userID, chi.URLParam(r, "id"), usecase.UpdateBoardParams{
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		IsArchived:  req.IsArchived,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBoardNotFound):
			httpjson.Error(w, http.StatusNotFound, "Board not found")
		case errors.Is(err, usecase.ErrBoardTitleRequired):
			httpjson.Error(w, http.StatusBadRequest, "Board title is required")
		default:
			h.logger.Error().Err(err).Msg("failed to update board")
			httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
		}
		return
	}

	httpjson.Write(w, http.StatusOK, payload.BoardResponse{
		Message: "Board updated successfully",
		Board:   board,
	})
}

func (h *BoardHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	cascadeTasks := r.URL.Query().Get("deleteTasks") == "true"

	err := h.boardUsecase.DeleteBoard(r.Context(), userID, chi.URLParam(r, "id"), cascadeTasks)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBoardNotFound):
			httpjson.Error(w, http.StatusNotFound, "Board not found")
		case errors.Is(err, usecase.ErrBoardHasTasks):
			httpjson.Error(w, http.StatusBadRequest,
				"Cannot delete board with tasks. Either delete tasks first or use ?deleteTasks=true")
		default:
			h.logger.Error().Err(err).Msg("failed to delete board")
			httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
		}
		return
	}

	httpjson.Write(w, http.StatusOK, payload.MessageResponse{
		Message: "Board deleted successfully",
	})
}
