package usecase

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/taskboardhq/taskboard-api/internal/model"
	"github.com/taskboardhq/taskboard-api/internal/repository"
)

// Function-field mocks. A nil field falls back to a harmless default, so each
// test only wires the calls it cares about.

type mockUserRepository struct {
	CreateUserFunc                 func(ctx context.Context, user *model.User) (*model.User, error)
	GetUserFunc                    func(ctx context.Context, id string) (*model.User, error)
	GetUserByEmailFunc             func(ctx context.Context, email string) (*model.User, error)
	GetUserByVerificationTokenFunc func(ctx context.Context, token string) (*model.User, error)
	GetUserByResetTokenFunc        func(ctx context.Context, token string, now time.Time) (*model.User, error)
	SetVerificationTokenFunc       func(ctx context.Context, id, token string) error
	MarkVerifiedFunc               func(ctx context.Context, id string) (*model.User, error)
	SetResetTokenFunc              func(ctx context.Context, id, token string, expiresAt time.Time) error
	ResetPasswordFunc              func(ctx context.Context, id, passwordHash string) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(ctx, email)
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockUserRepository) GetUserByVerificationToken(ctx context.Context, token string) (*model.User, error) {
	if m.GetUserByVerificationTokenFunc != nil {
		return m.GetUserByVerificationTokenFunc(ctx, token)
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockUserRepository) GetUserByResetToken(
	ctx context.Context,
	token string,
	now time.Time,
) (*model.User, error) {
	if m.GetUserByResetTokenFunc != nil {
		return m.GetUserByResetTokenFunc(ctx, token, now)
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockUserRepository) SetVerificationToken(ctx context.Context, id, token string) error {
	if m.SetVerificationTokenFunc != nil {
		return m.SetVerificationTokenFunc(ctx, id, token)
	}
	return nil
}

func (m *mockUserRepository) MarkVerified(ctx context.Context, id string) (*model.User, error) {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, id)
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockUserRepository) SetResetToken(
	ctx context.Context,
	id, token string,
	expiresAt time.Time,
) error {
	if m.SetResetTokenFunc != nil {
		return m.SetResetTokenFunc(ctx, id, token, expiresAt)
	}
	return nil
}

func (m *mockUserRepository) ResetPassword(ctx context.Context, id, passwordHash string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

type mockBoardRepository struct {
	CreateBoardFunc func(ctx context.Context, board *model.Board) (*model.Board, error)
	GetBoardFunc    func(ctx context.Context, id, ownerID string) (*model.Board, error)
	ListBoardsFunc  func(ctx context.Context, ownerID string, includeArchived bool) ([]*model.Board, error)
	UpdateBoardFunc func(ctx context.Context, id, ownerID string, params repository.UpdateBoardParams) (*model.Board, error)
	DeleteBoardFunc func(ctx context.Context, id, ownerID string) error
}

func (m *mockBoardRepository) CreateBoard(ctx context.Context, board *model.Board) (*model.Board, error) {
	if m.CreateBoardFunc != nil {
		return m.CreateBoardFunc(ctx, board)
	}
	return board, nil
}

func (m *mockBoardRepository) GetBoard(ctx context.Context, id, ownerID string) (*model.Board, error) {
	if m.GetBoardFunc != nil {
		return m.GetBoardFunc(ctx, id, ownerID)
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockBoardRepository) ListBoards(
	ctx context.Context,
	ownerID string,
	includeArchived bool,
) ([]*model.Board, error) {
	if m.ListBoardsFunc != nil {
		return m.ListBoardsFunc(ctx, ownerID, includeArchived)
	}
	return nil, nil
}

func (m *mockBoardRepository) UpdateBoard(
	ctx context.Context,
	id, ownerID string,
	params repository.UpdateBoardParams,
) (*model.Board, error) {
	if m.UpdateBoardFunc != nil {
		return m.UpdateBoardFunc(ctx, id, ownerID, params)
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockBoardRepository) DeleteBoard(ctx context.Context, id, ownerID string) error {
	if m.DeleteBoardFunc != nil {
		return m.DeleteBoardFunc(ctx, id, ownerID)
	}
	return mongo.ErrNoDocuments
}

type mockTaskRepository struct {
	CreateTaskFunc         func(ctx context.Context, task *model.Task) (*model.Task, error)
	GetTaskFunc            func(ctx context.Context, id, ownerID string) (*model.Task, error)
	ListTasksFunc          func(ctx context.Context, ownerID string, params repository.FilterTasksParams) ([]*model.Task, error)
	UpdateTaskFunc         func(ctx context.Context, id, ownerID string, params repository.UpdateTaskParams) (*model.Task, error)
	DeleteTaskFunc         func(ctx context.Context, id, ownerID string) error
	DeleteTasksByBoardFunc func(ctx context.Context, boardID string) (int64, error)
	CountTasksByBoardFunc  func(ctx context.Context, boardID string, completed *bool) (int64, error)
}

func (m *mockTaskRepository) CreateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	if m.CreateTaskFunc != nil {
		return m.CreateTaskFunc(ctx, task)
	}
	return task, nil
}

func (m *mockTaskRepository) GetTask(ctx context.Context, id, ownerID string) (*model.Task, error) {
	if m.GetTaskFunc != nil {
		return m.GetTaskFunc(ctx, id, ownerID)
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockTaskRepository) ListTasks(
	ctx context.Context,
	ownerID string,
	params repository.FilterTasksParams,
) ([]*model.Task, error) {
	if m.ListTasksFunc != nil {
		return m.ListTasksFunc(ctx, ownerID, params)
	}
	return nil, nil
}

func (m *mockTaskRepository) UpdateTask(
	ctx context.Context,
	id, ownerID string,
	params repository.UpdateTaskParams,
) (*model.Task, error) {
	if m.UpdateTaskFunc != nil {
		return m.UpdateTaskFunc(ctx, id, ownerID, params)
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockTaskRepository) DeleteTask(ctx context.Context, id, ownerID string) error {
	if m.DeleteTaskFunc != nil {
		return m.DeleteTaskFunc(ctx, id, ownerID)
	}
	return mongo.ErrNoDocuments
}

func (m *mockTaskRepository) DeleteTasksByBoard(ctx context.Context, boardID string) (int64, error) {
	if m.DeleteTasksByBoardFunc != nil {
		return m.DeleteTasksByBoardFunc(ctx, boardID)
	}
	return 0, nil
}

func (m *mockTaskRepository) CountTasksByBoard(
	ctx context.Context,
	boardID string,
	completed *bool,
) (int64, error) {
	if m.CountTasksByBoardFunc != nil {
		return m.CountTasksByBoardFunc(ctx, boardID, completed)
	}
	return 0, nil
}

type sentEmail struct {
	to       []string
	subject  string
	htmlBody string
}

// mockMailer records every send. Set failWith to simulate a delivery failure.
type mockMailer struct {
	mu       sync.Mutex
	sent     []sentEmail
	failWith error
}

func (m *mockMailer) SendHTML(to []string, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}

	m.sent = append(m.sent, sentEmail{to: to, subject: subject, htmlBody: htmlBody})
	return nil
}

func (m *mockMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *mockMailer) lastSent() sentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}
