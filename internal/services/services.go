package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkravets/taskdeck/internal/deck"
	"github.com/mkravets/taskdeck/internal/models"
	"github.com/mkravets/taskdeck/internal/taskview"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")

	ErrTaskNotFound        = errors.New("task not found")
	ErrInvalidTaskPriority = errors.New("invalid task priority")

	ErrDeckNotFound     = errors.New("deck not found")
	ErrInvalidSlideType = errors.New("invalid slide type")
)

type AuthService interface {
	// Login authenticates the user by email and password.
	//
	// It deletes all sessions with the same user ID, creates a new
	// session and generates a fresh JWT token pair.
	//
	// It returns ErrUserNotFound if the user with the given email
	// doesn't exist or ErrUserPasswordMismatch if the given
	// password doesn't match the user's password.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Refresh updates the session with the given refresh token.
	//
	// It returns ErrSessionNotFound if the session with the given
	// refresh token doesn't exist or ErrSessionExpired if the
	// session is expired.
	Refresh(ctx context.Context, params RefreshParams) (*LoginResult, error)

	// Register a user with the given email and password.
	//
	// It returns ErrUserAlreadyExists if the user with the given
	// email already exists.
	Register(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Logout invalidates all sessions with the given user ID.
	Logout(ctx context.Context, userID string) error

	// ParseJWTToken parses the given JWT token and returns the
	// registered claims or jwt.ErrTokenExpired if the token is expired.
	ParseJWTToken(token string) (*jwt.RegisteredClaims, error)
}

type SessionService interface {
	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)
}

// TaskService owns the authoritative task store and the derived
// views computed from its snapshots. Reads always return a complete
// snapshot run through the taskview engine, never a partial one.
type TaskService interface {
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// SortedTasks returns the user's tasks in default list order
	// (taskview.SortedView), each annotated with its classification
	// at the service clock's current instant.
	SortedTasks(ctx context.Context, userID string) ([]TaskView, error)

	// TaskSummary aggregates the user's snapshot: reminder count
	// plus per-status totals.
	TaskSummary(ctx context.Context, userID string) (*TaskSummary, error)

	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)
	CompleteTask(ctx context.Context, taskID, userID string) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID, userID string) error
}

// DeckService owns deck rows and their slide batches. Every slide
// mutation loads the batch into a deck.Deck, applies one operation
// and writes the whole batch back in a transaction, so the stored
// order stays contiguous after every request.
type DeckService interface {
	CreateDeck(ctx context.Context, userID, title string) (*models.Deck, error)
	GetDecks(ctx context.Context, userID string) ([]models.Deck, error)
	GetSlides(ctx context.Context, deckID, userID string) ([]models.Slide, error)

	AppendSlide(ctx context.Context, params AppendSlideParams) ([]models.Slide, error)
	UpdateSlide(ctx context.Context, params UpdateSlideParams) ([]models.Slide, error)
	RemoveSlide(ctx context.Context, deckID, userID string, slideID int) ([]models.Slide, error)
	MoveSlide(ctx context.Context, deckID, userID string, slideID int, dir deck.Direction) ([]models.Slide, error)
}

type LoginParams struct {
	Email       string
	Password    string
	Fingerprint string
}

type LoginResult struct {
	UserID                string
	SessionID             string
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

type RefreshParams struct {
	RefreshToken string
	Fingerprint  string
}

type CreateTaskParams struct {
	UserID       string
	Description  string
	Priority     string
	DueDate      *time.Time
	ProjectID    *string
	AssignedToID *string
	ParentTaskID *string
}

type UpdateTaskParams struct {
	ID           string
	UserID       string
	Description  *string
	Priority     *string
	DueDate      *time.Time
	ClearDueDate bool
	ProjectID    *string
	AssignedToID *string
	ParentTaskID *string
}

type TaskView struct {
	Task   models.Task
	Status taskview.Status
}

type TaskSummary struct {
	Total     int
	Reminders int
	ByStatus  map[string]int
}

type AppendSlideParams struct {
	DeckID    string
	UserID    string
	Title     string
	Content   string
	SlideType string
}

type UpdateSlideParams struct {
	DeckID    string
	UserID    string
	SlideID   int
	Title     *string
	Content   *string
	SlideType *string
}
