// Package domain defines the business logic for the exercise tracker.
package domain

import (
	"context"
	"time"
)

// Repository captures persistence operations. FindUserByID returns (nil, nil) when no
// user matches; every other failure is a *Error.
type Repository interface {
	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, username string) (*User, error)
	FindUserByID(ctx context.Context, id int64) (*User, error)
	CreateExercise(ctx context.Context, exercise NewExercise) (*Exercise, error)
	ListExercises(ctx context.Context, ownerID int64, filter LogFilter) ([]Exercise, error)
	CountExercises(ctx context.Context, ownerID int64, filter LogFilter) (int, error)
}

// Service orchestrates user and exercise workflows.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// ListUsers returns every registered user.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// RegisterUser creates a user with the given raw username.
func (s *Service) RegisterUser(ctx context.Context, rawUsername string) (*User, error) {
	username, err := ParseUsername(rawUsername)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateUser(ctx, username)
}

// GetUser fetches a user by ID.
func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NotFoundError("The user with the provided id does not exist!")
	}
	return user, nil
}

// LogExercise validates input and stores the exercise for ownerID. The repository
// rejects unknown owners.
func (s *Service) LogExercise(ctx context.Context, ownerID int64, input ExerciseInput) (*Exercise, error) {
	exercise, err := ParseNewExercise(ownerID, input, s.now())
	if err != nil {
		return nil, err
	}
	return s.repo.CreateExercise(ctx, exercise)
}

// UserLog validates the filter, resolves the user before touching exercises, then
// combines the filtered listing with the unlimited count for the same bounds.
func (s *Service) UserLog(ctx context.Context, userID int64, query LogQuery) (*UserLog, error) {
	filter, err := ParseLogFilter(query)
	if err != nil {
		return nil, err
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	logs, err := s.repo.ListExercises(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountExercises(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	return &UserLog{User: *user, Logs: logs, Count: count}, nil
}
