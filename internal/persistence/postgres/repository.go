package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nikolacukic/exercise-tracker/internal/domain"
	"github.com/nikolacukic/exercise-tracker/internal/observability"
	"github.com/nikolacukic/exercise-tracker/internal/persistence"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Repository provides Postgres-backed persistence for users and exercises.
type Repository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{pool: pool, logger: logger}
}

// ListUsers returns all users in creation order.
func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, r.fail("list users", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, persistence.ListUsersSQL)
	if err != nil {
		return nil, r.fail("list users", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, r.fail("list users", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail("list users", err)
	}
	return users, nil
}

// CreateUser inserts a user and returns it with its assigned identifier.
func (r *Repository) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, r.fail("create user", err)
	}
	defer conn.Release()

	var id int64
	err = conn.QueryRow(ctx, persistence.InsertUserSQL, pgx.NamedArgs{"username": username}).Scan(&id)
	if err != nil {
		if pgCode(err) == uniqueViolation {
			return nil, domain.DuplicateError("User with the username %s already exists!", username)
		}
		return nil, r.fail("create user", err)
	}

	observability.RecordUserRegistered()
	return &domain.User{ID: id, Username: username}, nil
}

// FindUserByID returns the user or nil when it does not exist.
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, r.fail("find user", err)
	}
	defer conn.Release()

	user, err := findUser(ctx, conn, id)
	if err != nil {
		return nil, r.fail("find user", err)
	}
	return user, nil
}

// CreateExercise checks the owner and inserts the exercise on the same connection.
func (r *Repository) CreateExercise(ctx context.Context, exercise domain.NewExercise) (*domain.Exercise, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, r.fail("create exercise", err)
	}
	defer conn.Release()

	owner, err := findUser(ctx, conn, exercise.OwnerID)
	if err != nil {
		return nil, r.fail("create exercise", err)
	}
	if owner == nil {
		return nil, domain.OwnerMissingError(exercise.OwnerID)
	}

	var id int64
	err = conn.QueryRow(ctx, persistence.InsertExerciseSQL, pgx.NamedArgs{
		"description": exercise.Description,
		"duration":    exercise.Duration,
		"date":        exercise.Date,
		"owner":       exercise.OwnerID,
	}).Scan(&id)
	if err != nil {
		if pgCode(err) == foreignKeyViolation {
			return nil, domain.OwnerMissingError(exercise.OwnerID)
		}
		return nil, r.fail("create exercise", err)
	}

	observability.RecordExerciseLogged(time.Now())
	return &domain.Exercise{
		ID:          id,
		OwnerID:     owner.ID,
		Username:    owner.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date,
	}, nil
}

// ListExercises returns the owner's exercises matching filter in insertion order.
func (r *Repository) ListExercises(ctx context.Context, ownerID int64, filter domain.LogFilter) ([]domain.Exercise, error) {
	stmt := persistence.ListExercises(ownerID, filter)

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, r.fail("list exercises", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, stmt.SQL, pgx.NamedArgs(stmt.Args))
	if err != nil {
		return nil, r.fail("list exercises", err)
	}
	defer rows.Close()

	results := make([]domain.Exercise, 0)
	for rows.Next() {
		var e domain.Exercise
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Username, &e.Description, &e.Duration, &e.Date); err != nil {
			return nil, r.fail("list exercises", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail("list exercises", err)
	}
	return results, nil
}

// CountExercises counts the owner's exercises matching the date bounds of filter.
func (r *Repository) CountExercises(ctx context.Context, ownerID int64, filter domain.LogFilter) (int, error) {
	stmt := persistence.CountExercises(ownerID, filter)

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, r.fail("count exercises", err)
	}
	defer conn.Release()

	var count int
	if err := conn.QueryRow(ctx, stmt.SQL, pgx.NamedArgs(stmt.Args)).Scan(&count); err != nil {
		return 0, r.fail("count exercises", err)
	}
	return count, nil
}

// ApplySchema executes a schema script. Used by the setup command and tests only.
func (r *Repository) ApplySchema(ctx context.Context, script string) error {
	if _, err := r.pool.Exec(ctx, script); err != nil {
		return r.fail("apply schema", err)
	}
	return nil
}

// Close releases the pool.
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func (r *Repository) fail(op string, err error) error {
	observability.RecordStorageFailure(op)
	r.logger.Error("postgres operation failed", zap.String("op", op), zap.Error(err))
	return domain.StorageError(op, err)
}

func findUser(ctx context.Context, conn *pgxpool.Conn, id int64) (*domain.User, error) {
	var u domain.User
	err := conn.QueryRow(ctx, persistence.FindUserByIDSQL, pgx.NamedArgs{"id": id}).Scan(&u.ID, &u.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
