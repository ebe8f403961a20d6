// Package sqlite stores users and exercises in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/nikolacukic/exercise-tracker/internal/domain"
	"github.com/nikolacukic/exercise-tracker/internal/observability"
	"github.com/nikolacukic/exercise-tracker/internal/persistence"
)

// Repository provides SQLite-backed persistence over a database/sql pool.
type Repository struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens the database file at path with foreign keys enforced.
func Open(path string, logger *zap.Logger) (*Repository, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return NewRepository(db, logger), nil
}

// NewRepository constructs a Repository around an open pool.
func NewRepository(db *sql.DB, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{db: db, logger: logger}
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// ListUsers returns all users in creation order.
func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, r.fail("list users", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, persistence.ListUsersSQL)
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
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, r.fail("create user", err)
	}
	defer conn.Close()

	var id int64
	err = conn.QueryRowContext(ctx, persistence.InsertUserSQL, sql.Named("username", username)).Scan(&id)
	if err != nil {
		if isConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE) {
			return nil, domain.DuplicateError("User with the username %s already exists!", username)
		}
		return nil, r.fail("create user", err)
	}

	observability.RecordUserRegistered()
	return &domain.User{ID: id, Username: username}, nil
}

// FindUserByID returns the user or nil when it does not exist.
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, r.fail("find user", err)
	}
	defer conn.Close()

	user, err := findUser(ctx, conn, id)
	if err != nil {
		return nil, r.fail("find user", err)
	}
	return user, nil
}

// CreateExercise checks the owner and inserts the exercise on the same connection.
func (r *Repository) CreateExercise(ctx context.Context, exercise domain.NewExercise) (*domain.Exercise, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, r.fail("create exercise", err)
	}
	defer conn.Close()

	owner, err := findUser(ctx, conn, exercise.OwnerID)
	if err != nil {
		return nil, r.fail("create exercise", err)
	}
	if owner == nil {
		return nil, domain.OwnerMissingError(exercise.OwnerID)
	}

	var id int64
	err = conn.QueryRowContext(ctx, persistence.InsertExerciseSQL,
		sql.Named("description", exercise.Description),
		sql.Named("duration", exercise.Duration),
		sql.Named("date", exercise.Date),
		sql.Named("owner", exercise.OwnerID),
	).Scan(&id)
	if err != nil {
		if isConstraint(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY) {
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

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, r.fail("list exercises", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, stmt.SQL, namedArgs(stmt.Args)...)
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

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, r.fail("count exercises", err)
	}
	defer conn.Close()

	var count int
	if err := conn.QueryRowContext(ctx, stmt.SQL, namedArgs(stmt.Args)...).Scan(&count); err != nil {
		return 0, r.fail("count exercises", err)
	}
	return count, nil
}

// ApplySchema executes a schema script. Used by the setup command and tests only.
func (r *Repository) ApplySchema(ctx context.Context, script string) error {
	if _, err := r.db.ExecContext(ctx, script); err != nil {
		return r.fail("apply schema", err)
	}
	return nil
}

// Close closes the pool.
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) fail(op string, err error) error {
	observability.RecordStorageFailure(op)
	r.logger.Error("sqlite operation failed", zap.String("op", op), zap.Error(err))
	return domain.StorageError(op, err)
}

func findUser(ctx context.Context, conn *sql.Conn, id int64) (*domain.User, error) {
	var u domain.User
	err := conn.QueryRowContext(ctx, persistence.FindUserByIDSQL, sql.Named("id", id)).Scan(&u.ID, &u.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func namedArgs(args map[string]any) []any {
	out := make([]any, 0, len(args))
	for name, value := range args {
		out = append(out, sql.Named(name, value))
	}
	return out
}

// isConstraint matches the extended result code, or the primary constraint code when the
// driver did not report an extended one.
func isConstraint(err error, extended int) bool {
	code := sqliteCode(err)
	return code == extended || code == sqlite3.SQLITE_CONSTRAINT
}

func sqliteCode(err error) int {
	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code()
	}
	return 0
}
