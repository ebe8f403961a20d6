// Package persistence contains helpers shared by repository implementations.
package persistence

import (
	"strings"

	"github.com/nikolacukic/exercise-tracker/internal/domain"
)

// Statement is a query with its named arguments. Parameters are written as @name,
// which both pgx.NamedArgs and SQLite understand.
type Statement struct {
	SQL  string
	Args map[string]any
}

const (
	listExercisesBase  = `SELECT e.id, e.owner_id, u.username, e.description, e.duration, e.date FROM exercise e JOIN "user" u ON u.id = e.owner_id WHERE e.owner_id = @owner`
	countExercisesBase = `SELECT COUNT(*) FROM exercise e WHERE e.owner_id = @owner`
)

// Fixed statements.
const (
	ListUsersSQL      = `SELECT id, username FROM "user" ORDER BY id`
	InsertUserSQL     = `INSERT INTO "user" (username) VALUES (@username) RETURNING id`
	FindUserByIDSQL   = `SELECT id, username FROM "user" WHERE id = @id`
	InsertExerciseSQL = `INSERT INTO exercise (description, duration, date, owner_id) VALUES (@description, @duration, @date, @owner) RETURNING id`
)

type clause struct {
	sql      string
	param    string
	listOnly bool
	present  func(domain.LogFilter) bool
	value    func(domain.LogFilter) any
}

// exerciseClauses are appended in order; a clause contributes SQL and its argument only
// when its bound is present.
var exerciseClauses = []clause{
	{
		sql:     " AND e.date >= @from",
		param:   "from",
		present: domain.LogFilter.HasFrom,
		value:   func(f domain.LogFilter) any { return f.From },
	},
	{
		sql:     " AND e.date <= @to",
		param:   "to",
		present: domain.LogFilter.HasTo,
		value:   func(f domain.LogFilter) any { return f.To },
	},
	{
		sql:      " ORDER BY e.id",
		listOnly: true,
		present:  func(domain.LogFilter) bool { return true },
	},
	{
		sql:      " LIMIT @limit",
		param:    "limit",
		listOnly: true,
		present:  domain.LogFilter.HasLimit,
		value:    func(f domain.LogFilter) any { return f.Limit },
	},
}

// ListExercises builds the listing query for ownerID under filter.
func ListExercises(ownerID int64, filter domain.LogFilter) Statement {
	return build(listExercisesBase, ownerID, filter, true)
}

// CountExercises builds the count query for ownerID under filter. The row limit never
// applies to counts.
func CountExercises(ownerID int64, filter domain.LogFilter) Statement {
	return build(countExercisesBase, ownerID, filter, false)
}

func build(base string, ownerID int64, filter domain.LogFilter, listing bool) Statement {
	var sb strings.Builder
	sb.WriteString(base)
	args := map[string]any{"owner": ownerID}

	for _, c := range exerciseClauses {
		if c.listOnly && !listing {
			continue
		}
		if !c.present(filter) {
			continue
		}
		sb.WriteString(c.sql)
		if c.param != "" {
			args[c.param] = c.value(filter)
		}
	}

	return Statement{SQL: sb.String(), Args: args}
}
