package domain

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

const dateRule = "datetime=" + DateLayout

// LogQuery holds the raw log filter values taken from a query string. Empty means absent.
type LogQuery struct {
	From  string `validate:"omitempty,datetime=2006-01-02"`
	To    string `validate:"omitempty,datetime=2006-01-02"`
	Limit string `validate:"omitempty,number"`
}

// ExerciseInput holds the decoded, not yet trusted, body of an exercise creation request.
type ExerciseInput struct {
	Description any
	Duration    any
	Date        any
}

// ParseLogFilter validates raw log filter values and returns their typed form.
func ParseLogFilter(raw LogQuery) (LogFilter, error) {
	if err := validate.Struct(raw); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return LogFilter{}, ValidationError("invalid log filter: %v", err)
		}
		switch fe := fieldErrs[0]; fe.Field() {
		case "From":
			return LogFilter{}, invalidDate("from", raw.From)
		case "To":
			return LogFilter{}, invalidDate("to", raw.To)
		default:
			return LogFilter{}, invalidLimit(raw.Limit)
		}
	}

	filter := LogFilter{From: raw.From, To: raw.To}
	if raw.Limit != "" {
		limit, err := strconv.Atoi(raw.Limit)
		if err != nil {
			return LogFilter{}, invalidLimit(raw.Limit)
		}
		filter.Limit = limit
	}

	if filter.HasFrom() && filter.HasTo() && filter.From >= filter.To {
		return LogFilter{}, ValidationError("'from' must be a date before 'to'!")
	}
	return filter, nil
}

// ParseNewExercise validates an exercise creation request for ownerID. An absent date
// resolves to the UTC calendar date of now.
func ParseNewExercise(ownerID int64, raw ExerciseInput, now time.Time) (NewExercise, error) {
	if isBlank(raw.Description) || isBlank(raw.Duration) {
		return NewExercise{}, ValidationError("Please provide exercise description and duration")
	}

	description, ok := raw.Description.(string)
	if !ok {
		return NewExercise{}, ValidationError("Exercise description should be a string. You provided %v", raw.Description)
	}

	duration, ok := wholeNumber(raw.Duration)
	if !ok {
		return NewExercise{}, ValidationError("Exercise duration should be a positive whole number. You provided %v", raw.Duration)
	}

	date := now.UTC().Format(DateLayout)
	switch v := raw.Date.(type) {
	case nil:
	case string:
		if v != "" {
			if err := validate.Var(v, dateRule); err != nil {
				return NewExercise{}, invalidDate("date", v)
			}
			date = v
		}
	default:
		return NewExercise{}, ValidationError("Date should be a string in YYYY-MM-DD (ISO) format")
	}

	return NewExercise{
		OwnerID:     ownerID,
		Description: description,
		Duration:    duration,
		Date:        date,
	}, nil
}

// ParseUsername trims raw and rejects an empty result.
func ParseUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if err := validate.Var(username, "required"); err != nil {
		return "", ValidationError("Username not provided")
	}
	return username, nil
}

// ParseUserID parses a user identifier taken from a request path.
func ParseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ValidationError("The user id must be a whole number. You provided '%s'", raw)
	}
	return id, nil
}

func invalidDate(field, value string) *Error {
	return ValidationError("The parameter '%s' must be provided in the format YYYY-MM-DD. You provided '%s'", field, value)
}

func invalidLimit(value string) *Error {
	return ValidationError("The parameter 'limit' must be a whole number. You provided '%s'", value)
}

// isBlank mirrors the falsy check clients expect: missing, empty string, zero or false.
func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case float64:
		return t == 0
	case int:
		return t == 0
	case int64:
		return t == 0
	}
	return false
}

func wholeNumber(v any) (int, bool) {
	var f float64
	switch t := v.(type) {
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	default:
		return 0, false
	}
	if f != math.Trunc(f) || f < 1 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
