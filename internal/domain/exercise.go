package domain

// DateLayout is the calendar date format used for exercise dates and log filter bounds.
const DateLayout = "2006-01-02"

// User is a registered account that exercises are logged against.
type User struct {
	ID       int64
	Username string
}

// Exercise is a single logged workout owned by a user.
type Exercise struct {
	ID          int64
	OwnerID     int64
	Username    string
	Description string
	Duration    int
	Date        string
}

// NewExercise is a validated exercise awaiting insertion.
type NewExercise struct {
	OwnerID     int64
	Description string
	Duration    int
	Date        string
}

// LogFilter narrows a log query. Zero values mean the bound is absent.
type LogFilter struct {
	From  string
	To    string
	Limit int
}

// HasFrom reports whether a lower date bound is set.
func (f LogFilter) HasFrom() bool { return f.From != "" }

// HasTo reports whether an upper date bound is set.
func (f LogFilter) HasTo() bool { return f.To != "" }

// HasLimit reports whether a row limit is set.
func (f LogFilter) HasLimit() bool { return f.Limit > 0 }

// UserLog combines a user with a filtered view of their exercises. Count covers the
// whole filtered set even when Logs was truncated by the row limit.
type UserLog struct {
	User  User
	Logs  []Exercise
	Count int
}
