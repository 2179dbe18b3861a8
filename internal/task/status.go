package task

import "fmt"

// Status represents a task status.
type Status string

const (
	StatusTodo  Status = "TODO"
	StatusDoing Status = "DOING"
	StatusDone  Status = "DONE"
)

// Statuses returns every status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusDoing, StatusDone}
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus parses an exact status literal.
func ParseStatus(value string) (Status, error) {
	s := Status(value)
	if !s.Valid() {
		return "", fmt.Errorf("%w %q, must be one of: TODO, DOING, DONE", ErrInvalidStatus, value)
	}
	return s, nil
}
