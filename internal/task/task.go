package task

import (
	"strings"
	"time"
)

// TimeLayout is the textual form of persisted timestamps.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Task represents a single to-do record.
type Task struct {
	id          int
	title       string
	description string
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

// Option sets an optional field at construction.
type Option func(*Task)

// WithStatus sets the initial status. The default is StatusTodo.
func WithStatus(status Status) Option {
	return func(t *Task) {
		t.status = status
	}
}

// WithTimestamps sets both timestamps instead of stamping the current time.
func WithTimestamps(createdAt, updatedAt time.Time) Option {
	return func(t *Task) {
		t.createdAt = normalizeTime(createdAt)
		t.updatedAt = normalizeTime(updatedAt)
	}
}

// New creates a task with the given identity and text fields.
// An empty title or a status outside Statuses is reported as a
// *ValidationError; FromRecord reports the same problems in stored data as
// a *FormatError.
func New(id int, title, description string, opts ...Option) (*Task, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	stamp := now()
	t := &Task{
		id:          id,
		title:       title,
		description: description,
		status:      StatusTodo,
		createdAt:   stamp,
		updatedAt:   stamp,
	}
	for _, opt := range opts {
		opt(t)
	}

	if !t.status.Valid() {
		return nil, &ValidationError{Field: "status", Err: ErrInvalidStatus}
	}
	if t.updatedAt.Before(t.createdAt) {
		return nil, &ValidationError{Field: "updated_at", Err: ErrInvalidTimestamp}
	}
	return t, nil
}

func (t *Task) ID() int              { return t.id }
func (t *Task) Title() string        { return t.title }
func (t *Task) Description() string  { return t.description }
func (t *Task) Status() Status       { return t.status }
func (t *Task) CreatedAt() time.Time { return t.createdAt }
func (t *Task) UpdatedAt() time.Time { return t.updatedAt }

// Rename replaces the title and refreshes updated_at.
func (t *Task) Rename(title string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	t.title = title
	t.touch()
	return nil
}

// SetStatus replaces the status and refreshes updated_at.
// Setting the current status again still refreshes the timestamp.
func (t *Task) SetStatus(status Status) error {
	if !status.Valid() {
		return &ValidationError{Field: "status", Err: ErrInvalidStatus}
	}
	t.status = status
	t.touch()
	return nil
}

// SetDescription replaces the description and refreshes updated_at.
func (t *Task) SetDescription(description string) {
	t.description = description
	t.touch()
}

// Equal reports whether both tasks hold the same values.
func (t *Task) Equal(other *Task) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.id == other.id &&
		t.title == other.title &&
		t.description == other.description &&
		t.status == other.status &&
		t.createdAt.Equal(other.createdAt) &&
		t.updatedAt.Equal(other.updatedAt)
}

// touch moves updated_at strictly forward, even when the clock has not
// advanced past the previous stamp.
func (t *Task) touch() {
	stamp := now()
	if !stamp.After(t.updatedAt) {
		stamp = t.updatedAt.Add(time.Microsecond)
	}
	t.updatedAt = stamp
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Err: ErrEmptyTitle}
	}
	return nil
}

func now() time.Time {
	return normalizeTime(time.Now())
}

func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
