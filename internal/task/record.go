package task

import (
	"time"
)

// Record is the plain serialized form of a task. Status is a pointer so
// that an absent status can be told apart from an empty one.
type Record struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      *string `json:"status,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// Record returns the serialized form of the task.
func (t *Task) Record() Record {
	status := string(t.status)
	return Record{
		ID:          t.id,
		Title:       t.title,
		Description: t.description,
		Status:      &status,
		CreatedAt:   FormatTime(t.createdAt),
		UpdatedAt:   FormatTime(t.updatedAt),
	}
}

// FromRecord decodes a serialized record.
// An absent status defaults to StatusTodo; an empty or unrecognized one is
// a format error. Both timestamps are required.
func FromRecord(r Record) (*Task, error) {
	if err := validateTitle(r.Title); err != nil {
		return nil, &FormatError{ID: r.ID, Field: "title", Value: r.Title, Err: ErrEmptyTitle}
	}

	status := StatusTodo
	if r.Status != nil {
		parsed, err := ParseStatus(*r.Status)
		if err != nil {
			return nil, &FormatError{ID: r.ID, Field: "status", Value: *r.Status, Err: ErrInvalidStatus}
		}
		status = parsed
	}

	createdAt, err := parseRecordTime(r, "created_at", r.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseRecordTime(r, "updated_at", r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if updatedAt.Before(createdAt) {
		return nil, &FormatError{ID: r.ID, Field: "updated_at", Value: r.UpdatedAt, Err: ErrInvalidTimestamp}
	}

	return &Task{
		id:          r.ID,
		title:       r.Title,
		description: r.Description,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// FormatTime renders a timestamp in the persisted layout.
func FormatTime(t time.Time) string {
	return normalizeTime(t).Format(TimeLayout)
}

// ParseTime parses an RFC 3339 timestamp.
func ParseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}
	return normalizeTime(t), nil
}

// parseRecordTime rejects a missing, empty or malformed timestamp.
func parseRecordTime(r Record, field, value string) (time.Time, error) {
	t, err := ParseTime(value)
	if err != nil {
		return time.Time{}, &FormatError{ID: r.ID, Field: field, Value: value, Err: ErrInvalidTimestamp}
	}
	return t, nil
}
