// Package service implements task operations and their business rules.
package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskinder-go/internal/task"
)

// Repository is the persistence the service works through.
type Repository interface {
	GetAll() ([]*task.Task, error)
	FindByID(id int) (*task.Task, bool, error)
	FindByTitle(title string) ([]*task.Task, error)
	FindByStatus(status task.Status) ([]*task.Task, error)
	AllocateAndAdd(title, description string, status task.Status) (*task.Task, error)
	Update(t *task.Task) error
	Delete(id int) (bool, error)
}

// TaskUpdate lists the fields to change. Nil fields are left as they are.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *task.Status
}

// IsEmpty reports whether the update changes nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil
}

// Service is the validation and orchestration layer used by commands.
// It holds no lock; callers serialize calls or configure a repository locker.
type Service struct {
	repo   Repository
	logger *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a service over repo.
func New(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTask validates the title and stores a new TODO task.
func (s *Service) CreateTask(title, description string) (*task.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, &task.ValidationError{Field: "title", Err: task.ErrEmptyTitle}
	}
	t, err := s.repo.AllocateAndAdd(title, description, task.StatusTodo)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("created task", "id", t.ID())
	return t, nil
}

// UpdateTask applies the provided fields to the task with id and persists it.
// A missing task is reported by the boolean. Invalid input fails before
// anything is written.
func (s *Service) UpdateTask(id int, update TaskUpdate) (*task.Task, bool, error) {
	if update.Status != nil && !update.Status.Valid() {
		return nil, false, fmt.Errorf("%w %q", task.ErrInvalidStatus, *update.Status)
	}

	t, ok, err := s.repo.FindByID(id)
	if err != nil || !ok {
		return nil, ok, err
	}

	if update.Title != nil {
		if err := t.Rename(*update.Title); err != nil {
			return nil, true, err
		}
	}
	if update.Description != nil {
		t.SetDescription(*update.Description)
	}
	if update.Status != nil {
		if err := t.SetStatus(*update.Status); err != nil {
			return nil, true, err
		}
	}

	if err := s.repo.Update(t); err != nil {
		return nil, true, err
	}
	s.logger.Debug("updated task", "id", id, "status", t.Status())
	return t, true, nil
}

// DeleteTask removes the task with id and reports whether it existed.
func (s *Service) DeleteTask(id int) (bool, error) {
	return s.repo.Delete(id)
}

// ListTasks returns every task in insertion order.
func (s *Service) ListTasks() ([]*task.Task, error) {
	return s.repo.GetAll()
}

// ListByStatus returns the tasks with status. An undefined status fails
// without reading the store.
func (s *Service) ListByStatus(status task.Status) ([]*task.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w %q", task.ErrInvalidStatus, status)
	}
	return s.repo.FindByStatus(status)
}

// GetTask returns the task with id.
func (s *Service) GetTask(id int) (*task.Task, bool, error) {
	return s.repo.FindByID(id)
}

// GetTasksByTitle returns the tasks whose title matches exactly.
func (s *Service) GetTasksByTitle(title string) ([]*task.Task, error) {
	return s.repo.FindByTitle(title)
}
