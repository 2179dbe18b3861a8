// Package repository provides typed CRUD over the task store document.
//
// Every public operation is one transaction against the document: it loads
// the whole document, works on it in memory and, if it mutates, saves the
// whole document back. Nothing is cached between calls. Without a Locker,
// calls that interleave against the same file can lose an update.
package repository

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskinder-go/internal/store"
	"github.com/nibzard/taskinder-go/internal/task"
)

// ErrNotFound is returned when updating a task ID that is not stored.
var ErrNotFound = errors.New("task not found")

// DocumentStore loads and saves the store document.
type DocumentStore interface {
	Path() string
	Load() (*store.Document, error)
	Save(doc *store.Document) error
	NextID(doc *store.Document) int
}

// Locker serializes whole repository operations.
type Locker interface {
	Lock() error
	Unlock() error
}

type nopLocker struct{}

func (nopLocker) Lock() error   { return nil }
func (nopLocker) Unlock() error { return nil }

// Repository is the typed boundary between task entities and the document.
type Repository struct {
	store  DocumentStore
	locker Locker
	logger *log.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithLocker wraps every operation in locker.
func WithLocker(locker Locker) Option {
	return func(r *Repository) {
		if locker != nil {
			r.locker = locker
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a repository over s.
func New(s DocumentStore, opts ...Option) *Repository {
	r := &Repository{
		store:  s,
		locker: nopLocker{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetAll returns every task in insertion order.
func (r *Repository) GetAll() ([]*task.Task, error) {
	var tasks []*task.Task
	err := r.read(func(all []*task.Task) {
		tasks = all
	})
	return tasks, err
}

// FindByID returns the task with id. A missing task is reported by the
// boolean, not as an error.
func (r *Repository) FindByID(id int) (*task.Task, bool, error) {
	var found *task.Task
	err := r.read(func(all []*task.Task) {
		for _, t := range all {
			if t.ID() == id {
				found = t
				return
			}
		}
	})
	if err != nil {
		return nil, false, err
	}
	return found, found != nil, nil
}

// FindByTitle returns the tasks whose title matches exactly.
func (r *Repository) FindByTitle(title string) ([]*task.Task, error) {
	return r.filter(func(t *task.Task) bool {
		return t.Title() == title
	})
}

// FindByStatus returns the tasks with status, in insertion order.
func (r *Repository) FindByStatus(status task.Status) ([]*task.Task, error) {
	return r.filter(func(t *task.Task) bool {
		return t.Status() == status
	})
}

// AllocateAndAdd assigns the next ID, appends a new task and saves, all
// within one load-save unit. Nothing is saved if the task is invalid.
func (r *Repository) AllocateAndAdd(title, description string, status task.Status) (*task.Task, error) {
	var created *task.Task
	err := r.write(func(doc *store.Document) (bool, error) {
		id := r.store.NextID(doc)
		t, err := task.New(id, title, description, task.WithStatus(status))
		if err != nil {
			return false, err
		}
		doc.Tasks = append(doc.Tasks, t.Record())
		created = t
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	r.logger.Debug("task added", "id", created.ID(), "title", created.Title())
	return created, nil
}

// Update replaces the stored record with the same ID as t. The file is not
// rewritten when the stored task already equals t.
func (r *Repository) Update(t *task.Task) error {
	err := r.write(func(doc *store.Document) (bool, error) {
		for i := range doc.Tasks {
			if doc.Tasks[i].ID != t.ID() {
				continue
			}
			if stored, err := task.FromRecord(doc.Tasks[i]); err == nil && stored.Equal(t) {
				return false, nil
			}
			doc.Tasks[i] = t.Record()
			return true, nil
		}
		return false, fmt.Errorf("task %d: %w", t.ID(), ErrNotFound)
	})
	if err != nil {
		return err
	}
	r.logger.Debug("task updated", "id", t.ID())
	return nil
}

// Delete removes the task with id and reports whether one was removed.
// An unknown ID returns false with a nil error and leaves the file untouched.
func (r *Repository) Delete(id int) (bool, error) {
	removed := false
	err := r.write(func(doc *store.Document) (bool, error) {
		kept := make([]task.Record, 0, len(doc.Tasks))
		for _, rec := range doc.Tasks {
			if rec.ID == id {
				removed = true
				continue
			}
			kept = append(kept, rec)
		}
		if !removed {
			return false, nil
		}
		doc.Tasks = kept
		return true, nil
	})
	if err != nil {
		return false, err
	}
	if removed {
		r.logger.Debug("task deleted", "id", id)
	}
	return removed, nil
}

func (r *Repository) filter(match func(*task.Task) bool) ([]*task.Task, error) {
	matched := []*task.Task{}
	err := r.read(func(all []*task.Task) {
		for _, t := range all {
			if match(t) {
				matched = append(matched, t)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return matched, nil
}

// read loads the document and hands every decoded task to fn.
func (r *Repository) read(fn func([]*task.Task)) error {
	return r.locked(func() error {
		doc, err := r.store.Load()
		if err != nil {
			return err
		}
		tasks, err := r.decode(doc)
		if err != nil {
			return err
		}
		fn(tasks)
		return nil
	})
}

// write loads the document, lets fn mutate it, and saves only when fn
// reports a change.
func (r *Repository) write(fn func(*store.Document) (bool, error)) error {
	return r.locked(func() error {
		doc, err := r.store.Load()
		if err != nil {
			return err
		}
		changed, err := fn(doc)
		if err != nil || !changed {
			return err
		}
		return r.store.Save(doc)
	})
}

func (r *Repository) locked(fn func() error) (err error) {
	if err := r.locker.Lock(); err != nil {
		return err
	}
	defer func() {
		if unlockErr := r.locker.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}()
	return fn()
}

func (r *Repository) decode(doc *store.Document) ([]*task.Task, error) {
	tasks := make([]*task.Task, 0, len(doc.Tasks))
	for _, rec := range doc.Tasks {
		t, err := task.FromRecord(rec)
		if err != nil {
			return nil, &store.FormatError{Path: r.store.Path(), Err: err}
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
