package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/taskinder-go/internal/task"
)

// Document is the on-disk unit of truth.
type Document struct {
	LastID int           `json:"last_id"`
	Tasks  []task.Record `json:"tasks"`
}

// NewDocument returns the empty document.
func NewDocument() *Document {
	return &Document{LastID: 0, Tasks: []task.Record{}}
}

// Store is the sole reader and writer of one store file.
type Store struct {
	path   string
	schema *jsonschema.Schema
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a store for the file at path. The file is not touched until
// the first Load or Save.
func New(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	s := &Store{
		path:   path,
		schema: schema,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the current document. A missing or zero-length file yields
// the empty document.
func (s *Store) Load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewDocument(), nil
		}
		return nil, &IOError{Op: "read", Path: s.path, Err: err}
	}
	if len(data) == 0 {
		return NewDocument(), nil
	}

	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, &FormatError{Path: s.path, Err: fmt.Errorf("parse json: %w", err)}
	}
	if err := s.schema.Validate(raw); err != nil {
		return nil, &FormatError{Path: s.path, Err: schemaError(err)}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Path: s.path, Err: fmt.Errorf("decode document: %w", err)}
	}
	if doc.Tasks == nil {
		doc.Tasks = []task.Record{}
	}
	return &doc, nil
}

// Save replaces the store file with doc.
func (s *Store) Save(doc *Document) error {
	out := *doc
	if out.Tasks == nil {
		out.Tasks = []task.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&out); err != nil {
		return fmt.Errorf("marshal store document: %w", err)
	}

	if err := s.writeAtomic(buf.Bytes()); err != nil {
		return err
	}
	s.logger.Debug("store saved", "path", s.path, "last_id", out.LastID, "tasks", len(out.Tasks))
	return nil
}

// NextID allocates the next task ID and records it in doc.LastID.
// An empty task list restarts numbering at 1, even if IDs were issued before.
func (s *Store) NextID(doc *Document) int {
	id := 1
	if len(doc.Tasks) > 0 {
		id = doc.LastID + 1
	}
	doc.LastID = id
	return id
}

func (s *Store) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOError{Op: "create directory for", Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &IOError{Op: "sync", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return &IOError{Op: "replace", Path: s.path, Err: err}
	}
	committed = true
	return nil
}
