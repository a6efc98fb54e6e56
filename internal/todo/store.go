package todo

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ambrogio-dev/ambrogio/internal/atomicfile"
)

// Store is the file-backed task store. It holds no state besides the path:
// every call reads, parses and, for mutations, rewrites the whole file.
//
// Store does not lock the file. Concurrent invocations against the same file
// can lose updates.
type Store struct {
	path   string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore returns a store backed by the file at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Projects returns project names in file order.
func (s *Store) Projects() ([]string, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Projects(), nil
}

// Summaries returns per-project counters.
func (s *Store) Summaries() ([]ProjectSummary, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Summaries(), nil
}

// LoadAll returns every open and done task that belongs to a project.
func (s *Store) LoadAll() ([]Task, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.All(), nil
}

// OpenTasks returns open tasks with their global open-index.
func (s *Store) OpenTasks() ([]Task, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.OpenTasks(), nil
}

// AddProject appends a project header. It is the only operation that creates
// the file when it does not exist yet.
func (s *Store) AddProject(name string) error {
	content, exists, err := s.read()
	if err != nil {
		return err
	}
	updated, err := AddProject(content, name)
	if err != nil {
		return err
	}
	if !exists {
		s.logger.Debug("creating todo file", "path", s.path)
	}
	return s.write(updated)
}

// DeleteProject removes a project and everything nested under it.
func (s *Store) DeleteProject(name string) error {
	return s.mutate("delete_project", func(content string) (string, error) {
		return DeleteProject(content, name)
	})
}

// AddTask appends an open task to the end of a project's section.
func (s *Store) AddTask(project, description string) error {
	return s.mutate("add_task", func(content string) (string, error) {
		return AddTask(content, project, description)
	})
}

// Complete marks the open task at index as done and returns it.
func (s *Store) Complete(index int) (Task, error) {
	return s.mutateTask("complete", index, func(content string) (string, error) {
		return Complete(content, index)
	})
}

// Delete removes the open task at index with its sub-items and returns it.
func (s *Store) Delete(index int) (Task, error) {
	return s.mutateTask("delete", index, func(content string) (string, error) {
		return Delete(content, index)
	})
}

// AddFocusRecord records a focus session against the open task at index.
func (s *Store) AddFocusRecord(index int, startedAt time.Time, cancelled bool) (Task, error) {
	return s.mutateTask("add_focus_record", index, func(content string) (string, error) {
		return AddFocusRecord(content, index, startedAt, cancelled)
	})
}

// AddNote attaches a note to the open task at index.
func (s *Store) AddNote(index int, text string) (Task, error) {
	return s.mutateTask("add_note", index, func(content string) (string, error) {
		return AddNote(content, index, text)
	})
}

func (s *Store) mutate(op string, fn func(string) (string, error)) error {
	content, _, err := s.read()
	if err != nil {
		return err
	}
	updated, err := fn(content)
	if err != nil {
		s.logger.Debug("mutation rejected", "op", op, "error", err)
		return err
	}
	return s.write(updated)
}

// mutateTask resolves the task from the same content the mutation is applied
// to, so the returned task is the one that was changed.
func (s *Store) mutateTask(op string, index int, fn func(string) (string, error)) (Task, error) {
	content, _, err := s.read()
	if err != nil {
		return Task{}, err
	}
	tasks := Parse(content).OpenTasks()
	updated, err := fn(content)
	if err != nil {
		s.logger.Debug("mutation rejected", "op", op, "index", index, "error", err)
		return Task{}, err
	}
	if err := s.write(updated); err != nil {
		return Task{}, err
	}
	return tasks[index], nil
}

func (s *Store) load() (*Document, error) {
	content, _, err := s.read()
	if err != nil {
		return nil, err
	}
	return Parse(content), nil
}

// read returns the file content. A missing file reads as empty content and
// exists=false.
func (s *Store) read() (content string, exists bool, err error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("todo file missing, treating as empty", "path", s.path)
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w %s: %w", ErrFileRead, s.path, err)
	}
	s.logger.Debug("loaded todo file", "path", s.path, "bytes", len(data))
	return string(data), true, nil
}

func (s *Store) write(content string) error {
	if err := atomicfile.WriteFile(s.path, []byte(content), 0); err != nil {
		return fmt.Errorf("%w %s: %w", ErrFileWrite, s.path, err)
	}
	s.logger.Debug("wrote todo file", "path", s.path, "bytes", len(content))
	return nil
}
