// Package todo persists per-user task lists in a JSON file that maps a
// username to an ordered list of task strings. The file is independent from
// the accounts store; the authentication core never reads it.
package todo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arzm/accountkeeper/internal/common"
	"github.com/arzm/accountkeeper/internal/logging"
)

// CompletedPrefix marks a task as done in place.
const CompletedPrefix = "[done] "

// Store owns the tasks file.
type Store struct {
	path string
	log  logging.Logger
}

func NewStore(path string, log logging.Logger) *Store {
	return &Store{path: path, log: log}
}

// load reads the whole username-to-tasks map. A missing or unparsable file
// yields an empty map.
func (s *Store) load(ctx context.Context) map[string][]string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn(ctx, "tasks file unreadable", "path", s.path, "error", err.Error())
		}
		return map[string][]string{}
	}

	var all map[string][]string
	if err := json.Unmarshal(data, &all); err != nil {
		s.log.Warn(ctx, "tasks file unparsable, starting empty", "path", s.path)
		return map[string][]string{}
	}
	return all
}

func (s *Store) save(ctx context.Context, all map[string][]string) error {
	data, err := json.MarshalIndent(all, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o770); err != nil {
		return fmt.Errorf("mkdir for tasks file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o660); err != nil {
		return fmt.Errorf("writing tasks file: %w", err)
	}
	s.log.Info(ctx, "tasks file updated")
	return nil
}

// Tasks returns the task list for the given username, empty when none exist.
func (s *Store) Tasks(ctx context.Context, username string) []string {
	return s.load(ctx)[username]
}

// Add appends a task to the user's list. Empty and duplicate tasks are
// rejected.
func (s *Store) Add(ctx context.Context, username, task string) error {
	task = strings.TrimSpace(task)
	if task == "" {
		return errors.New("task cannot be empty")
	}

	all := s.load(ctx)
	for _, existing := range all[username] {
		if existing == task {
			return fmt.Errorf("task %q already exists", task)
		}
	}
	all[username] = append(all[username], task)
	return s.save(ctx, all)
}

// Remove deletes the task at the given zero-based index from the user's list
// and returns the removed task.
func (s *Store) Remove(ctx context.Context, username string, index int) (string, error) {
	all := s.load(ctx)
	tasks := all[username]
	if index < 0 || index >= len(tasks) {
		return "", common.ErrNotFound
	}

	removed := tasks[index]
	all[username] = append(tasks[:index], tasks[index+1:]...)
	return removed, s.save(ctx, all)
}

// Complete marks the task at the given zero-based index as done. Completing
// an already-done task is an error.
func (s *Store) Complete(ctx context.Context, username string, index int) error {
	all := s.load(ctx)
	tasks := all[username]
	if index < 0 || index >= len(tasks) {
		return common.ErrNotFound
	}
	if strings.HasPrefix(tasks[index], CompletedPrefix) {
		return fmt.Errorf("task %q is already completed", tasks[index])
	}

	tasks[index] = CompletedPrefix + tasks[index]
	all[username] = tasks
	return s.save(ctx, all)
}
