// Package todo keeps per-user task records. Every read or mutation is
// scoped to the owner recorded at creation time.
package todo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/taskbox/taskbox/internal/database"
)

type (
	Store struct {
		db *database.DB
	}

	Todo struct {
		ID        string    `json:"todo_id"`
		UserID    string    `json:"user_id"`
		Task      string    `json:"task"`
		Completed bool      `json:"completed"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	// Update carries the fields a caller wants changed; nil means
	// leave untouched.
	Update struct {
		Task      *string
		Completed *bool
	}

	Stats struct {
		Total     int `json:"total"`
		Completed int `json:"completed"`
		Pending   int `json:"pending"`
	}
)

// Setup creates the tables required by the todo store.
func Setup(ctx context.Context, db *database.DB) error {
	_, err := db.ExecContext(ctx, `create table if not exists todos (
		todo_id text primary key,
		user_id text not null,
		task text not null,
		completed boolean not null default false,
		created_at timestamp not null,
		updated_at timestamp not null)`)
	if err != nil {
		return fmt.Errorf("todo: unable to create todos table, cause %w", err)
	}
	_, err = db.ExecContext(ctx, `create index if not exists idx_todos_user_id on todos (user_id)`)
	if err != nil {
		return fmt.Errorf("todo: unable to create todos index, cause %w", err)
	}
	return nil
}

func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// List returns every todo owned by userID, most recently created
// first. No todos is an empty slice, never an error.
func (s *Store) List(ctx context.Context, userID string) ([]Todo, error) {
	rows, err := s.db.QueryContext(ctx,
		s.db.Rebind(`select todo_id, user_id, task, completed, created_at, updated_at
			from todos where user_id = ? order by created_at desc`),
		userID)
	if err != nil {
		return nil, fmt.Errorf("todo: unable to list todos, cause %w", err)
	}
	defer rows.Close()
	out := []Todo{}
	for rows.Next() {
		var t Todo
		err = rows.Scan(&t.ID, &t.UserID, &t.Task, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("todo: unable to scan todo row, cause %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("todo: unable to list todos, cause %w", err)
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, userID, task string) (Todo, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return Todo{}, ValidationError{Msg: "Task is required"}
	}
	id, err := gonanoid.New()
	if err != nil {
		return Todo{}, fmt.Errorf("todo: unable to generate todo id, cause %w", err)
	}
	now := time.Now().UTC()
	t := Todo{
		ID:        "todo_" + id,
		UserID:    userID,
		Task:      task,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = s.db.ExecContext(ctx,
		s.db.Rebind(`insert into todos (todo_id, user_id, task, completed, created_at, updated_at)
			values (?, ?, ?, ?, ?, ?)`),
		t.ID, t.UserID, t.Task, t.Completed, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return Todo{}, fmt.Errorf("todo: unable to insert todo, cause %w", err)
	}
	return t, nil
}

// Get loads a todo on behalf of requesterID. A missing todo is
// NotFoundError; one owned by someone else is NotOwnerError, checked
// in that order.
func (s *Store) Get(ctx context.Context, todoID, requesterID string) (Todo, error) {
	t, err := s.load(ctx, todoID)
	if err != nil {
		return Todo{}, err
	}
	if t.UserID != requesterID {
		return Todo{}, NotOwnerError{TodoID: todoID}
	}
	return t, nil
}

// Apply performs a partial update. Concurrent updates to the same
// todo are last-writer-wins, there is no version check.
func (s *Store) Apply(ctx context.Context, todoID, requesterID string, u Update) (Todo, error) {
	// existence and ownership come first, an empty update against a
	// missing todo is a 404, not a 400
	t, err := s.Get(ctx, todoID, requesterID)
	if err != nil {
		return Todo{}, err
	}
	if u.Task == nil && u.Completed == nil {
		return Todo{}, ValidationError{Msg: "No fields to update"}
	}
	if u.Task != nil {
		task := strings.TrimSpace(*u.Task)
		if task == "" {
			return Todo{}, ValidationError{Msg: "Task is required"}
		}
		t.Task = task
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	t.UpdatedAt = time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		s.db.Rebind(`update todos set task = ?, completed = ?, updated_at = ? where todo_id = ?`),
		t.Task, t.Completed, t.UpdatedAt, t.ID)
	if err != nil {
		return Todo{}, fmt.Errorf("todo: unable to update todo %v, cause %w", todoID, err)
	}
	return t, nil
}

// Delete removes the todo. Deleting an id that is already gone yields
// NotFoundError, deletion is not idempotent.
func (s *Store) Delete(ctx context.Context, todoID, requesterID string) error {
	_, err := s.Get(ctx, todoID, requesterID)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, s.db.Rebind(`delete from todos where todo_id = ?`), todoID)
	if err != nil {
		return fmt.Errorf("todo: unable to delete todo %v, cause %w", todoID, err)
	}
	return nil
}

// Stats aggregates the user's todos in a single pass.
func (s *Store) Stats(ctx context.Context, userID string) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		s.db.Rebind(`select count(*),
			coalesce(sum(case when completed then 1 else 0 end), 0),
			coalesce(sum(case when completed then 0 else 1 end), 0)
			from todos where user_id = ?`),
		userID).Scan(&st.Total, &st.Completed, &st.Pending)
	if err != nil {
		return Stats{}, fmt.Errorf("todo: unable to aggregate stats, cause %w", err)
	}
	return st, nil
}

func (s *Store) load(ctx context.Context, todoID string) (Todo, error) {
	var t Todo
	err := s.db.QueryRowContext(ctx,
		s.db.Rebind(`select todo_id, user_id, task, completed, created_at, updated_at
			from todos where todo_id = ?`),
		todoID).Scan(&t.ID, &t.UserID, &t.Task, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Todo{}, NotFoundError{TodoID: todoID}
	} else if err != nil {
		return Todo{}, fmt.Errorf("todo: unable to load todo %v, cause %w", todoID, err)
	}
	return t, nil
}
