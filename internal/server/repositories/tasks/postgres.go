// Package tasks provides the PostgreSQL-backed repository for task rows:
// CRUD, per-group priority queries, and the three tab listings.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shinxity/daylist/internal/common"
	"github.com/shinxity/daylist/internal/dbx"
	"github.com/shinxity/daylist/internal/server/models"
)

const taskColumns = `id, user_id, title, description, due_date, completed, priority, created_at, completed_at`

// PostgresRepository implements task storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	query :=
		`INSERT INTO tasks (id, user_id, title, description, due_date, completed, priority)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, task.DueDate,
		task.Completed, task.Priority).Scan(&task.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// Update rewrites the editable fields only; priority and completion state are
// left untouched.
func (r *PostgresRepository) Update(ctx context.Context, id, title, description string, dueDate time.Time) error {
	query :=
		`UPDATE tasks SET title = $2, description = $3, due_date = $4
		 WHERE id = $1
		 `

	return r.execExpectingOneRow(ctx, query, id, title, description, dueDate)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = $1`

	return r.execExpectingOneRow(ctx, query, id)
}

func (r *PostgresRepository) SetCompleted(ctx context.Context, id string, completed bool, completedAt *time.Time, priority int) error {
	query :=
		`UPDATE tasks SET completed = $2, completed_at = $3, priority = $4
		 WHERE id = $1
		 `

	var at sql.NullTime
	if completedAt != nil {
		at = sql.NullTime{Time: *completedAt, Valid: true}
	}

	return r.execExpectingOneRow(ctx, query, id, completed, at, priority)
}

func (r *PostgresRepository) UpdatePriority(ctx context.Context, id string, priority int) error {
	query := `UPDATE tasks SET priority = $2 WHERE id = $1`

	return r.execExpectingOneRow(ctx, query, id, priority)
}

func (r *PostgresRepository) MaxPriority(ctx context.Context, userID string, dueDate time.Time) (int, error) {
	query :=
		`SELECT COALESCE(MAX(priority), 0) FROM tasks
		 WHERE user_id = $1 AND due_date = $2
		 `

	var max int
	if err := r.db.QueryRowContext(ctx, query, userID, dueDate).Scan(&max); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return max, nil
}

// SelectGroup returns the full ordered priority group a task belongs to.
func (r *PostgresRepository) SelectGroup(ctx context.Context, userID string, dueDate time.Time, completed bool) ([]*models.Task, error) {
	query :=
		`SELECT ` + taskColumns + ` FROM tasks
		 WHERE user_id = $1 AND due_date = $2 AND completed = $3
		 ORDER BY priority ASC
		 `

	return r.selectTasks(ctx, query, userID, dueDate, completed)
}

func (r *PostgresRepository) SelectDueOn(ctx context.Context, userID string, day time.Time) ([]*models.Task, error) {
	query :=
		`SELECT ` + taskColumns + ` FROM tasks
		 WHERE user_id = $1 AND due_date = $2
		 ORDER BY priority ASC
		 `

	return r.selectTasks(ctx, query, userID, day)
}

// SelectPastCompleted deliberately excludes incomplete overdue tasks; most
// recent past day first.
func (r *PostgresRepository) SelectPastCompleted(ctx context.Context, userID string, day time.Time) ([]*models.Task, error) {
	query :=
		`SELECT ` + taskColumns + ` FROM tasks
		 WHERE user_id = $1 AND due_date < $2 AND completed = TRUE
		 ORDER BY due_date DESC, priority ASC
		 `

	return r.selectTasks(ctx, query, userID, day)
}

func (r *PostgresRepository) SelectUpcoming(ctx context.Context, userID string, day time.Time) ([]*models.Task, error) {
	query :=
		`SELECT ` + taskColumns + ` FROM tasks
		 WHERE user_id = $1 AND due_date > $2
		 ORDER BY due_date ASC, priority ASC
		 `

	return r.selectTasks(ctx, query, userID, day)
}

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := `DELETE FROM tasks WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) execExpectingOneRow(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) selectTasks(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	var result []*models.Task
	for rows.Next() {
		item, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var task models.Task
	var completedAt sql.NullTime

	err := row.Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description, &task.DueDate,
		&task.Completed, &task.Priority, &task.CreatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}
	return &task, nil
}
