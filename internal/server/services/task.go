// This file implements TaskService: per-owner task CRUD, the priority
// sequencer, and the tab listings. Every operation takes the authenticated
// owner explicitly; nothing is read from ambient state.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shinxity/daylist/internal/common"
	"github.com/shinxity/daylist/internal/dbx"
	"github.com/shinxity/daylist/internal/server/models"
	"github.com/shinxity/daylist/internal/server/repositories/repomanager"
	"github.com/shinxity/daylist/internal/server/repositories/tasks"
	"github.com/shinxity/daylist/internal/server/tabs"
)

const (
	maxTitleLength = 200
	dueDateLayout  = "2006-01-02"
)

// Direction is a reorder request: move a task one position up or down within
// its priority group.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// ParseDirection maps a raw form value to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionUp:
		return DirectionUp, nil
	case DirectionDown:
		return DirectionDown, nil
	default:
		return "", common.ErrorValidation
	}
}

// TaskService provides task operations scoped to an owner. All multi-statement
// mutations (create with priority assignment, toggle, reorder swap) run inside
// a transaction so no partial priority update is ever persisted.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService using repositories.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// Create validates the input and inserts a new, uncompleted task with
// priority 1 + max over all tasks of the same owner and due date. The max
// spans both completion states.
func (s *TaskService) Create(ctx context.Context, ownerID, title, description, dueDate string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	due, err := parseDueDate(dueDate)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Title:       title,
		Description: description,
		DueDate:     due,
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)
		max, err := repo.MaxPriority(ctx, ownerID, due)
		if err != nil {
			return fmt.Errorf("error computing next priority: %w", err)
		}
		task.Priority = max + 1
		if _, err := repo.Create(ctx, task); err != nil {
			return fmt.Errorf("error creating task: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return task, nil
}

// Get returns a single task after the ownership check.
func (s *TaskService) Get(ctx context.Context, ownerID, id string) (*models.Task, error) {
	return s.getOwned(ctx, s.repomanager.Tasks(s.db), ownerID, id)
}

// Update rewrites title, description and due date. Priority and completion
// state are left untouched; invalid input leaves the stored task unchanged.
func (s *TaskService) Update(ctx context.Context, ownerID, id, title, description, dueDate string) error {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return err
	}
	due, err := parseDueDate(dueDate)
	if err != nil {
		return err
	}

	repo := s.repomanager.Tasks(s.db)
	if _, err := s.getOwned(ctx, repo, ownerID, id); err != nil {
		return err
	}
	if err := repo.Update(ctx, id, title, description, due); err != nil {
		return fmt.Errorf("error updating task: %w", err)
	}
	return nil
}

// Delete removes the task. Remaining priorities in its former group are not
// renumbered; gaps are permitted.
func (s *TaskService) Delete(ctx context.Context, ownerID, id string) error {
	repo := s.repomanager.Tasks(s.db)
	if _, err := s.getOwned(ctx, repo, ownerID, id); err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting task: %w", err)
	}
	return nil
}

// ToggleCompleted flips the completed flag, maintaining completed_at. The
// toggle moves the task into the opposite (owner, due date, completed) group,
// so its priority is reassigned to 1 + max over the owner's tasks for that
// date; leaving the old key could collide inside the destination group.
func (s *TaskService) ToggleCompleted(ctx context.Context, ownerID, id string) (*models.Task, error) {
	var task *models.Task

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		t, err := s.getOwned(ctx, repo, ownerID, id)
		if err != nil {
			return err
		}

		completed := !t.Completed
		var completedAt *time.Time
		if completed {
			now := time.Now()
			completedAt = &now
		}

		max, err := repo.MaxPriority(ctx, ownerID, t.DueDate)
		if err != nil {
			return fmt.Errorf("error computing next priority: %w", err)
		}

		if err := repo.SetCompleted(ctx, id, completed, completedAt, max+1); err != nil {
			return fmt.Errorf("error toggling task: %w", err)
		}

		t.Completed = completed
		t.CompletedAt = completedAt
		t.Priority = max + 1
		task = t
		return nil
	}); err != nil {
		return nil, err
	}
	return task, nil
}

// Reorder swaps the task's priority with its neighbour in the requested
// direction within the (owner, due date, completed) group. At a boundary the
// call is a silent no-op. Both sides of the swap commit or neither does.
func (s *TaskService) Reorder(ctx context.Context, ownerID, id string, dir Direction) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		task, err := s.getOwned(ctx, repo, ownerID, id)
		if err != nil {
			return err
		}

		group, err := repo.SelectGroup(ctx, ownerID, task.DueDate, task.Completed)
		if err != nil {
			return fmt.Errorf("error loading priority group: %w", err)
		}

		i := -1
		for n, t := range group {
			if t.ID == task.ID {
				i = n
				break
			}
		}
		if i < 0 {
			// task missing from its own recomputed group, treat as no-op
			return nil
		}

		var j int
		switch dir {
		case DirectionUp:
			j = i - 1
		case DirectionDown:
			j = i + 1
		default:
			return common.ErrorValidation
		}
		if j < 0 || j >= len(group) {
			return nil
		}

		if err := repo.UpdatePriority(ctx, group[i].ID, group[j].Priority); err != nil {
			return fmt.Errorf("error swapping priority: %w", err)
		}
		if err := repo.UpdatePriority(ctx, group[j].ID, group[i].Priority); err != nil {
			return fmt.Errorf("error swapping priority: %w", err)
		}
		return nil
	})
}

// ListBucket returns the owner's tasks for one tab relative to the given
// reference date:
//   - today:  due today, any completion state, by priority
//   - past:   due before today and completed only, most recent day first
//   - future: due after today, any completion state, soonest day first
func (s *TaskService) ListBucket(ctx context.Context, ownerID string, bucket tabs.Bucket, today time.Time) ([]*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	day := tabs.Day(today)

	var (
		list []*models.Task
		err  error
	)
	switch bucket {
	case tabs.BucketPast:
		list, err = repo.SelectPastCompleted(ctx, ownerID, day)
	case tabs.BucketFuture:
		list, err = repo.SelectUpcoming(ctx, ownerID, day)
	default:
		list, err = repo.SelectDueOn(ctx, ownerID, day)
	}
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return list, nil
}

// getOwned fetches a task and enforces the ownership guard. A task owned by
// someone else yields ErrorForbidden with no further detail.
func (s *TaskService) getOwned(ctx context.Context, repo tasks.Repository, ownerID, id string) (*models.Task, error) {
	task, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading task: %w", err)
	}
	if task.UserID != ownerID {
		return nil, common.ErrorForbidden
	}
	return task, nil
}

func validateTitle(title string) error {
	if title == "" || len(title) > maxTitleLength {
		return common.ErrorValidation
	}
	return nil
}

func parseDueDate(s string) (time.Time, error) {
	due, err := time.Parse(dueDateLayout, s)
	if err != nil {
		return time.Time{}, common.ErrorValidation
	}
	return due, nil
}
