package tasks

import (
	"context"
	"time"

	"github.com/shinxity/daylist/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	Update(ctx context.Context, id, title, description string, dueDate time.Time) error
	Delete(ctx context.Context, id string) error
	SetCompleted(ctx context.Context, id string, completed bool, completedAt *time.Time, priority int) error
	UpdatePriority(ctx context.Context, id string, priority int) error

	// MaxPriority spans both completion states of the (owner, due date) pair.
	MaxPriority(ctx context.Context, userID string, dueDate time.Time) (int, error)
	SelectGroup(ctx context.Context, userID string, dueDate time.Time, completed bool) ([]*models.Task, error)

	SelectDueOn(ctx context.Context, userID string, day time.Time) ([]*models.Task, error)
	SelectPastCompleted(ctx context.Context, userID string, day time.Time) ([]*models.Task, error)
	SelectUpcoming(ctx context.Context, userID string, day time.Time) ([]*models.Task, error)

	DeleteByUser(ctx context.Context, userID string) error
}
