package users

import (
	"context"

	"github.com/shinxity/daylist/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
