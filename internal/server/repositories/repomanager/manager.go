package repomanager

import (
	"context"
	"database/sql"

	"github.com/shinxity/daylist/internal/dbx"
	"github.com/shinxity/daylist/internal/server/repositories/tasks"
	"github.com/shinxity/daylist/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
