// Package http exposes the daylist application over HTTP using echo. Routing
// is thin glue: every handler resolves input, calls a service, and maps
// sentinel errors to a response. All task routes sit behind the session gate.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shinxity/daylist/internal/logging"
	"github.com/shinxity/daylist/internal/server/models"
	"github.com/shinxity/daylist/internal/server/services"
	"github.com/shinxity/daylist/internal/server/tabs"
)

// UserService is the slice of the user service the HTTP layer depends on.
type UserService interface {
	Register(ctx context.Context, fullName, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// TaskService is the slice of the task service the HTTP layer depends on.
type TaskService interface {
	Create(ctx context.Context, ownerID, title, description, dueDate string) (*models.Task, error)
	Update(ctx context.Context, ownerID, id, title, description, dueDate string) error
	Delete(ctx context.Context, ownerID, id string) error
	ToggleCompleted(ctx context.Context, ownerID, id string) (*models.Task, error)
	Reorder(ctx context.Context, ownerID, id string, dir services.Direction) error
	ListBucket(ctx context.Context, ownerID string, bucket tabs.Bucket, today time.Time) ([]*models.Task, error)
}

type Server struct {
	address    string
	users      UserService
	tasks      TaskService
	logger     logging.Logger
	jwtSecret  []byte
	sessionTTL time.Duration
	echo       *echo.Echo
}

func NewServer(a string, l logging.Logger, us UserService, ts TaskService, secretKey string, sessionTTL time.Duration) *Server {
	s := &Server{
		address:    a,
		logger:     l.With("module", "http_server"),
		users:      us,
		tasks:      ts,
		jwtSecret:  []byte(secretKey),
		sessionTTL: sessionTTL,
	}
	s.echo = s.buildEcho()
	return s
}

func (s *Server) buildEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Public routes
	e.GET("/", s.handleRoot)
	e.GET("/ping", s.handlePing)
	e.GET("/login", s.handleAuthPage)
	e.GET("/register", s.handleAuthPage)
	e.POST("/login", s.handleLogin)
	e.POST("/register", s.handleRegister)
	e.POST("/logout", s.handleLogout)

	// Group for authenticated routes
	protected := e.Group("")
	protected.Use(s.sessionMiddleware)

	protected.GET("/home", s.handleHome)
	protected.POST("/tasks", s.handleCreateTask)
	protected.POST("/tasks/:id/edit", s.handleEditTask)
	protected.POST("/tasks/:id/delete", s.handleDeleteTask)
	protected.POST("/tasks/:id/toggle", s.handleToggleTask)
	protected.POST("/tasks/:id/move", s.handleMoveTask)
	protected.POST("/account/delete", s.handleDeleteAccount)

	return e
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.echo.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
