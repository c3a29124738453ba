package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinxity/daylist/internal/common"
	"github.com/shinxity/daylist/internal/server/models"
	"github.com/shinxity/daylist/internal/server/services"
	"github.com/shinxity/daylist/internal/server/tabs"
)

const dueDateLayout = "2006-01-02"

// taskView is the JSON shape of a task at the boundary.
type taskView struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	DueDate     string  `json:"due_date"`
	Completed   bool    `json:"completed"`
	Priority    int     `json:"priority"`
	CompletedAt *string `json:"completed_at,omitempty"`
}

type homeView struct {
	Username string     `json:"username"`
	Tab      string     `json:"tab"`
	Ongoing  []taskView `json:"ongoing"`
	Complete []taskView `json:"complete"`
}

func toTaskView(t *models.Task) taskView {
	v := taskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate.Format(dueDateLayout),
		Completed:   t.Completed,
		Priority:    t.Priority,
	}
	if t.CompletedAt != nil {
		at := t.CompletedAt.Format(time.RFC3339)
		v.CompletedAt = &at
	}
	return v
}

func toTaskViews(list []*models.Task) []taskView {
	out := make([]taskView, 0, len(list))
	for _, t := range list {
		out = append(out, toTaskView(t))
	}
	return out
}

// mapError converts service sentinels into boundary responses. Store-level
// failures are logged server-side and surfaced as a generic message only.
func (s *Server) mapError(c echo.Context, err error) error {
	ctx := c.Request().Context()
	switch {
	case errors.Is(err, common.ErrorValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input"})
	case errors.Is(err, common.ErrorInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid username or password"})
	case errors.Is(err, common.ErrorDuplicateUsername):
		return c.JSON(http.StatusConflict, echo.Map{"error": "username already taken"})
	case errors.Is(err, common.ErrorNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, common.ErrorForbidden):
		// uniform response, no detail about the task's existence
		return c.Redirect(http.StatusSeeOther, "/home")
	default:
		s.logger.Error(ctx, "request failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "something went wrong"})
	}
}

func (s *Server) handlePing(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "OK"})
}

func (s *Server) handleRoot(c echo.Context) error {
	if _, ok := s.resolveSession(c); ok {
		return c.Redirect(http.StatusSeeOther, "/home")
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

// handleAuthPage mirrors the classic form pages: an already authenticated
// visitor is sent straight home.
func (s *Server) handleAuthPage(c echo.Context) error {
	if _, ok := s.resolveSession(c); ok {
		return c.Redirect(http.StatusSeeOther, "/home")
	}
	return c.NoContent(http.StatusOK)
}

func (s *Server) handleRegister(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := s.users.Register(ctx,
		c.FormValue("name"), c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		return s.mapError(c, err)
	}

	// registration implies login
	if err := s.establishSession(c, user); err != nil {
		return s.mapError(c, err)
	}

	s.logger.Info(ctx, "registered", "username", user.UserName)
	return c.Redirect(http.StatusSeeOther, "/home")
}

func (s *Server) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := s.users.Login(ctx, c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		return s.mapError(c, err)
	}

	if err := s.establishSession(c, user); err != nil {
		return s.mapError(c, err)
	}

	s.logger.Info(ctx, "logged in", "username", user.UserName)
	return c.Redirect(http.StatusSeeOther, "/home")
}

func (s *Server) handleLogout(c echo.Context) error {
	s.clearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (s *Server) handleHome(c echo.Context) error {
	user := principalFrom(c)
	bucket := tabs.ParseBucket(c.QueryParam("tab"))

	list, err := s.tasks.ListBucket(c.Request().Context(), user.ID, bucket, time.Now())
	if err != nil {
		return s.mapError(c, err)
	}

	ongoing, complete := tabs.Partition(list)
	return c.JSON(http.StatusOK, homeView{
		Username: user.UserName,
		Tab:      string(bucket),
		Ongoing:  toTaskViews(ongoing),
		Complete: toTaskViews(complete),
	})
}

func (s *Server) handleCreateTask(c echo.Context) error {
	user := principalFrom(c)

	_, err := s.tasks.Create(c.Request().Context(), user.ID,
		c.FormValue("title"), c.FormValue("description"), c.FormValue("due_date"))
	if err != nil {
		return s.mapError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/home")
}

func (s *Server) handleEditTask(c echo.Context) error {
	user := principalFrom(c)

	err := s.tasks.Update(c.Request().Context(), user.ID, c.Param("id"),
		c.FormValue("title"), c.FormValue("description"), c.FormValue("due_date"))
	if err != nil {
		return s.mapError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/home")
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	user := principalFrom(c)

	if err := s.tasks.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return s.mapError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/home")
}

// handleToggleTask flips completion; the tab parameter is echoed back for UI
// continuity and plays no part in authorization.
func (s *Server) handleToggleTask(c echo.Context) error {
	user := principalFrom(c)
	tab := tabs.ParseBucket(c.QueryParam("tab"))

	if _, err := s.tasks.ToggleCompleted(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return s.mapError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/home?tab="+string(tab))
}

func (s *Server) handleMoveTask(c echo.Context) error {
	user := principalFrom(c)
	tab := tabs.ParseBucket(c.QueryParam("tab"))

	dir, err := services.ParseDirection(c.QueryParam("dir"))
	if err != nil {
		return s.mapError(c, err)
	}

	if err := s.tasks.Reorder(c.Request().Context(), user.ID, c.Param("id"), dir); err != nil {
		return s.mapError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/home?tab="+string(tab))
}

func (s *Server) handleDeleteAccount(c echo.Context) error {
	user := principalFrom(c)

	if err := s.users.Delete(c.Request().Context(), user.ID); err != nil {
		return s.mapError(c, err)
	}
	s.clearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}
