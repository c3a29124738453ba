package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinxity/daylist/internal/server/auth"
	"github.com/shinxity/daylist/internal/server/models"
)

const (
	sessionCookieName = "session"
	principalKey      = "principal"
)

// sessionMiddleware is the session gate. It resolves the session cookie into
// a live user and injects it into the request context. An absent, expired or
// malformed token — or a token whose user no longer exists — invalidates the
// session and redirects to the login page.
func (s *Server) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := s.resolveSession(c)
		if !ok {
			s.clearSessionCookie(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		c.Set(principalKey, user)
		return next(c)
	}
}

// resolveSession validates the session cookie and confirms the referenced
// user still exists. It never mutates the response.
func (s *Server) resolveSession(c echo.Context) (*models.User, bool) {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	claims, err := auth.GetClaimsFromToken(cookie.Value, s.jwtSecret)
	if err != nil {
		return nil, false
	}

	user, err := s.users.GetByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return nil, false
	}
	return user, true
}

// establishSession mints a session token for the user and sets the cookie.
// The expiry is absolute from issuance.
func (s *Server) establishSession(c echo.Context, user *models.User) error {
	token, err := auth.GenerateToken(user.ID, user.UserName, s.jwtSecret, s.sessionTTL)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *Server) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// principalFrom returns the authenticated user injected by sessionMiddleware.
func principalFrom(c echo.Context) *models.User {
	user, _ := c.Get(principalKey).(*models.User)
	return user
}
