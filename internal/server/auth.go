package server

import (
	"strings"

	"github.com/labstack/echo/v4"

	"NewsHunter/internal/account"
	"NewsHunter/internal/models"
)

const (
	ctxUser  = "user"
	ctxToken = "token"
)

// requireAuth 校验 Authorization: Bearer <token>
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if token == "" {
			return account.ErrUnauthenticated
		}
		user, err := s.accounts.Authenticate(c.Request().Context(), token)
		if err != nil {
			return err
		}
		c.Set(ctxUser, user)
		c.Set(ctxToken, token)
		return next(c)
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func currentUser(c echo.Context) (*models.User, error) {
	u, ok := c.Get(ctxUser).(*models.User)
	if !ok || u == nil {
		return nil, account.ErrUnauthenticated
	}
	return u, nil
}

func currentToken(c echo.Context) string {
	t, _ := c.Get(ctxToken).(string)
	return t
}
