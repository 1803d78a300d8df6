package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"NewsHunter/internal/account"
	"NewsHunter/internal/core"
	"NewsHunter/internal/models"
)

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "providers": s.news.Providers()})
}

func (s *Server) signup(c echo.Context) error {
	vals, err := requestParams(c)
	if err != nil {
		return err
	}
	token, err := s.accounts.Signup(c.Request().Context(), vals.Get("name"), vals.Get("email"), vals.Get("password"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Signup Success!",
		"data":    echo.Map{"token": token},
	})
}

func (s *Server) login(c echo.Context) error {
	vals, err := requestParams(c)
	if err != nil {
		return err
	}
	token, err := s.accounts.Login(c.Request().Context(), vals.Get("email"), vals.Get("password"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login Success!",
		"data":    echo.Map{"token": token},
	})
}

func (s *Server) logout(c echo.Context) error {
	if err := s.accounts.Logout(c.Request().Context(), currentToken(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Log out successful"})
}

func (s *Server) user(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	fresh, err := s.accounts.User(c.Request().Context(), u.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"user": fresh})
}

func (s *Server) showPreference(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	pref, err := s.accounts.Preferences(c.Request().Context(), u.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"preference": pref})
}

func (s *Server) storePreference(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	vals, err := requestParams(c)
	if err != nil {
		return err
	}
	pref, err := s.accounts.SavePreference(c.Request().Context(), u.ID, account.PreferencePatch{
		Category: vals.Get("category"),
		Author:   vals.Get("author"),
		Source:   vals.Get("source"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "preference updated", "preference": pref})
}

// browse 按当前用户的偏好过滤
func (s *Server) browse(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	q, err := core.Normalize(models.KindBrowse, rawParams(c.QueryParams()))
	if err != nil {
		return err
	}
	pref, err := s.accounts.Preferences(ctx, u.ID)
	if err != nil {
		return err
	}

	articles := s.news.Browse(ctx, q, core.Resolve(pref))
	return c.JSON(http.StatusOK, echo.Map{"page": q.Page, "data": orEmpty(articles)})
}

// search 不要求登录
func (s *Server) search(c echo.Context) error {
	vals, err := requestParams(c)
	if err != nil {
		return err
	}
	q, err := core.Normalize(models.KindSearch, rawParams(vals))
	if err != nil {
		return err
	}
	articles := s.news.Search(c.Request().Context(), q)
	return c.JSON(http.StatusOK, echo.Map{"data": orEmpty(articles)})
}

func orEmpty(articles []*models.Article) []*models.Article {
	if articles == nil {
		return []*models.Article{}
	}
	return articles
}
