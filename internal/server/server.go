package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"NewsHunter/internal/account"
	"NewsHunter/internal/core"
	"NewsHunter/internal/models"
	"NewsHunter/pkg/logger"
)

const genericFailure = "Request failed could not process your request at the moment please try again"

// NewsService 聚合层，由 core.Aggregator 实现
type NewsService interface {
	Browse(ctx context.Context, q models.Query, ref core.Refinement) []*models.Article
	Search(ctx context.Context, q models.Query) []*models.Article
	Providers() []models.ProviderID
}

// AccountService 用户与偏好，由 account.Service 实现
type AccountService interface {
	Signup(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*models.User, error)
	User(ctx context.Context, userID int64) (*models.User, error)
	Preferences(ctx context.Context, userID int64) (*models.Preference, error)
	SavePreference(ctx context.Context, userID int64, patch account.PreferencePatch) (*models.Preference, error)
}

type Options struct {
	RateLimit    float64 // 每个客户端每秒请求数，<=0 关闭限流
	Burst        int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Server struct {
	echo     *echo.Echo
	news     NewsService
	accounts AccountService
	log      *logger.Logger
}

func New(news NewsService, accounts AccountService, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	// 限流按连接的对端地址计算，不信任客户端自带的 X-Forwarded-For / X-Real-IP
	e.IPExtractor = echo.ExtractIPDirect()
	e.Server.ReadTimeout = opts.ReadTimeout
	e.Server.WriteTimeout = opts.WriteTimeout

	s := &Server{
		echo:     e,
		news:     news,
		accounts: accounts,
		log:      logger.WithPrefix("HTTP"),
	}
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			s.log.Error("%s %s panic: %v\n%s", c.Request().Method, c.Path(), err, stack)
			return err
		},
	}))
	e.Use(s.requestLog)
	if opts.RateLimit > 0 {
		e.Use(newIPLimiter(opts.RateLimit, opts.Burst).middleware)
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	auth := s.requireAuth

	s.echo.GET("/health", s.health)

	s.echo.POST("/auth/signup", s.signup)
	s.echo.POST("/auth/login", s.login)
	s.echo.POST("/auth/logout", s.logout, auth)

	s.echo.GET("/user", s.user, auth)
	s.echo.GET("/preference", s.showPreference, auth)
	s.echo.POST("/preference", s.storePreference, auth)

	s.echo.GET("/news", s.browse, auth)
	s.echo.POST("/news/search", s.search)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start 阻塞直到服务关闭；正常关闭时返回 nil
func (s *Server) Start(addr string) error {
	s.log.Info("监听 %s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) requestLog(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.log.Debug("%s %s -> %d (%s)", c.Request().Method, c.Request().URL.Path,
			c.Response().Status, time.Since(start).Round(time.Millisecond))
		return err
	}
}

// handleError 把错误映射为 {"error": msg}，未识别的错误一律返回通用 500
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, msg := s.classify(c, err)
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, echo.Map{"error": msg})
	}
	if err != nil {
		s.log.Error("写入错误响应失败: %v", err)
	}
}

func (s *Server) classify(c echo.Context, err error) (int, string) {
	var ve *core.ValidationError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.Is(err, account.ErrUnauthenticated):
		return http.StatusUnauthorized, account.ErrUnauthenticated.Error()
	case errors.Is(err, account.ErrUserNotFound),
		errors.Is(err, account.ErrInvalidCredentials),
		errors.Is(err, account.ErrEmptyPreference):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &he) && he.Code < http.StatusInternalServerError:
		return he.Code, fmt.Sprint(he.Message)
	}
	s.log.Error("%s %s 处理失败: %v", c.Request().Method, c.Request().URL.Path, err)
	return http.StatusInternalServerError, genericFailure
}
