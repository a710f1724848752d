package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"userResourceService/internal/service"
)

// Options tunes the router.
type Options struct {
	RateLimit int // requests per second, 0 disables limiting
}

// NewRouter builds the Echo instance serving the user API.
func NewRouter(svc *service.UserService, log zerolog.Logger, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(log)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(log))
	e.Use(middleware.CORS())
	if opts.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(opts.RateLimit))))
	}

	h := &userHandlers{svc: svc}
	e.GET("/user/all", h.listUsers)
	e.GET("/user/firstUser", h.getCachedUser)
	e.PUT("/user/firstUser", h.clearCache)
	e.GET("/user/:id", h.getUser)
	e.GET("/user/:id/org", h.getUser)

	v2 := e.Group("/v2/user")
	v2.GET("/all", h.listUsersV2)
	v2.GET("/:id", h.getUserLinks)
	v2.DELETE("/:id", h.deleteUser)
	for _, p := range []string{"/", ""} {
		v2.PUT(p, h.updateUser)
		v2.POST(p, h.createUser)
	}

	g := &greetingHandler{}
	e.GET("/greeting", g.greet)

	return e
}

// requestLogger logs one line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// StartHTTP serves h on addr and returns the bound address and a shutdown function.
func StartHTTP(addr string, h http.Handler, log zerolog.Logger) (net.Addr, func(context.Context) error, error) {
	if addr == "" {
		addr = ":8080"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()
	return lis.Addr(), srv.Shutdown, nil
}
