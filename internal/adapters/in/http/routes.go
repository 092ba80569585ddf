package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"makanapa/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RoutesConfig selects which optional routes are mounted.
type RoutesConfig struct {
	// AdminToken guards /api/v1 as a bearer token. Empty disables the API
	// together with its OpenAPI document.
	AdminToken string
	// WebhookSecret is the last path segment of the webhook route. Empty
	// disables the webhook.
	WebhookSecret string
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// WebhookPath is the route Telegram must be pointed at for the given secret.
func WebhookPath(secret string) string {
	return "/telegram/" + secret
}

// APIBaseURL prefixes every route of servers.ServerInterface.
const APIBaseURL = "/api/v1"

// NewEcho builds the router for s.
func NewEcho(s *Server, cfg RoutesConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	e.Use(middleware.Recover())

	e.GET("/health", s.Health)

	if cfg.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics))
	}

	if cfg.WebhookSecret != "" {
		e.POST(WebhookPath(":secret"), s.Webhook, secretPath(cfg.WebhookSecret))
	}

	if cfg.AdminToken != "" {
		e.GET(APIBaseURL+"/openapi.json", openAPIDocument)
		servers.RegisterHandlers(e.Group(APIBaseURL, adminAuth(cfg.AdminToken)), s)
	}

	return e
}

func secretPath(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if !equalSecret(ctx.Param("secret"), secret) {
				return ctx.JSON(http.StatusNotFound, servers.Error{
					Code:    http.StatusNotFound,
					Message: "Not Found",
				})
			}
			return next(ctx)
		}
	}
}

func adminAuth(token string) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(key string, _ echo.Context) (bool, error) {
			return equalSecret(key, token), nil
		},
		ErrorHandler: func(_ error, ctx echo.Context) error {
			return ctx.JSON(http.StatusUnauthorized, servers.Error{
				Code:    http.StatusUnauthorized,
				Message: "Unauthorized",
			})
		},
	})
}

func equalSecret(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// openAPIDocument serves the embedded description of the moderation API.
func openAPIDocument(ctx echo.Context) error {
	doc, err := servers.GetSwagger()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, doc)
}

// errorHandler renders every error that reaches echo, including parameter
// binding failures from the generated wrapper, as servers.Error.
func errorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = http.StatusText(code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(code)
		return
	}
	_ = ctx.JSON(code, servers.Error{
		Code:    int32(code),
		Message: message,
	})
}
