package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"feedbackhub/internal/config"
	"feedbackhub/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authMiddleware echo.MiddlewareFunc,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	feedbackHandler *handler.FeedbackHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Stored avatars served back under the static prefix
	e.Static(cfg.UploadURLPrefix, cfg.UploadDir)

	// Public routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/feedback", feedbackHandler.List)
	e.GET("/metadata", feedbackHandler.Metadata)

	// Bearer-protected routes
	e.GET("/auth/user", userHandler.Me, authMiddleware)
	e.PATCH("/auth/avatar", userHandler.UpdateAvatar, authMiddleware)
	e.POST("/feedback", feedbackHandler.Create, authMiddleware)
	e.POST("/feedback/upvote", feedbackHandler.Upvote, authMiddleware)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
