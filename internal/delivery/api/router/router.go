// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"tiktok/config"
	"tiktok/internal/delivery/api/middleware"
	"tiktok/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ProfileHandler *handler.ProfileHandler
	SessionHandler *handler.SessionHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	profileHandler *handler.ProfileHandler
	sessionHandler *handler.SessionHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		profileHandler: params.ProfileHandler,
		sessionHandler: params.SessionHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	if r.config.Metrics != nil && r.config.Metrics.Enabled {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(promhttp.Handler()))
	}

	// Paths keep the trailing slashes of the published API.
	authGroup := e.Group(r.config.HTTP.BasePath)
	{
		authGroup.POST("/signup/", r.userHandler.Signup)
		authGroup.POST("/login/", r.userHandler.Login)
		authGroup.GET("/verify-email/", r.userHandler.VerifyEmail)
		authGroup.POST("/token/refresh/", r.sessionHandler.RefreshToken)
		authGroup.POST("/token/verify/", r.sessionHandler.VerifyToken)
	}

	profileGroup := authGroup.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.GET("/", r.profileHandler.GetProfile)
		profileGroup.PUT("/update", r.profileHandler.UpdateProfile)
		profileGroup.GET("/qrcode", r.profileHandler.GetProfileQRCode)
	}
}
