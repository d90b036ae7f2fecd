// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"vitrine/internal/delivery/http/middleware"
	"vitrine/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	MessageHandler *handler.MessageHandler
	SiteHandler    *handler.SiteHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	messageHandler *handler.MessageHandler
	siteHandler    *handler.SiteHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		profileHandler: params.ProfileHandler,
		messageHandler: params.MessageHandler,
		siteHandler:    params.SiteHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/token", r.authHandler.IssueToken)
	}

	// Profile routes; reads and the contact form are public, writes require
	// an owner token.
	profileGroup := e.Group("/profiles")
	{
		profileGroup.GET("/:businessID", r.profileHandler.GetProfile)
		profileGroup.POST("/:businessID/messages", r.messageHandler.AcceptMessage)

		profileGroup.POST("", r.profileHandler.CreateProfile, r.authMiddleware.Authenticate)
		profileGroup.PUT("/:businessID/sections/:sectionKey", r.profileHandler.SaveSection, r.authMiddleware.Authenticate)
		profileGroup.POST("/:businessID/images/:target", r.profileHandler.AttachImage, r.authMiddleware.Authenticate)
	}

	// Rendered site routes
	siteGroup := e.Group("/sites")
	{
		siteGroup.GET("/:businessID", r.siteHandler.ServePage)
		siteGroup.GET("/:businessID/*", r.siteHandler.ServePage)
	}
}
