package handler

import (
	"log/slog"
	"net/http"

	"vitrine/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SiteHandler serves request-time rendered pages of a business site.
type SiteHandler struct {
	uc     usecase.RenderUsecase
	logger *slog.Logger
}

// NewSiteHandler is the constructor for SiteHandler, injected by Fx.
func NewSiteHandler(uc usecase.RenderUsecase, logger *slog.Logger) *SiteHandler {
	return &SiteHandler{
		uc:     uc,
		logger: logger,
	}
}

// ServePage renders the page addressed by the wildcard path under the site
// root. An empty wildcard serves the home page.
func (h *SiteHandler) ServePage(c echo.Context) error {
	html, err := h.uc.Page(c.Request().Context(), c.Param("businessID"), c.Param("*"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.HTML(http.StatusOK, html)
}
