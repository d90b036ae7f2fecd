package impl

import (
	"context"

	"vitrine/internal/domain/catalog"
	domainerrors "vitrine/internal/domain/errors"
	"vitrine/internal/renderer"
	"vitrine/internal/usecase"

	"go.uber.org/fx"
)

// renderService implements the RenderUsecase interface.
type renderService struct {
	editor   usecase.EditorUsecase
	renderer *renderer.Renderer
}

// RenderServiceParams holds dependencies for RenderService, injected by Fx.
type RenderServiceParams struct {
	fx.In

	Editor   usecase.EditorUsecase
	Renderer *renderer.Renderer
}

// NewRenderService is the constructor for renderService.
func NewRenderService(params RenderServiceParams) usecase.RenderUsecase {
	return &renderService{
		editor:   params.Editor,
		renderer: params.Renderer,
	}
}

// Page loads the cached profile snapshot and renders the requested page.
func (srv *renderService) Page(ctx context.Context, businessID, path string) (string, error) {
	profile, err := srv.editor.GetProfile(ctx, businessID)
	if err != nil {
		return "", err
	}

	entry, err := catalog.Lookup(profile.BusinessType)
	if err != nil {
		return "", domainerrors.ErrConfiguration.WithDetails(err.Error())
	}

	return srv.renderer.Page(ctx, profile, entry, renderer.PageKeyFromPath(path))
}
