package usecase

import "context"

// RenderUsecase serves request-time HTML pages for a business site.
type RenderUsecase interface {
	// Page renders the page addressed by the request path relative to the
	// site root ("" or "/" → home). The profile snapshot comes through the
	// same read cache as GetProfile.
	Page(ctx context.Context, businessID, path string) (string, error)
}
