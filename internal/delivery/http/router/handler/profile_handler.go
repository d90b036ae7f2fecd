package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"vitrine/internal/delivery/http/middleware"
	"vitrine/internal/delivery/http/response"
	"vitrine/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// maxImageBytes bounds a single uploaded image.
const maxImageBytes = 10 << 20

// ProfileHandler holds dependencies for profile-related handlers.
type ProfileHandler struct {
	uc     usecase.EditorUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.EditorUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		uc:     uc,
		logger: logger,
	}
}

type createProfileRequest struct {
	BusinessID   string `json:"businessId" form:"businessId" validate:"required"`
	BusinessType string `json:"businessType" form:"businessType" validate:"required"`
}

// CreateProfile handles the request to create a new business profile.
func (h *ProfileHandler) CreateProfile(c echo.Context) error {
	ownerID, ok := middleware.OwnerIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Owner ID missing from token")
	}

	var input createProfileRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "businessId and businessType are required")
	}

	profile, err := h.uc.CreateProfile(c.Request().Context(), usecase.CreateProfileInput{
		BusinessID:   input.BusinessID,
		BusinessType: input.BusinessType,
		OwnerID:      ownerID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, profile, "Profile created successfully")
}

// GetProfile handles the request to read a full business profile.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profile, err := h.uc.GetProfile(c.Request().Context(), c.Param("businessID"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Profile retrieved successfully")
}

// SaveSection handles a section-scoped save from the dashboard. The request
// body is passed through as the raw section payload; its shape depends on the
// section being saved, so binding happens in the usecase layer.
func (h *ProfileHandler) SaveSection(c echo.Context) error {
	ownerID, ok := middleware.OwnerIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Owner ID missing from token")
	}

	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Failed to read request body")
	}

	profile, err := h.uc.SaveSection(c.Request().Context(), usecase.SaveSectionInput{
		BusinessID: c.Param("businessID"),
		OwnerID:    ownerID,
		SectionKey: c.Param("sectionKey"),
		Payload:    json.RawMessage(payload),
		RequestID:  c.Request().Header.Get(echo.HeaderXRequestID),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Section saved successfully")
}

// AttachImage handles a multipart image upload bound to the hero or gallery.
func (h *ProfileHandler) AttachImage(c echo.Context) error {
	ownerID, ok := middleware.OwnerIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Owner ID missing from token")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Multipart field 'image' is required")
	}
	if fileHeader.Size > maxImageBytes {
		return response.BadRequest(c, "IMAGE_TOO_LARGE", "Image exceeds the upload size limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return errors.WithStack(err)
	}

	ref, err := h.uc.AttachImage(c.Request().Context(), usecase.AttachImageInput{
		BusinessID:  c.Param("businessID"),
		OwnerID:     ownerID,
		Target:      c.Param("target"),
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{"imageRef": ref}, "Image attached successfully")
}
