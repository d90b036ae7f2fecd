package handler

import (
	"log/slog"
	"net/http"

	"vitrine/internal/delivery/http/response"
	"vitrine/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MessageHandler accepts visitor contact-form submissions.
type MessageHandler struct {
	uc     usecase.MessageUsecase
	logger *slog.Logger
}

// NewMessageHandler is the constructor for MessageHandler, injected by Fx.
func NewMessageHandler(uc usecase.MessageUsecase, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		uc:     uc,
		logger: logger,
	}
}

type acceptMessageRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// AcceptMessage stores one contact-form submission addressed to a business.
// It binds both JSON and form bodies so the generated static sites can POST
// the contact form directly without a script shim.
func (h *MessageHandler) AcceptMessage(c echo.Context) error {
	var input acceptMessageRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid message input")
	}

	id, err := h.uc.Accept(c.Request().Context(), usecase.AcceptMessageInput{
		BusinessID: c.Param("businessID"),
		Name:       input.Name,
		Email:      input.Email,
		Subject:    input.Subject,
		Message:    input.Message,
		RequestID:  c.Request().Header.Get(echo.HeaderXRequestID),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusAccepted, map[string]string{"id": id}, "Message received")
}
