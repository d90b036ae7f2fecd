package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "vitrine/internal/domain/errors"
	"vitrine/internal/domain/repository"
	"vitrine/internal/domain/service"
	"vitrine/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const maxMessageLength = 5000

// messageService implements the MessageUsecase interface.
type messageService struct {
	profileRepo repository.ProfileRepository
	messageRepo repository.MessageRepository
	publisher   service.EventPublisher
	logger      *slog.Logger
	now         func() time.Time
}

// MessageServiceParams holds dependencies for MessageService, injected by Fx.
type MessageServiceParams struct {
	fx.In

	ProfileRepo repository.ProfileRepository
	MessageRepo repository.MessageRepository
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewMessageService is the constructor for messageService.
func NewMessageService(params MessageServiceParams) usecase.MessageUsecase {
	return &messageService{
		profileRepo: params.ProfileRepo,
		messageRepo: params.MessageRepo,
		publisher:   params.Publisher,
		logger:      params.Logger,
		now:         time.Now,
	}
}

// Accept stores a visitor message addressed to an existing business. The
// contract is write-acknowledgment only.
func (srv *messageService) Accept(ctx context.Context, input usecase.AcceptMessageInput) (string, error) {
	name := strings.TrimSpace(input.Name)
	message := strings.TrimSpace(input.Message)
	if name == "" || message == "" {
		return "", domainerrors.ErrValidationFailed.WithDetails("name and message are required")
	}
	if len(message) > maxMessageLength {
		return "", domainerrors.ErrValidationFailed.WithDetails("message is too long")
	}

	if _, err := srv.profileRepo.FindByID(ctx, input.BusinessID); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return "", domainerrors.ErrProfileNotFound
		}

		return "", domainerrors.ErrTransientStore.WithDetails(err.Error())
	}

	msg := &repository.ContactMessage{
		ID:         uuid.NewString(),
		BusinessID: input.BusinessID,
		Name:       name,
		Email:      strings.TrimSpace(input.Email),
		Subject:    strings.TrimSpace(input.Subject),
		Message:    message,
		ReceivedAt: srv.now().Unix(),
	}

	if err := srv.messageRepo.Add(ctx, msg); err != nil {
		return "", domainerrors.ErrTransientStore.WithDetails(err.Error())
	}

	if err := srv.publisher.PublishContentEvent(ctx, &service.ContentEvent{
		Type:       service.EventMessageReceived,
		BusinessID: input.BusinessID,
		RequestID:  input.RequestID,
		OccurredAt: srv.now(),
	}); err != nil {
		srv.logger.Warn("message event publish failed",
			slog.String("business_id", input.BusinessID),
			slog.Any("error", err),
		)
	}

	return msg.ID, nil
}
