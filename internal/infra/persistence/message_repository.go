package persistence

import (
	"context"

	"vitrine/internal/domain/repository"

	"github.com/pkg/errors"
)

type messageRepository struct {
	store repository.DocumentStore
}

// NewMessageRepository creates a MessageRepository storing contact-form
// messages in the messages collection.
func NewMessageRepository(store repository.DocumentStore) repository.MessageRepository {
	return &messageRepository{store: store}
}

func (r *messageRepository) Add(ctx context.Context, msg *repository.ContactMessage) error {
	doc := repository.Document{
		"businessId": msg.BusinessID,
		"name":       msg.Name,
		"email":      msg.Email,
		"subject":    msg.Subject,
		"message":    msg.Message,
		"receivedAt": msg.ReceivedAt,
	}

	if err := r.store.Set(ctx, repository.CollectionMessages, msg.ID, doc); err != nil {
		return errors.Wrap(err, "failed to store contact message")
	}

	return nil
}
