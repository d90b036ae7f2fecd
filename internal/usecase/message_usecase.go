package usecase

import "context"

// AcceptMessageInput is one visitor contact-form submission.
type AcceptMessageInput struct {
	BusinessID string
	Name       string
	Email      string
	Subject    string
	Message    string
	RequestID  string
}

// MessageUsecase accepts contact-form submissions on behalf of a business.
// The contract is write-acknowledgment only; onward delivery is out of scope.
type MessageUsecase interface {
	// Accept stores the message and returns its generated id.
	Accept(ctx context.Context, input AcceptMessageInput) (string, error)
}
