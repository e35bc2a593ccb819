package interfaces

import (
	"context"

	"brcargo_cotacoes/internal/domain/entities"
)

// IQuoteNotifier is informed of every lifecycle step. Callers never roll back
// because of its errors.
type IQuoteNotifier interface {
	NotifyNewQuote(ctx context.Context, q entities.Quote) error
	NotifyOperatorAccepted(ctx context.Context, q entities.Quote) error
	NotifyQuoteSent(ctx context.Context, q entities.Quote) error
	NotifyCustomerDecision(ctx context.Context, q entities.Quote, accepted bool) error
}

// INotificationRepository stores the per-user inbox.
type INotificationRepository interface {
	Create(ctx context.Context, n entities.Notification) error
	ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]entities.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	// MarkRead reports false when the notification does not belong to the
	// recipient or does not exist.
	MarkRead(ctx context.Context, recipientID, id string) (bool, error)
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
}

// IEventPublisher fans quote events out to other processes.
type IEventPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}
