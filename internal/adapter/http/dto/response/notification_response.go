package response

import (
	"time"

	"brcargo_cotacoes/internal/domain/entities"
)

type NotificationResponse struct {
	ID          string    `json:"id"`
	QuoteID     string    `json:"quote_id"`
	QuoteNumber string    `json:"quote_number"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

type InboxResponse struct {
	Items  []NotificationResponse `json:"items"`
	Unread int64                  `json:"unread"`
}

func FromInbox(items []entities.Notification, unread int64) InboxResponse {
	out := InboxResponse{Items: make([]NotificationResponse, 0, len(items)), Unread: unread}
	for _, n := range items {
		out.Items = append(out.Items, NotificationResponse{
			ID:          n.ID,
			QuoteID:     n.QuoteID,
			QuoteNumber: n.QuoteNumber,
			Kind:        string(n.Kind),
			Title:       n.Title,
			Message:     n.Message,
			Read:        n.Read,
			CreatedAt:   n.CreatedAt,
		})
	}
	return out
}

type MarkedResponse struct {
	Marked int64 `json:"marked"`
}
