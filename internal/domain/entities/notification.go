package entities

import "time"

type NotificationKind string

const (
	NotificationNovaCotacao       NotificationKind = "nova_cotacao"
	NotificationCotacaoAceita     NotificationKind = "cotacao_aceita"
	NotificationCotacaoRespondida NotificationKind = "cotacao_respondida"
	NotificationCotacaoAprovada   NotificationKind = "cotacao_aprovada"
	NotificationCotacaoRecusada   NotificationKind = "cotacao_recusada"
)

// Notification is an in-app inbox message about a quote.
type Notification struct {
	ID          string           `json:"id"`
	RecipientID string           `json:"recipient_id"`
	QuoteID     string           `json:"quote_id"`
	QuoteNumber string           `json:"quote_number"`
	Kind        NotificationKind `json:"kind"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"created_at"`
}
