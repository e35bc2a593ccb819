package entities

import "time"

// HistoryEntry is one immutable row of a quote's audit trail.
//
// PreviousStatus is nil only for the creation entry. ActorName is not stored;
// it is resolved from the user directory when the trail is read.
type HistoryEntry struct {
	ID             string       `json:"id"`
	QuoteID        string       `json:"quote_id"`
	ActorID        string       `json:"actor_id"`
	ActorName      string       `json:"actor_name,omitempty"`
	PreviousStatus *QuoteStatus `json:"previous_status"`
	NewStatus      QuoteStatus  `json:"new_status"`
	Note           string       `json:"note,omitempty"`
	Timestamp      time.Time    `json:"timestamp"`
}

// NewHistoryEntry records a committed transition.
func NewHistoryEntry(id, quoteID string, t Transition) HistoryEntry {
	prev := t.From
	return HistoryEntry{
		ID:             id,
		QuoteID:        quoteID,
		ActorID:        t.ActorID,
		PreviousStatus: &prev,
		NewStatus:      t.To,
		Note:           t.Note,
		Timestamp:      t.At,
	}
}

// NewCreationHistoryEntry records the opening of a quote.
func NewCreationHistoryEntry(id string, q Quote) HistoryEntry {
	return HistoryEntry{
		ID:        id,
		QuoteID:   q.ID,
		ActorID:   q.ConsultantID,
		NewStatus: q.Status,
		Note:      "Cotação criada",
		Timestamp: q.RequestedAt,
	}
}

// StatusFromStore normalizes a persisted status, tolerating legacy text.
// Unknown values are kept verbatim so the trail is never lost.
func StatusFromStore(raw string) QuoteStatus {
	if s, ok := ParseQuoteStatus(raw); ok {
		return s
	}
	return QuoteStatus(raw)
}

// PreviousStatusFromStore is StatusFromStore for the nullable column.
func PreviousStatusFromStore(raw string) *QuoteStatus {
	if raw == "" {
		return nil
	}
	s := StatusFromStore(raw)
	return &s
}
