package interfaces

import (
	"context"

	"brcargo_cotacoes/internal/domain/entities"
)

// IQuoteRepository abstracts persistence of quotes and their history ledger.
//
// Reads return the zero value (empty ID) with a nil error when nothing is
// found. Writes are units of work:
//   - Create stores the quote and its creation entry together and reports
//     entities.ErrDuplicateQuoteNumber when the number is taken.
//   - Transition stores the mutated quote only if the stored version still
//     equals expectedVersion, appending entry in the same commit; otherwise it
//     reports entities.ErrVersionConflict and writes nothing.

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote, entry entities.HistoryEntry) error
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	Transition(ctx context.Context, q entities.Quote, expectedVersion int64, entry entities.HistoryEntry) error
	Search(ctx context.Context, filter entities.QuoteFilter, page entities.Page) ([]entities.Quote, int64, error)
	Count(ctx context.Context, filter entities.QuoteFilter) (entities.QuoteCounts, error)
	ListHistory(ctx context.Context, quoteID string) ([]entities.HistoryEntry, error)
	// LatestNumber returns the greatest quote number starting with prefix, or
	// "" when there is none.
	LatestNumber(ctx context.Context, prefix string) (string, error)
}
