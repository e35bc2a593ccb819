package interfaces

import (
	"context"

	"brcargo_cotacoes/internal/domain/entities"
)

// IQuoteSequence hands out the daily sequence used in quote numbers. dayKey
// is the YYYYMMDD date in the business time zone.
type IQuoteSequence interface {
	Next(ctx context.Context, dayKey string) (int, error)
}

// ITransitionMetrics records the outcome of every lifecycle command.
type ITransitionMetrics interface {
	ObserveTransition(event entities.QuoteEvent, outcome string)
}
