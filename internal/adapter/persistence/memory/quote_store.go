// Package memory keeps quotes, history, users, companies and notifications in
// process memory. It backs local runs without external services and the
// concurrency tests; every store serializes access with a single mutex so a
// transition commit is one critical section.
package memory

import (
	"context"
	"strings"
	"sync"

	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/internal/usecase"
	"brcargo_cotacoes/internal/usecase/interfaces"
)

type QuoteStore struct {
	mu       sync.Mutex
	quotes   map[string]entities.Quote
	numbers  map[string]string // number -> quote id
	history  map[string][]entities.HistoryEntry
	counters map[string]int // day key -> last sequence
}

var (
	_ interfaces.IQuoteRepository = (*QuoteStore)(nil)
	_ interfaces.IQuoteSequence   = (*QuoteStore)(nil)
)

func NewQuoteStore() *QuoteStore {
	return &QuoteStore{
		quotes:   map[string]entities.Quote{},
		numbers:  map[string]string{},
		history:  map[string][]entities.HistoryEntry{},
		counters: map[string]int{},
	}
}

func (s *QuoteStore) Create(_ context.Context, q entities.Quote, entry entities.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.numbers[q.Number]; taken {
		return entities.ErrDuplicateQuoteNumber
	}
	if _, exists := s.quotes[q.ID]; exists {
		return entities.PersistenceFailure("create quote", errDuplicateID)
	}
	s.quotes[q.ID] = cloneQuote(q)
	s.numbers[q.Number] = q.ID
	s.history[q.ID] = append(s.history[q.ID], entry)
	return nil
}

func (s *QuoteStore) GetByID(_ context.Context, id string) (entities.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quotes[id]
	if !ok {
		return entities.Quote{}, nil
	}
	return cloneQuote(q), nil
}

func (s *QuoteStore) Transition(_ context.Context, q entities.Quote, expectedVersion int64, entry entities.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.quotes[q.ID]
	if !ok || current.Version != expectedVersion {
		return entities.ErrVersionConflict
	}
	s.quotes[q.ID] = cloneQuote(q)
	s.history[q.ID] = append(s.history[q.ID], entry)
	return nil
}

func (s *QuoteStore) snapshot() []entities.Quote {
	out := make([]entities.Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		out = append(out, cloneQuote(q))
	}
	return out
}

func (s *QuoteStore) Search(_ context.Context, filter entities.QuoteFilter, page entities.Page) ([]entities.Quote, int64, error) {
	s.mu.Lock()
	all := s.snapshot()
	s.mu.Unlock()

	matched := entities.FilterQuotes(all, filter)
	return page.Slice(matched), int64(len(matched)), nil
}

func (s *QuoteStore) Count(_ context.Context, filter entities.QuoteFilter) (entities.QuoteCounts, error) {
	s.mu.Lock()
	all := s.snapshot()
	s.mu.Unlock()

	return entities.TallyQuotes(all, filter), nil
}

func (s *QuoteStore) ListHistory(_ context.Context, quoteID string) ([]entities.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.history[quoteID]
	out := make([]entities.HistoryEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (s *QuoteStore) LatestNumber(_ context.Context, prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.latestNumberLocked(prefix), nil
}

func (s *QuoteStore) latestNumberLocked(prefix string) string {
	latest := ""
	for number := range s.numbers {
		if strings.HasPrefix(number, prefix) && number > latest {
			latest = number
		}
	}
	return latest
}

// Next is a per-day counter seeded from the greatest stored number, so it
// stays ahead of quotes created before the counter existed.
func (s *QuoteStore) Next(_ context.Context, dayKey string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	last, ok := s.counters[dayKey]
	if !ok {
		if seq, parsed := usecase.ParseQuoteSequence(s.latestNumberLocked(usecase.QuoteNumberDayPrefix(dayKey))); parsed {
			last = seq
		}
	}
	last++
	s.counters[dayKey] = last
	return last, nil
}

// cloneQuote copies the pointer fields so callers never share state with the
// store.
func cloneQuote(q entities.Quote) entities.Quote {
	if q.Maritime != nil {
		m := *q.Maritime
		q.Maritime = &m
	}
	if q.Air != nil {
		a := *q.Air
		q.Air = &a
	}
	if q.Response != nil {
		r := *q.Response
		q.Response = &r
	}
	q.OperatorAcceptedAt = cloneTime(q.OperatorAcceptedAt)
	q.QuotedAt = cloneTime(q.QuotedAt)
	q.CustomerRespondedAt = cloneTime(q.CustomerRespondedAt)
	q.FinalizedAt = cloneTime(q.FinalizedAt)
	if q.Service.PreferredPickupDate != nil {
		q.Service.PreferredPickupDate = cloneTime(q.Service.PreferredPickupDate)
	}
	return q
}
