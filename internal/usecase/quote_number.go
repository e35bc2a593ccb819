package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/internal/usecase/interfaces"
)

const (
	quoteNumberPrefix = "COT-"
	quoteDayKeyLayout = "20060102"
	maxDailySequence  = 9999
	defaultBusinessTZ = "America/Sao_Paulo"
)

var ErrDailySequenceExhausted = fmt.Errorf("%w: daily quote sequence exhausted", entities.ErrPersistence)

// QuoteNumberer builds COT-YYYYMMDD-NNNN numbers with the day key taken in the
// business time zone.
type QuoteNumberer struct {
	seq interfaces.IQuoteSequence
	loc *time.Location
}

func NewQuoteNumberer(seq interfaces.IQuoteSequence, loc *time.Location) *QuoteNumberer {
	if loc == nil {
		loc = time.UTC
	}
	return &QuoteNumberer{seq: seq, loc: loc}
}

// LoadBusinessLocation resolves the configured time zone, defaulting to
// America/Sao_Paulo.
func LoadBusinessLocation(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		name = defaultBusinessTZ
	}
	return time.LoadLocation(name)
}

func (n *QuoteNumberer) Location() *time.Location {
	return n.loc
}

func (n *QuoteNumberer) DayKey(now time.Time) string {
	return now.In(n.loc).Format(quoteDayKeyLayout)
}

// Next reserves the next number for the day of now.
func (n *QuoteNumberer) Next(ctx context.Context, now time.Time) (string, error) {
	day := n.DayKey(now)
	seq, err := n.seq.Next(ctx, day)
	if err != nil {
		return "", entities.PersistenceFailure("next quote sequence", err)
	}
	if seq < 1 || seq > maxDailySequence {
		return "", ErrDailySequenceExhausted
	}
	return FormatQuoteNumber(day, seq), nil
}

func FormatQuoteNumber(dayKey string, seq int) string {
	return fmt.Sprintf("%s%s-%04d", quoteNumberPrefix, dayKey, seq)
}

// QuoteNumberDayPrefix is the prefix shared by every number of a day,
// e.g. "COT-20240105-".
func QuoteNumberDayPrefix(dayKey string) string {
	return quoteNumberPrefix + dayKey + "-"
}

// ParseQuoteSequence extracts the trailing sequence of a quote number.
func ParseQuoteSequence(number string) (int, bool) {
	i := strings.LastIndex(number, "-")
	if i < 0 || !strings.HasPrefix(number, quoteNumberPrefix) {
		return 0, false
	}
	seq, err := strconv.Atoi(number[i+1:])
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}

// StoreQuoteSequence derives the next sequence from the greatest number
// already stored for the day. Concurrent callers can get the same value; the
// repository's unique constraint rejects the loser and creation retries.
type StoreQuoteSequence struct {
	repo interfaces.IQuoteRepository
}

var _ interfaces.IQuoteSequence = (*StoreQuoteSequence)(nil)

func NewStoreQuoteSequence(repo interfaces.IQuoteRepository) *StoreQuoteSequence {
	return &StoreQuoteSequence{repo: repo}
}

func (s *StoreQuoteSequence) Next(ctx context.Context, dayKey string) (int, error) {
	latest, err := s.repo.LatestNumber(ctx, QuoteNumberDayPrefix(dayKey))
	if err != nil {
		return 0, err
	}
	if latest == "" {
		return 1, nil
	}
	seq, ok := ParseQuoteSequence(latest)
	if !ok {
		return 0, fmt.Errorf("%w: malformed quote number %q", entities.ErrPersistence, latest)
	}
	return seq + 1, nil
}
