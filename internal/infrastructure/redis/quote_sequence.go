package redis

import (
	"context"
	"time"

	"brcargo_cotacoes/internal/usecase/interfaces"

	goRedis "github.com/redis/go-redis/v9"
)

// counterTTL keeps a day's counter around long enough to outlive the day in
// any time zone.
const counterTTL = 72 * time.Hour

// QuoteSequence hands out per-day sequences with INCR on quote_seq:{day}.
//
// A missing counter (first quote of the day or a flushed instance) is seeded
// from seed, so numbering resumes after the greatest number already stored.
type QuoteSequence struct {
	client goRedis.Cmdable
	prefix string
	seed   interfaces.IQuoteSequence
}

var _ interfaces.IQuoteSequence = (*QuoteSequence)(nil)

func NewQuoteSequence(client goRedis.Cmdable, prefix string, seed interfaces.IQuoteSequence) *QuoteSequence {
	if prefix == "" {
		prefix = "quote_seq"
	}
	return &QuoteSequence{client: client, prefix: prefix, seed: seed}
}

func (s *QuoteSequence) key(dayKey string) string {
	return s.prefix + ":" + dayKey
}

func (s *QuoteSequence) Next(ctx context.Context, dayKey string) (int, error) {
	key := s.key(dayKey)

	var incr *goRedis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe goRedis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, counterTTL)
		return nil
	})
	if err != nil {
		return 0, err
	}
	n := incr.Val()
	if n != 1 || s.seed == nil {
		return int(n), nil
	}

	next, err := s.seed.Next(ctx, dayKey)
	if err != nil {
		return 0, err
	}
	if next <= 1 {
		return 1, nil
	}
	// Another caller may have incremented in between; IncrBy keeps both
	// results distinct and the create retry absorbs any overlap.
	seeded, err := s.client.IncrBy(ctx, key, int64(next-1)).Result()
	if err != nil {
		return 0, err
	}
	return int(seeded), nil
}
