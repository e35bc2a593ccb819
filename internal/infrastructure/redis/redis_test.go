package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	mock_interfaces "brcargo_cotacoes/internal/usecase/interfaces/mocks"

	goRedis "github.com/redis/go-redis/v9"
	"go.uber.org/mock/gomock"
)

// fakeRedis implements the handful of commands used here; anything else
// panics through the nil embedded interface.
type fakeRedis struct {
	goRedis.Cmdable
	counters  map[string]int64
	ttls      map[string]time.Duration
	published map[string][]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		counters:  map[string]int64{},
		ttls:      map[string]time.Duration{},
		published: map[string][]string{},
	}
}

type fakePipe struct {
	goRedis.Pipeliner
	r *fakeRedis
}

func (f *fakeRedis) TxPipelined(ctx context.Context, fn func(goRedis.Pipeliner) error) ([]goRedis.Cmder, error) {
	return nil, fn(&fakePipe{r: f})
}

func (f *fakeRedis) IncrBy(ctx context.Context, key string, value int64) *goRedis.IntCmd {
	f.counters[key] += value
	cmd := goRedis.NewIntCmd(ctx)
	cmd.SetVal(f.counters[key])
	return cmd
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message interface{}) *goRedis.IntCmd {
	f.published[channel] = append(f.published[channel], string(message.([]byte)))
	cmd := goRedis.NewIntCmd(ctx)
	cmd.SetVal(1)
	return cmd
}

func (p *fakePipe) Incr(ctx context.Context, key string) *goRedis.IntCmd {
	return p.r.IncrBy(ctx, key, 1)
}

func (p *fakePipe) Expire(ctx context.Context, key string, ttl time.Duration) *goRedis.BoolCmd {
	p.r.ttls[key] = ttl
	cmd := goRedis.NewBoolCmd(ctx)
	cmd.SetVal(true)
	return cmd
}

func TestQuoteSequence_SeedsNewDayFromStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	seed := mock_interfaces.NewMockIQuoteSequence(ctrl)
	r := newFakeRedis()
	seq := NewQuoteSequence(r, "", seed)
	ctx := context.Background()

	seed.EXPECT().Next(gomock.Any(), "20240105").Return(42, nil).Times(1)

	first, err := seq.Next(ctx, "20240105")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := seq.Next(ctx, "20240105")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != 42 || second != 43 {
		t.Fatalf("expected 42 then 43, got %d and %d", first, second)
	}
	if r.ttls["quote_seq:20240105"] != counterTTL {
		t.Fatalf("expected the counter to expire, got %v", r.ttls)
	}
}

func TestQuoteSequence_EmptyDayStartsAtOne(t *testing.T) {
	ctrl := gomock.NewController(t)
	seed := mock_interfaces.NewMockIQuoteSequence(ctrl)
	seq := NewQuoteSequence(newFakeRedis(), "cot", seed)

	seed.EXPECT().Next(gomock.Any(), "20240106").Return(1, nil)

	n, err := seq.Next(context.Background(), "20240106")
	if err != nil || n != 1 {
		t.Fatalf("expected 1, got %d (%v)", n, err)
	}
}

func TestQuoteSequence_SeedFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	seed := mock_interfaces.NewMockIQuoteSequence(ctrl)
	seq := NewQuoteSequence(newFakeRedis(), "", seed)

	seed.EXPECT().Next(gomock.Any(), gomock.Any()).Return(0, errors.New("scan failed"))

	if _, err := seq.Next(context.Background(), "20240105"); err == nil {
		t.Fatalf("expected seed error")
	}
}

func TestQuoteSequence_WithoutSeed(t *testing.T) {
	r := newFakeRedis()
	seq := NewQuoteSequence(r, "", nil)
	for want := 1; want <= 3; want++ {
		n, err := seq.Next(context.Background(), "20240105")
		if err != nil || n != want {
			t.Fatalf("expected %d, got %d (%v)", want, n, err)
		}
	}
}

func TestEventPublisher_Publish(t *testing.T) {
	r := newFakeRedis()
	p := NewEventPublisher(r)

	if err := p.Publish(context.Background(), "cotacoes.eventos", []byte(`{"type":"nova_cotacao"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.published["cotacoes.eventos"]; len(got) != 1 || got[0] != `{"type":"nova_cotacao"}` {
		t.Fatalf("unexpected published messages: %v", got)
	}
}
