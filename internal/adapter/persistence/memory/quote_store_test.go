package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"brcargo_cotacoes/internal/adapter/persistence/memory"
	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	consultant = entities.User{ID: "u-cons", Name: "Carla", Role: entities.RoleConsultor, Active: true}
	operatorA  = entities.User{ID: "u-op-a", Name: "Otávio", Role: entities.RoleOperador, Active: true}
	operatorB  = entities.User{ID: "u-op-b", Name: "Olga", Role: entities.RoleOperador, Active: true}
	manager    = entities.User{ID: "u-ger", Name: "Gina", Role: entities.RoleGerente, Active: true}
)

type fixture struct {
	quotes        *memory.QuoteStore
	notifications *memory.NotificationStore
	uc            *usecase.QuoteUseCase
	inbox         *usecase.NotificationUseCase
}

func newFixture(t *testing.T, seq func(*memory.QuoteStore) *usecase.QuoteNumberer) fixture {
	t.Helper()
	quotes := memory.NewQuoteStore()
	users := memory.NewUserStore(consultant, operatorA, operatorB, manager)
	companies := memory.NewCompanyStore(entities.Company{ID: "co-1", Name: "BR Cargo", Active: true})
	notifications := memory.NewNotificationStore()

	inbox := usecase.NewNotificationUseCase(notifications, users, nil, nil)
	numberer := seq(quotes)
	uc := usecase.NewQuoteUseCase(quotes, users, companies, numberer, usecase.WithNotifier(inbox))
	return fixture{quotes: quotes, notifications: notifications, uc: uc, inbox: inbox}
}

func counterSequence(s *memory.QuoteStore) *usecase.QuoteNumberer {
	return usecase.NewQuoteNumberer(s, time.UTC)
}

func storeSequence(s *memory.QuoteStore) *usecase.QuoteNumberer {
	return usecase.NewQuoteNumberer(usecase.NewStoreQuoteSequence(s), time.UTC)
}

func draft() entities.QuoteDraft {
	return entities.QuoteDraft{
		Mode:   entities.TransportModeRodoviario,
		Client: entities.Client{Name: "Acme", TaxID: "11222333000181", Number: "CLI-1"},
		Origin: entities.Location{
			PostalCode: "01310100", Address: "Av. Paulista, 1000", City: "São Paulo", State: "SP",
		},
		Destination: entities.Location{
			PostalCode: "80010000", Address: "Rua XV, 10", City: "Curitiba", State: "PR",
		},
		Cargo: entities.Cargo{
			Description:   "Peças",
			WeightKg:      decimal.NewFromInt(120),
			DeclaredValue: decimal.NewFromInt(5000),
			CubicVolume:   decimal.RequireFromString("1.2"),
		},
	}
}

func TestQuoteWorkflow_HappyPath(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, counterSequence)

	q, err := f.uc.Create(ctx, consultant, draft())
	require.NoError(t, err)
	assert.Regexp(t, `^COT-\d{8}-0001$`, q.Number)

	q, err = f.uc.AcceptByOperator(ctx, operatorA, q.ID, "")
	require.NoError(t, err)

	resp := entities.QuoteResponse{FreightValue: decimal.NewFromInt(800), LeadTimeDays: 3}
	q, err = f.uc.SendQuote(ctx, operatorA, q.ID, resp, "co-1")
	require.NoError(t, err)

	q, err = f.uc.CustomerAccept(ctx, consultant, q.ID, "")
	require.NoError(t, err)

	q, err = f.uc.Finalize(ctx, operatorA, q.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entities.QuoteStatusFinalizada, q.Status)
	assert.Equal(t, int64(5), q.Version)

	history, err := f.uc.History(ctx, consultant, q.ID)
	require.NoError(t, err)
	require.Len(t, history, 5)
	assert.Nil(t, history[0].PreviousStatus)
	assert.Equal(t, "Carla", history[0].ActorName)
	for i := 1; i < len(history); i++ {
		require.NotNil(t, history[i].PreviousStatus)
		assert.Equal(t, history[i-1].NewStatus, *history[i].PreviousStatus)
		assert.False(t, history[i].Timestamp.Before(history[i-1].Timestamp))
	}

	// operators got the new quote, the consultant the acceptance and the response
	opInbox, err := f.inbox.List(ctx, operatorB, false, 0)
	require.NoError(t, err)
	assert.Len(t, opInbox.Items, 1)

	consInbox, err := f.inbox.List(ctx, consultant, false, 0)
	require.NoError(t, err)
	assert.Len(t, consInbox.Items, 2)
	assert.Equal(t, int64(2), consInbox.Unread)

	stats, err := f.uc.Statistics(ctx, manager)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.ByStatus[entities.QuoteStatusFinalizada])
	assert.Equal(t, int64(1), stats.ByOperator["Otávio"])
}

func TestQuoteWorkflow_ConcurrentAcceptHasOneWinner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, counterSequence)

	q, err := f.uc.Create(ctx, consultant, draft())
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []string
		losers  int
	)
	for _, op := range []entities.User{operatorA, operatorB, operatorA, operatorB} {
		wg.Add(1)
		go func(op entities.User) {
			defer wg.Done()
			_, err := f.uc.AcceptByOperator(ctx, op, q.ID, "")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners = append(winners, op.ID)
				return
			}
			if errors.Is(err, entities.ErrStateConflict) {
				losers++
			}
		}(op)
	}
	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, 3, losers)

	history, err := f.quotes.ListHistory(ctx, q.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	stored, err := f.quotes.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, winners[0], stored.OperatorID)
}

func TestQuoteWorkflow_ConcurrentCreatesGetDistinctNumbers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, counterSequence)

	const n = 25
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = map[string]bool{}
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, err := f.uc.Create(ctx, consultant, draft())
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			numbers[q.Number] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, numbers, n)
}

func TestQuoteWorkflow_StoreSequenceContinuesFromLatest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, storeSequence)

	first, err := f.uc.Create(ctx, consultant, draft())
	require.NoError(t, err)
	second, err := f.uc.Create(ctx, consultant, draft())
	require.NoError(t, err)

	assert.NotEqual(t, first.Number, second.Number)
	seq, ok := usecase.ParseQuoteSequence(second.Number)
	require.True(t, ok)
	assert.Equal(t, 2, seq)
}

func TestQuoteStore_CounterSeedsFromExistingNumbers(t *testing.T) {
	ctx := context.Background()
	s := memory.NewQuoteStore()

	q := entities.NewQuote("q-1", "COT-20240105-0041", consultant.ID, draft(), time.Now())
	require.NoError(t, s.Create(ctx, q, entities.NewCreationHistoryEntry("h-1", q)))

	next, err := s.Next(ctx, "20240105")
	require.NoError(t, err)
	assert.Equal(t, 42, next)

	next, err = s.Next(ctx, "20240106")
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestQuoteStore_RejectsStaleVersionAndDuplicateNumber(t *testing.T) {
	ctx := context.Background()
	s := memory.NewQuoteStore()

	q := entities.NewQuote("q-1", "COT-20240105-0001", consultant.ID, draft(), time.Now())
	require.NoError(t, s.Create(ctx, q, entities.NewCreationHistoryEntry("h-1", q)))

	dup := entities.NewQuote("q-2", q.Number, consultant.ID, draft(), time.Now())
	assert.ErrorIs(t, s.Create(ctx, dup, entities.NewCreationHistoryEntry("h-2", dup)), entities.ErrDuplicateQuoteNumber)

	q.Version = 2
	err := s.Transition(ctx, q, 5, entities.HistoryEntry{ID: "h-3", QuoteID: q.ID})
	assert.ErrorIs(t, err, entities.ErrVersionConflict)

	history, err := s.ListHistory(ctx, q.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
