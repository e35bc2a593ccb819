package repository

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"brcargo_cotacoes/internal/domain/entities"
	mock_interfaces "brcargo_cotacoes/internal/usecase/interfaces/mocks"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/mock/gomock"
)

// fakeCounters applies the ADD update of the per-day counter table.
type fakeCounters struct {
	seq   map[string]int
	calls int
}

func (f *fakeCounters) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.calls++
	day := params.Key["day"].(*types.AttributeValueMemberS).Value
	delta, err := strconv.Atoi(params.ExpressionAttributeValues[":delta"].(*types.AttributeValueMemberN).Value)
	if err != nil {
		return nil, err
	}
	f.seq[day] += delta
	return &dynamodb.UpdateItemOutput{
		Attributes: map[string]types.AttributeValue{
			"seq": &types.AttributeValueMemberN{Value: strconv.Itoa(f.seq[day])},
		},
	}, nil
}

func TestQuoteDynamoSequence_SeedsNewDayFromStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	seed := mock_interfaces.NewMockIQuoteSequence(ctrl)
	counters := &fakeCounters{seq: map[string]int{}}
	seq := &QuoteDynamoSequence{ddb: counters, table: defaultCountersTable, seed: seed}
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
	if counters.seq["20240105"] != 43 {
		t.Fatalf("unexpected stored counter: %d", counters.seq["20240105"])
	}
}

func TestQuoteDynamoSequence_EmptyDayStartsAtOne(t *testing.T) {
	ctrl := gomock.NewController(t)
	seed := mock_interfaces.NewMockIQuoteSequence(ctrl)
	counters := &fakeCounters{seq: map[string]int{}}
	seq := &QuoteDynamoSequence{ddb: counters, table: defaultCountersTable, seed: seed}

	seed.EXPECT().Next(gomock.Any(), "20240106").Return(1, nil)

	n, err := seq.Next(context.Background(), "20240106")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 || counters.calls != 1 {
		t.Fatalf("expected 1 after a single update, got %d after %d", n, counters.calls)
	}
}

func TestQuoteDynamoSequence_SeedFailureIsReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	seed := mock_interfaces.NewMockIQuoteSequence(ctrl)
	seq := &QuoteDynamoSequence{ddb: &fakeCounters{seq: map[string]int{}}, table: defaultCountersTable, seed: seed}

	boom := errors.New("scan failed")
	seed.EXPECT().Next(gomock.Any(), "20240105").Return(0, boom)

	if _, err := seq.Next(context.Background(), "20240105"); !errors.Is(err, boom) {
		t.Fatalf("expected seed error, got %v", err)
	}
}

func TestQuoteDynamoSequence_WithoutSeedCountsFromOne(t *testing.T) {
	seq := &QuoteDynamoSequence{ddb: &fakeCounters{seq: map[string]int{}}, table: defaultCountersTable}

	for want := 1; want <= 3; want++ {
		n, err := seq.Next(context.Background(), "20240105")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != want {
			t.Fatalf("expected %d, got %d", want, n)
		}
	}
}

func TestQuoteScanInput_LeavesStatusToTheEntityFilter(t *testing.T) {
	filter := entities.QuoteFilter{
		Status: entities.QuoteStatusCotacaoEnviada,
		Mode:   entities.TransportModeAereo,
	}

	in := quoteScanInput("cotacoes", filter)
	if aws.ToString(in.FilterExpression) != "#mode = :mode" {
		t.Fatalf("unexpected filter expression: %q", aws.ToString(in.FilterExpression))
	}
	if _, ok := in.ExpressionAttributeValues[":status"]; ok {
		t.Fatalf("status must not be pushed down")
	}

	legacy := fromQuoteItem(quoteItem{ID: "q-1", Mode: "aereo", Status: "Cotação Enviada"})
	matched := entities.FilterQuotes([]entities.Quote{legacy}, filter)
	if len(matched) != 1 || matched[0].Status != entities.QuoteStatusCotacaoEnviada {
		t.Fatalf("legacy status should match after normalization: %+v", matched)
	}

	if in := quoteScanInput("cotacoes", entities.QuoteFilter{Status: entities.QuoteStatusSolicitada}); in.FilterExpression != nil {
		t.Fatalf("status-only filter should scan unfiltered, got %q", aws.ToString(in.FilterExpression))
	}
}
