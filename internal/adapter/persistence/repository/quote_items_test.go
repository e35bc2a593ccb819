package repository

import (
	"errors"
	"testing"
	"time"

	"brcargo_cotacoes/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

func TestQuoteItem_KeepsDecimalsAndNullableStamps(t *testing.T) {
	now := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	q := entities.Quote{
		ID:     "q-1",
		Number: "COT-20240105-0001",
		Mode:   entities.TransportModeMaritimo,
		Status: entities.QuoteStatusCotacaoEnviada,
		Cargo: entities.Cargo{
			WeightKg:      decimal.RequireFromString("10000.125"),
			DeclaredValue: decimal.RequireFromString("90000.10"),
		},
		Maritime: &entities.MaritimeDetails{
			NetWeightKg:   decimal.NewFromInt(9000),
			GrossWeightKg: decimal.RequireFromString("10000.125"),
			CargoType:     "FCL",
		},
		Response:    &entities.QuoteResponse{FreightValue: decimal.RequireFromString("1500.50"), LeadTimeDays: 20},
		RequestedAt: now,
		QuotedAt:    &now,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     3,
	}

	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, ok := av["operator_accepted_at"]; ok {
		t.Fatalf("unset stamp should be omitted")
	}
	if _, ok := av["air"]; ok {
		t.Fatalf("nil air details should be omitted")
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := fromQuoteItem(it)

	if !got.Cargo.WeightKg.Equal(q.Cargo.WeightKg) || !got.Response.FreightValue.Equal(q.Response.FreightValue) {
		t.Fatalf("decimals changed: %+v", got)
	}
	if got.OperatorAcceptedAt != nil || got.QuotedAt == nil || !got.QuotedAt.Equal(now) {
		t.Fatalf("unexpected stamps: %+v", got)
	}
	if got.Maritime == nil || got.Maritime.CargoType != "FCL" || got.Air != nil {
		t.Fatalf("unexpected details: %+v", got)
	}
	if !got.Cargo.LengthCm.IsZero() || got.Version != 3 {
		t.Fatalf("unexpected quote: %+v", got)
	}
}

func TestFromHistoryItem_NormalizesLegacyStatus(t *testing.T) {
	e := fromHistoryItem(historyItem{
		ID:             "h-1",
		PreviousStatus: "Aceita pelo Operador",
		NewStatus:      "COTACAO_ENVIADA",
		Timestamp:      "2024-01-05T10:00:00Z",
	})
	if e.PreviousStatus == nil || *e.PreviousStatus != entities.QuoteStatusAceitaOperador {
		t.Fatalf("unexpected previous status: %v", e.PreviousStatus)
	}
	if e.NewStatus != entities.QuoteStatusCotacaoEnviada {
		t.Fatalf("unexpected new status: %q", e.NewStatus)
	}

	creation := fromHistoryItem(historyItem{ID: "h-0", NewStatus: "solicitada"})
	if creation.PreviousStatus != nil {
		t.Fatalf("creation entry must have no previous status")
	}
}

func TestCancelledByCondition(t *testing.T) {
	err := &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{
			{Code: aws.String("None")},
			{Code: aws.String("ConditionalCheckFailed")},
		},
	}
	if cancelledByCondition(err, 0) {
		t.Fatalf("index 0 did not fail its condition")
	}
	if !cancelledByCondition(err, 1) {
		t.Fatalf("index 1 failed its condition")
	}
	if cancelledByCondition(errors.New("boom"), 1) || cancelledByCondition(err, 5) {
		t.Fatalf("unexpected match")
	}
}

func TestTables_WithDefaults(t *testing.T) {
	tables := Tables{Quotes: "cotacoes"}.withDefaults()
	if tables.Quotes != "cotacoes" || tables.History != defaultHistoryTable || tables.Counters != defaultCountersTable {
		t.Fatalf("unexpected tables: %+v", tables)
	}
}
