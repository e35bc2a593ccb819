package request

import (
	"errors"
	"testing"
	"time"

	"brcargo_cotacoes/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestCreateQuoteRequest_ToDraft(t *testing.T) {
	r := CreateQuoteRequest{
		Mode:        "BRCargo Marítimo",
		Client:      ClientRequest{Name: "Acme", TaxID: "11.222.333/0001-81"},
		Origin:      LocationRequest{Kind: "porto", PostalCode: "11010-000", City: "Santos", State: "sp", Port: "Santos"},
		Destination: LocationRequest{City: "Roterdã", Port: "Rotterdam"},
		Cargo:       CargoRequest{WeightKg: decimal.RequireFromString("1200.5")},
		Maritime:    &MaritimeRequest{Incoterm: "FOB", ContainerQuantity: 2},
	}

	d := r.ToDraft()
	if d.Mode != entities.TransportModeMaritimo {
		t.Fatalf("expected maritimo, got %q", d.Mode)
	}
	if d.Origin.State != "SP" || d.Origin.Kind != entities.LocationKind("porto") {
		t.Fatalf("unexpected origin: %+v", d.Origin)
	}
	if d.Maritime == nil || d.Maritime.ContainerQuantity != 2 || d.Air != nil {
		t.Fatalf("unexpected mode details: %+v %+v", d.Maritime, d.Air)
	}
	if !d.Cargo.WeightKg.Equal(decimal.RequireFromString("1200.5")) {
		t.Fatalf("unexpected weight: %s", d.Cargo.WeightKg)
	}
}

func TestCreateQuoteRequest_ToDraftKeepsUnknownMode(t *testing.T) {
	d := CreateQuoteRequest{Mode: " ferroviario "}.ToDraft()
	if d.Mode != entities.TransportMode("ferroviario") {
		t.Fatalf("unknown mode should reach validation untouched, got %q", d.Mode)
	}
}

func TestSendQuoteRequest_ToResponse(t *testing.T) {
	resp := SendQuoteRequest{FreightValue: decimal.RequireFromString("850.10"), LeadTimeDays: 4, Notes: "  coleta amanhã "}.ToResponse()
	if !resp.FreightValue.Equal(decimal.RequireFromString("850.1")) || resp.LeadTimeDays != 4 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Notes != "coleta amanhã" {
		t.Fatalf("expected trimmed notes, got %q", resp.Notes)
	}
}

func TestListQuotesQuery_ToFilter(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	q := ListQuotesQuery{
		Status:        "Aceita pelo Operador",
		Mode:          "air",
		ClientName:    " acme ",
		RequestedFrom: "2024-01-05",
		RequestedTo:   "2024-01-06",
		Page:          2,
		PageSize:      500,
	}

	f, page, err := q.ToFilter(loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Status != entities.QuoteStatusAceitaOperador || f.Mode != entities.TransportModeAereo || f.ClientName != "acme" {
		t.Fatalf("unexpected filter: %+v", f)
	}
	if !f.RequestedFrom.Equal(time.Date(2024, 1, 5, 3, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %v", f.RequestedFrom)
	}
	if !f.RequestedBefore.Equal(time.Date(2024, 1, 7, 3, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected end: %v", f.RequestedBefore)
	}
	if page.Number != 2 || page.Size != entities.MaxPageSize {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestListQuotesQuery_ToFilterErrors(t *testing.T) {
	cases := map[string]struct {
		query ListQuotesQuery
		want  error
	}{
		"status": {ListQuotesQuery{Status: "perdida"}, ErrInvalidStatusFilter},
		"mode":   {ListQuotesQuery{Mode: "ferroviario"}, ErrInvalidModeFilter},
		"from":   {ListQuotesQuery{RequestedFrom: "05/01/2024"}, ErrInvalidDateFilter},
		"to":     {ListQuotesQuery{RequestedTo: "2024-13-01"}, ErrInvalidDateFilter},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := tc.query.ToFilter(time.UTC); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
