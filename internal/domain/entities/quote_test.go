package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseQuoteStatus(t *testing.T) {
	cases := map[string]QuoteStatus{
		"solicitada":                     QuoteStatusSolicitada,
		"SOLICITADA":                     QuoteStatusSolicitada,
		"Aceita pelo Operador":           QuoteStatusAceitaOperador,
		"ACEITA_OPERADOR":                QuoteStatusAceitaOperador,
		"Cotação Enviada":                QuoteStatusCotacaoEnviada,
		"StatusCotacao.COTACAO_ENVIADA":  QuoteStatusCotacaoEnviada,
		"Aceita pelo Consultor":          QuoteStatusAceitaConsultor,
		"negada pelo consultor":          QuoteStatusNegadaConsultor,
		"  Finalizada ":                  QuoteStatusFinalizada,
		"StatusCotacao.NEGADA_CONSULTOR": QuoteStatusNegadaConsultor,
	}
	for raw, want := range cases {
		got, ok := ParseQuoteStatus(raw)
		if !ok || got != want {
			t.Fatalf("ParseQuoteStatus(%q) = %q, %v; want %q", raw, got, ok, want)
		}
	}

	if _, ok := ParseQuoteStatus("cancelada"); ok {
		t.Fatalf("expected unknown status to fail")
	}
	if got := StatusFromStore("cancelada"); got != QuoteStatus("cancelada") {
		t.Fatalf("expected unknown raw status kept verbatim, got %q", got)
	}
	if PreviousStatusFromStore("") != nil {
		t.Fatalf("expected nil previous status for creation entry")
	}
}

func TestQuoteStatus_StoredFormsParseBack(t *testing.T) {
	for _, status := range AllQuoteStatuses {
		forms := status.StoredForms()
		if len(forms) != 4 || forms[0] != string(status) {
			t.Fatalf("unexpected forms for %q: %v", status, forms)
		}
		for _, raw := range forms {
			if got := StatusFromStore(raw); got != status {
				t.Fatalf("StatusFromStore(%q) = %q, want %q", raw, got, status)
			}
		}
	}
}

func TestParseTransportMode(t *testing.T) {
	cases := map[string]TransportMode{
		"rodoviario":         TransportModeRodoviario,
		"brcargo_rodoviario": TransportModeRodoviario,
		"Rodoviário":         TransportModeRodoviario,
		"brcargo_maritimo":   TransportModeMaritimo,
		"frete_aereo":        TransportModeAereo,
		"AEREO":              TransportModeAereo,
	}
	for raw, want := range cases {
		got, ok := ParseTransportMode(raw)
		if !ok || got != want {
			t.Fatalf("ParseTransportMode(%q) = %q, %v; want %q", raw, got, ok, want)
		}
	}
	if _, ok := ParseTransportMode("ferroviario"); ok {
		t.Fatalf("expected unknown mode to fail")
	}
}

func TestQuote_EffectiveCubicVolume(t *testing.T) {
	q := Quote{Cargo: Cargo{CubicVolume: decimal.RequireFromString("2.5")}}
	if !q.EffectiveCubicVolume().Equal(decimal.RequireFromString("2.5")) {
		t.Fatalf("expected stored volume, got %s", q.EffectiveCubicVolume())
	}

	q = Quote{Cargo: Cargo{
		LengthCm: decimal.NewFromInt(100),
		WidthCm:  decimal.NewFromInt(60),
		HeightCm: decimal.NewFromInt(50),
	}}
	if !q.EffectiveCubicVolume().Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected derived volume 50, got %s", q.EffectiveCubicVolume())
	}
	if !q.Cargo.CubicVolume.IsZero() {
		t.Fatalf("derived volume must not be stored")
	}

	q = Quote{Cargo: Cargo{LengthCm: decimal.NewFromInt(100), WidthCm: decimal.NewFromInt(60)}}
	if !q.EffectiveCubicVolume().IsZero() {
		t.Fatalf("expected zero without every dimension, got %s", q.EffectiveCubicVolume())
	}
}

func TestRole(t *testing.T) {
	if RoleConsultor.CanOperate() || !RoleOperador.CanOperate() || !RoleGerente.CanOperate() || !RoleAdministrador.CanOperate() {
		t.Fatalf("unexpected CanOperate table")
	}
	if RoleOperador.CanRequest() || !RoleConsultor.CanRequest() {
		t.Fatalf("unexpected CanRequest table")
	}
	if r, ok := ParseRole(" Gerente "); !ok || r != RoleGerente {
		t.Fatalf("unexpected ParseRole result %q %v", r, ok)
	}
}
