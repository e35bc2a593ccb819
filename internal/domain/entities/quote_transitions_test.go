package entities

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var (
	consultant = User{ID: "u-cons", Name: "Carla Consultora", Role: RoleConsultor, Active: true}
	otherCons  = User{ID: "u-cons-2", Name: "Caio Consultor", Role: RoleConsultor, Active: true}
	operatorA  = User{ID: "u-op-a", Name: "Otávio", Role: RoleOperador, Active: true}
	operatorB  = User{ID: "u-op-b", Name: "Olga", Role: RoleOperador, Active: true}
	manager    = User{ID: "u-ger", Name: "Gina Gerente", Role: RoleGerente, Active: true}
	admin      = User{ID: "u-adm", Name: "Admin", Role: RoleAdministrador, Active: true}
)

func requestedQuote(at time.Time) Quote {
	return NewQuote("q-1", "COT-20240105-0001", consultant.ID, QuoteDraft{Mode: TransportModeRodoviario}, at)
}

func TestQuote_FullLifecycle(t *testing.T) {
	t0 := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	q := requestedQuote(t0)

	tr, err := q.AcceptByOperator(operatorA, "", t0.Add(time.Minute))
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if q.Status != QuoteStatusAceitaOperador || q.OperatorID != operatorA.ID || q.OperatorAcceptedAt == nil {
		t.Fatalf("unexpected quote after accept: %+v", q)
	}
	if tr.From != QuoteStatusSolicitada || tr.To != QuoteStatusAceitaOperador || tr.ActorID != operatorA.ID {
		t.Fatalf("unexpected transition: %+v", tr)
	}
	if tr.Note != "Cotação aceita pelo operador Otávio" {
		t.Fatalf("unexpected note: %q", tr.Note)
	}

	tr, err = q.SendQuote(operatorA, QuoteResponse{FreightValue: decimal.RequireFromString("500.00"), LeadTimeDays: 3, Notes: "coleta amanhã"}, "co-1", t0.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if q.Status != QuoteStatusCotacaoEnviada || q.Response == nil || q.ProviderCompanyID != "co-1" || q.QuotedAt == nil {
		t.Fatalf("unexpected quote after send: %+v", q)
	}
	if tr.Note != "Valor: R$ 500.00, Prazo: 3 dias. coleta amanhã" {
		t.Fatalf("unexpected note: %q", tr.Note)
	}

	if _, err := q.CustomerDecline(consultant, "", t0.Add(3*time.Minute)); err != nil {
		t.Fatalf("decline: %v", err)
	}
	if q.Status != QuoteStatusNegadaConsultor || q.CustomerRespondedAt == nil {
		t.Fatalf("unexpected quote after decline: %+v", q)
	}

	tr, err = q.Finalize(operatorA, "", t0.Add(4*time.Minute))
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if q.Status != QuoteStatusFinalizada || q.FinalizedAt == nil || tr.From != QuoteStatusNegadaConsultor {
		t.Fatalf("unexpected quote after finalize: %+v", q)
	}
}

func TestQuote_GuardsBeforeState(t *testing.T) {
	now := time.Now().UTC()

	t.Run("consultant cannot accept", func(t *testing.T) {
		q := requestedQuote(now)
		_, err := q.AcceptByOperator(consultant, "", now)
		if !errors.Is(err, ErrPermission) {
			t.Fatalf("expected ErrPermission, got %v", err)
		}
		if q.Status != QuoteStatusSolicitada || q.OperatorID != "" {
			t.Fatalf("quote mutated on failure: %+v", q)
		}
	})

	t.Run("manager can accept", func(t *testing.T) {
		q := requestedQuote(now)
		if _, err := q.AcceptByOperator(manager, "", now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.OperatorID != manager.ID {
			t.Fatalf("expected manager assigned, got %q", q.OperatorID)
		}
	})

	t.Run("double accept is a state conflict", func(t *testing.T) {
		q := requestedQuote(now)
		if _, err := q.AcceptByOperator(operatorA, "", now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		before := q
		_, err := q.AcceptByOperator(operatorB, "", now)
		if !errors.Is(err, ErrStateConflict) {
			t.Fatalf("expected ErrStateConflict, got %v", err)
		}
		if q.OperatorID != operatorA.ID || q.Status != before.Status || q.UpdatedAt != before.UpdatedAt {
			t.Fatalf("quote mutated on failure: %+v", q)
		}
	})

	t.Run("consultant finalizing a requested quote is a permission error", func(t *testing.T) {
		q := requestedQuote(now)
		_, err := q.Finalize(consultant, "", now)
		if !errors.Is(err, ErrPermission) {
			t.Fatalf("expected ErrPermission, got %v", err)
		}
	})

	t.Run("admin finalizing a requested quote is a state conflict", func(t *testing.T) {
		q := requestedQuote(now)
		_, err := q.Finalize(admin, "", now)
		if !errors.Is(err, ErrStateConflict) {
			t.Fatalf("expected ErrStateConflict, got %v", err)
		}
	})

	t.Run("other operator cannot send", func(t *testing.T) {
		q := requestedQuote(now)
		_, _ = q.AcceptByOperator(operatorA, "", now)
		_, err := q.SendQuote(operatorB, QuoteResponse{FreightValue: decimal.NewFromInt(10), LeadTimeDays: 1}, "", now)
		if !errors.Is(err, ErrPermission) {
			t.Fatalf("expected ErrPermission, got %v", err)
		}
	})

	t.Run("other consultant cannot decide", func(t *testing.T) {
		q := requestedQuote(now)
		_, _ = q.AcceptByOperator(operatorA, "", now)
		_, _ = q.SendQuote(operatorA, QuoteResponse{FreightValue: decimal.NewFromInt(10), LeadTimeDays: 1}, "", now)
		_, err := q.CustomerAccept(otherCons, "", now)
		if !errors.Is(err, ErrPermission) {
			t.Fatalf("expected ErrPermission, got %v", err)
		}
	})

	t.Run("send rejects non positive values", func(t *testing.T) {
		q := requestedQuote(now)
		_, _ = q.AcceptByOperator(operatorA, "", now)
		_, err := q.SendQuote(operatorA, QuoteResponse{FreightValue: decimal.Zero, LeadTimeDays: 3}, "", now)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		_, err = q.SendQuote(operatorA, QuoteResponse{FreightValue: decimal.NewFromInt(1), LeadTimeDays: 0}, "", now)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		if q.Status != QuoteStatusAceitaOperador || q.Response != nil {
			t.Fatalf("quote mutated on failure: %+v", q)
		}
	})
}

func TestQuote_Reassign(t *testing.T) {
	now := time.Now().UTC()
	q := requestedQuote(now)
	_, _ = q.AcceptByOperator(operatorA, "", now)

	if _, err := q.Reassign(operatorA, operatorB, operatorA.Name, now); !errors.Is(err, ErrPermission) {
		t.Fatalf("expected ErrPermission, got %v", err)
	}
	if _, err := q.Reassign(manager, otherCons, operatorA.Name, now); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	tr, err := q.Reassign(manager, operatorB, operatorA.Name, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.OperatorID != operatorB.ID || q.Status != QuoteStatusAceitaOperador {
		t.Fatalf("unexpected quote after reassign: %+v", q)
	}
	if tr.From != tr.To || tr.Note != "Cotação reatribuída de Otávio para Olga" {
		t.Fatalf("unexpected transition: %+v", tr)
	}
}

func TestQuote_StampsAreMonotonic(t *testing.T) {
	t0 := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	q := requestedQuote(t0)

	// A skewed clock must not move a later stamp before an earlier one.
	if _, err := q.AcceptByOperator(operatorA, "", t0.Add(-time.Hour)); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if q.OperatorAcceptedAt.Before(q.RequestedAt) {
		t.Fatalf("accept stamp %v before request stamp %v", q.OperatorAcceptedAt, q.RequestedAt)
	}
}

func TestCanCreateQuote(t *testing.T) {
	if err := CanCreateQuote(operatorA); !errors.Is(err, ErrPermission) {
		t.Fatalf("expected ErrPermission, got %v", err)
	}
	for _, u := range []User{consultant, manager, admin} {
		if err := CanCreateQuote(u); err != nil {
			t.Fatalf("unexpected error for %s: %v", u.Role, err)
		}
	}
}
