package entities

import (
	"testing"
	"time"
)

func sampleQuotes(base time.Time) []Quote {
	mk := func(id, number, consultantID, operatorID string, status QuoteStatus, mode TransportMode, offset time.Duration) Quote {
		return Quote{
			ID:           id,
			Number:       number,
			ConsultantID: consultantID,
			OperatorID:   operatorID,
			Status:       status,
			Mode:         mode,
			Client:       Client{Name: "Acme Logística " + id, TaxID: "11222333000181"},
			Origin:       Location{City: "São Paulo"},
			Destination:  Location{City: "Curitiba"},
			RequestedAt:  base.Add(offset),
		}
	}
	return []Quote{
		mk("q1", "COT-1", consultant.ID, "", QuoteStatusSolicitada, TransportModeRodoviario, 0),
		mk("q2", "COT-2", consultant.ID, operatorA.ID, QuoteStatusAceitaOperador, TransportModeMaritimo, time.Hour),
		mk("q3", "COT-3", otherCons.ID, operatorB.ID, QuoteStatusCotacaoEnviada, TransportModeAereo, 2*time.Hour),
		mk("q4", "COT-4", otherCons.ID, "", QuoteStatusSolicitada, TransportModeRodoviario, 24*time.Hour),
	}
}

func ids(qs []Quote) []string {
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}

func equalIDs(got []string, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestFilterQuotes_Scoping(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	qs := sampleQuotes(base)

	t.Run("consultant sees only own quotes", func(t *testing.T) {
		got := ids(FilterQuotes(qs, QuoteFilter{}.ForCaller(consultant)))
		if !equalIDs(got, "q2", "q1") {
			t.Fatalf("unexpected ids: %v", got)
		}
	})

	t.Run("consultant cannot widen scope with consultant filter", func(t *testing.T) {
		got := ids(FilterQuotes(qs, QuoteFilter{ConsultantID: otherCons.ID}.ForCaller(consultant)))
		if !equalIDs(got, "q2", "q1") {
			t.Fatalf("unexpected ids: %v", got)
		}
	})

	t.Run("operator sees pool plus assigned", func(t *testing.T) {
		got := ids(FilterQuotes(qs, QuoteFilter{}.ForCaller(operatorA)))
		if !equalIDs(got, "q4", "q2", "q1") {
			t.Fatalf("unexpected ids: %v", got)
		}
	})

	t.Run("manager sees everything newest first", func(t *testing.T) {
		got := ids(FilterQuotes(qs, QuoteFilter{}.ForCaller(manager)))
		if !equalIDs(got, "q4", "q3", "q2", "q1") {
			t.Fatalf("unexpected ids: %v", got)
		}
	})
}

func TestFilterQuotes_Filters(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	qs := sampleQuotes(base)

	from, before := DayRange(base, base, time.UTC)
	cases := []struct {
		name   string
		filter QuoteFilter
		want   []string
	}{
		{"status", QuoteFilter{Status: QuoteStatusSolicitada}, []string{"q4", "q1"}},
		{"mode", QuoteFilter{Mode: TransportModeAereo}, []string{"q3"}},
		{"client name case insensitive", QuoteFilter{ClientName: "acme logística q3"}, []string{"q3"}},
		{"tax id formatted", QuoteFilter{ClientTaxID: "11.222.333"}, []string{"q4", "q3", "q2", "q1"}},
		{"origin city", QuoteFilter{OriginCity: "paulo"}, []string{"q4", "q3", "q2", "q1"}},
		{"destination city miss", QuoteFilter{DestinationCity: "recife"}, nil},
		{"date range inclusive day", QuoteFilter{RequestedFrom: from, RequestedBefore: before}, []string{"q3", "q2", "q1"}},
		{"operator", QuoteFilter{OperatorID: operatorB.ID}, []string{"q3"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(FilterQuotes(qs, tc.filter.ForCaller(admin)))
			if !equalIDs(got, tc.want...) {
				t.Fatalf("unexpected ids: %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPageResult(t *testing.T) {
	p := NewPage(0, 0)
	if p.Number != 1 || p.Size != DefaultPageSize {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if NewPage(1, 1000).Size != MaxPageSize {
		t.Fatalf("expected page size clamp")
	}

	res := NewPageResult([]int{1, 2}, 45, NewPage(2, 20))
	if res.TotalPages != 3 || !res.HasNext || !res.HasPrevious {
		t.Fatalf("unexpected page result: %+v", res)
	}

	res = NewPageResult([]int{}, 0, NewPage(1, 20))
	if res.TotalPages != 0 || res.HasNext || res.HasPrevious {
		t.Fatalf("unexpected empty page result: %+v", res)
	}

	qs := sampleQuotes(time.Now())
	if got := NewPage(2, 3).Slice(qs); len(got) != 1 {
		t.Fatalf("expected 1 item on second page, got %d", len(got))
	}
	if got := NewPage(5, 3).Slice(qs); len(got) != 0 {
		t.Fatalf("expected empty page, got %d", len(got))
	}
}

func TestTallyQuotes(t *testing.T) {
	qs := sampleQuotes(time.Now())

	c := TallyQuotes(qs, QuoteFilter{}.ForCaller(manager))
	if c.Total != 4 || len(c.ByStatus) != 6 || len(c.ByMode) != 3 {
		t.Fatalf("unexpected counts: %+v", c)
	}
	if c.ByStatus[QuoteStatusSolicitada] != 2 || c.ByStatus[QuoteStatusFinalizada] != 0 {
		t.Fatalf("unexpected status counts: %+v", c.ByStatus)
	}
	if len(c.ByOperator) != 2 || c.ByOperator[operatorA.ID] != 1 {
		t.Fatalf("unexpected operator counts: %+v", c.ByOperator)
	}

	c = TallyQuotes(qs, QuoteFilter{}.ForCaller(consultant))
	if c.Total != 2 || c.ByMode[TransportModeAereo] != 0 {
		t.Fatalf("unexpected consultant counts: %+v", c)
	}
}

func TestCanViewHistory(t *testing.T) {
	q := Quote{ConsultantID: consultant.ID, OperatorID: operatorA.ID, Status: QuoteStatusAceitaOperador}
	if !CanViewHistory(consultant, q) || !CanViewHistory(operatorA, q) || !CanViewHistory(manager, q) {
		t.Fatalf("expected owner, operator and manager to see history")
	}
	if CanViewHistory(operatorB, q) || CanViewHistory(otherCons, q) {
		t.Fatalf("unexpected history visibility")
	}
}
