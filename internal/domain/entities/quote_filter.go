package entities

import (
	"sort"
	"strings"
	"time"

	"brcargo_cotacoes/pkg/docnum"
)

// VisibilityScope restricts a query to what the caller may see. The zero
// value sees everything.
type VisibilityScope struct {
	// OwnerConsultantID limits results to quotes opened by this consultant.
	OwnerConsultantID string
	// PoolOperatorID limits results to the open pool plus the quotes
	// assigned to this operator.
	PoolOperatorID string
}

// ScopeFor derives the visibility scope of a caller.
func ScopeFor(caller User) VisibilityScope {
	switch caller.Role {
	case RoleOperador:
		return VisibilityScope{PoolOperatorID: caller.ID}
	case RoleGerente, RoleAdministrador:
		return VisibilityScope{}
	default:
		return VisibilityScope{OwnerConsultantID: caller.ID}
	}
}

// CanView applies the listing visibility to a single quote.
func CanView(caller User, q Quote) bool {
	return ScopeFor(caller).Allows(q)
}

// CanViewHistory reports whether the caller may read the audit trail:
// supervisors, the owning consultant and the assigned operator.
func CanViewHistory(caller User, q Quote) bool {
	if caller.Role.IsSupervisor() {
		return true
	}
	return caller.ID != "" && (caller.ID == q.ConsultantID || q.IsAssignedTo(caller.ID))
}

func (s VisibilityScope) Allows(q Quote) bool {
	if s.OwnerConsultantID != "" && q.ConsultantID != s.OwnerConsultantID {
		return false
	}
	if s.PoolOperatorID != "" && q.Status != QuoteStatusSolicitada && q.OperatorID != s.PoolOperatorID {
		return false
	}
	return true
}

// QuoteFilter holds the optional, conjunctive list filters.
//
// RequestedFrom is inclusive and RequestedBefore exclusive; see DayRange.
type QuoteFilter struct {
	Status          QuoteStatus
	Mode            TransportMode
	ClientName      string
	ClientTaxID     string
	OriginCity      string
	DestinationCity string
	RequestedFrom   time.Time
	RequestedBefore time.Time
	ConsultantID    string
	OperatorID      string

	Scope VisibilityScope
}

// ForCaller applies the caller's scope. Consultants cannot filter by
// consultant or operator.
func (f QuoteFilter) ForCaller(caller User) QuoteFilter {
	if caller.Role == RoleConsultor {
		f.ConsultantID = ""
		f.OperatorID = ""
	}
	f.Scope = ScopeFor(caller)
	return f
}

// TaxIDDigits is the client tax id filter reduced to digits.
func (f QuoteFilter) TaxIDDigits() string {
	return docnum.OnlyDigits(f.ClientTaxID)
}

// DayRange converts an inclusive [from, to] pair of calendar days into the
// half-open instant range used by QuoteFilter. Zero values are left open.
func DayRange(from, to time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	var start, end time.Time
	if !from.IsZero() {
		y, m, d := from.In(loc).Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
	if !to.IsZero() {
		y, m, d := to.In(loc).Date()
		end = time.Date(y, m, d, 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	}
	return start, end
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Matches evaluates the filter and the scope against one quote.
func (f QuoteFilter) Matches(q Quote) bool {
	if !f.Scope.Allows(q) {
		return false
	}
	if f.Status != "" && q.Status != f.Status {
		return false
	}
	if f.Mode != "" && q.Mode != f.Mode {
		return false
	}
	if f.ClientName != "" && !containsFold(q.Client.Name, f.ClientName) {
		return false
	}
	if digits := f.TaxIDDigits(); digits != "" && !strings.Contains(docnum.OnlyDigits(q.Client.TaxID), digits) {
		return false
	}
	if f.OriginCity != "" && !containsFold(q.Origin.City, f.OriginCity) {
		return false
	}
	if f.DestinationCity != "" && !containsFold(q.Destination.City, f.DestinationCity) {
		return false
	}
	if !f.RequestedFrom.IsZero() && q.RequestedAt.Before(f.RequestedFrom) {
		return false
	}
	if !f.RequestedBefore.IsZero() && !q.RequestedAt.Before(f.RequestedBefore) {
		return false
	}
	if f.ConsultantID != "" && q.ConsultantID != f.ConsultantID {
		return false
	}
	if f.OperatorID != "" && q.OperatorID != f.OperatorID {
		return false
	}
	return true
}

// FilterQuotes returns the matching quotes, newest request first.
func FilterQuotes(quotes []Quote, f QuoteFilter) []Quote {
	out := make([]Quote, 0, len(quotes))
	for _, q := range quotes {
		if f.Matches(q) {
			out = append(out, q)
		}
	}
	SortByRequestedDesc(out)
	return out
}

func SortByRequestedDesc(quotes []Quote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		if quotes[i].RequestedAt.Equal(quotes[j].RequestedAt) {
			return quotes[i].Number > quotes[j].Number
		}
		return quotes[i].RequestedAt.After(quotes[j].RequestedAt)
	})
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// NewPage applies the defaults and clamps the size.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Slice cuts one page out of an already ordered result.
func (p Page) Slice(quotes []Quote) []Quote {
	start := p.Offset()
	if start >= len(quotes) {
		return []Quote{}
	}
	end := start + p.Size
	if end > len(quotes) {
		end = len(quotes)
	}
	return quotes[start:end]
}

type PageResult[T any] struct {
	Items       []T
	Total       int64
	Page        int
	PageSize    int
	TotalPages  int
	HasNext     bool
	HasPrevious bool
}

func NewPageResult[T any](items []T, total int64, p Page) PageResult[T] {
	pages := 0
	if total > 0 {
		pages = int((total + int64(p.Size) - 1) / int64(p.Size))
	}
	return PageResult[T]{
		Items:       items,
		Total:       total,
		Page:        p.Number,
		PageSize:    p.Size,
		TotalPages:  pages,
		HasNext:     p.Number < pages,
		HasPrevious: p.Number > 1,
	}
}

// QuoteCounts is the raw aggregation over a set of quotes. ByOperator is
// keyed by operator id and lists only operators with at least one quote.
type QuoteCounts struct {
	Total      int64
	ByStatus   map[QuoteStatus]int64
	ByMode     map[TransportMode]int64
	ByOperator map[string]int64
}

// NewQuoteCounts returns counts with every status and mode present.
func NewQuoteCounts() QuoteCounts {
	c := QuoteCounts{
		ByStatus:   make(map[QuoteStatus]int64, len(AllQuoteStatuses)),
		ByMode:     make(map[TransportMode]int64, len(AllTransportModes)),
		ByOperator: map[string]int64{},
	}
	for _, s := range AllQuoteStatuses {
		c.ByStatus[s] = 0
	}
	for _, m := range AllTransportModes {
		c.ByMode[m] = 0
	}
	return c
}

func (c *QuoteCounts) Add(q Quote) {
	c.Total++
	c.ByStatus[q.Status]++
	c.ByMode[q.Mode]++
	if q.OperatorID != "" {
		c.ByOperator[q.OperatorID]++
	}
}

// TallyQuotes counts the quotes matching f.
func TallyQuotes(quotes []Quote, f QuoteFilter) QuoteCounts {
	c := NewQuoteCounts()
	for _, q := range quotes {
		if f.Matches(q) {
			c.Add(q)
		}
	}
	return c
}

// QuoteStatistics is QuoteCounts with operators resolved to display names.
// ByOperator is nil for consultant callers.
type QuoteStatistics struct {
	Total      int64                   `json:"total"`
	ByStatus   map[QuoteStatus]int64   `json:"by_status"`
	ByMode     map[TransportMode]int64 `json:"by_mode"`
	ByOperator map[string]int64        `json:"by_operator,omitempty"`
}
