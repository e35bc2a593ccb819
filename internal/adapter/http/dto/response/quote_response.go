package response

import (
	"time"

	"brcargo_cotacoes/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type QuoteResponse struct {
	ID                string                    `json:"id"`
	Number            string                    `json:"number"`
	ConsultantID      string                    `json:"consultant_id"`
	OperatorID        string                    `json:"operator_id,omitempty"`
	ProviderCompanyID string                    `json:"provider_company_id,omitempty"`
	Mode              string                    `json:"mode"`
	ModeDisplay       string                    `json:"mode_display"`
	Status            string                    `json:"status"`
	StatusDisplay     string                    `json:"status_display"`
	Client            entities.Client           `json:"client"`
	Origin            entities.Location         `json:"origin"`
	Destination       entities.Location         `json:"destination"`
	Cargo             entities.Cargo            `json:"cargo"`
	CubicVolume       decimal.Decimal           `json:"effective_cubic_volume"`
	Service           entities.ServiceRequest   `json:"service"`
	Maritime          *entities.MaritimeDetails `json:"maritime,omitempty"`
	Air               *entities.AirDetails      `json:"air,omitempty"`
	Response          *entities.QuoteResponse   `json:"response,omitempty"`

	RequestedAt         time.Time  `json:"requested_at"`
	OperatorAcceptedAt  *time.Time `json:"operator_accepted_at,omitempty"`
	QuotedAt            *time.Time `json:"quoted_at,omitempty"`
	CustomerRespondedAt *time.Time `json:"customer_responded_at,omitempty"`
	FinalizedAt         *time.Time `json:"finalized_at,omitempty"`
	UpdatedAt           time.Time  `json:"updated_at"`
	Version             int64      `json:"version"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:                  q.ID,
		Number:              q.Number,
		ConsultantID:        q.ConsultantID,
		OperatorID:          q.OperatorID,
		ProviderCompanyID:   q.ProviderCompanyID,
		Mode:                string(q.Mode),
		ModeDisplay:         q.Mode.DisplayName(),
		Status:              string(q.Status),
		StatusDisplay:       q.Status.DisplayName(),
		Client:              q.Client,
		Origin:              q.Origin,
		Destination:         q.Destination,
		Cargo:               q.Cargo,
		CubicVolume:         q.EffectiveCubicVolume(),
		Service:             q.Service,
		Maritime:            q.Maritime,
		Air:                 q.Air,
		Response:            q.Response,
		RequestedAt:         q.RequestedAt,
		OperatorAcceptedAt:  q.OperatorAcceptedAt,
		QuotedAt:            q.QuotedAt,
		CustomerRespondedAt: q.CustomerRespondedAt,
		FinalizedAt:         q.FinalizedAt,
		UpdatedAt:           q.UpdatedAt,
		Version:             q.Version,
	}
}

type QuotePageResponse struct {
	Items       []QuoteResponse `json:"items"`
	Total       int64           `json:"total"`
	Page        int             `json:"page"`
	PageSize    int             `json:"page_size"`
	TotalPages  int             `json:"total_pages"`
	HasNext     bool            `json:"has_next"`
	HasPrevious bool            `json:"has_previous"`
}

func FromQuotePage(p entities.PageResult[entities.Quote]) QuotePageResponse {
	items := make([]QuoteResponse, 0, len(p.Items))
	for _, q := range p.Items {
		items = append(items, FromQuote(q))
	}
	return QuotePageResponse{
		Items:       items,
		Total:       p.Total,
		Page:        p.Page,
		PageSize:    p.PageSize,
		TotalPages:  p.TotalPages,
		HasNext:     p.HasNext,
		HasPrevious: p.HasPrevious,
	}
}

type HistoryEntryResponse struct {
	ID                    string    `json:"id"`
	ActorID               string    `json:"actor_id"`
	ActorName             string    `json:"actor_name,omitempty"`
	PreviousStatus        *string   `json:"previous_status"`
	PreviousStatusDisplay *string   `json:"previous_status_display"`
	NewStatus             string    `json:"new_status"`
	NewStatusDisplay      string    `json:"new_status_display"`
	Note                  string    `json:"note,omitempty"`
	Timestamp             time.Time `json:"timestamp"`
}

func FromHistory(entries []entities.HistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		r := HistoryEntryResponse{
			ID:               e.ID,
			ActorID:          e.ActorID,
			ActorName:        e.ActorName,
			NewStatus:        string(e.NewStatus),
			NewStatusDisplay: e.NewStatus.DisplayName(),
			Note:             e.Note,
			Timestamp:        e.Timestamp,
		}
		if e.PreviousStatus != nil {
			prev := string(*e.PreviousStatus)
			display := e.PreviousStatus.DisplayName()
			r.PreviousStatus = &prev
			r.PreviousStatusDisplay = &display
		}
		out = append(out, r)
	}
	return out
}

type StatisticsResponse struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByMode     map[string]int64 `json:"by_mode"`
	ByOperator map[string]int64 `json:"by_operator,omitempty"`
}

func FromStatistics(s entities.QuoteStatistics) StatisticsResponse {
	out := StatisticsResponse{
		Total:      s.Total,
		ByStatus:   make(map[string]int64, len(s.ByStatus)),
		ByMode:     make(map[string]int64, len(s.ByMode)),
		ByOperator: s.ByOperator,
	}
	for k, v := range s.ByStatus {
		out.ByStatus[string(k)] = v
	}
	for k, v := range s.ByMode {
		out.ByMode[string(k)] = v
	}
	return out
}

type OperatorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

func FromOperators(users []entities.User) []OperatorResponse {
	out := make([]OperatorResponse, 0, len(users))
	for _, u := range users {
		out = append(out, OperatorResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)})
	}
	return out
}
