package request

import (
	"errors"
	"strings"
	"time"

	"brcargo_cotacoes/internal/domain/entities"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidStatusFilter = errors.New("invalid status filter")
	ErrInvalidModeFilter   = errors.New("invalid mode filter")
	ErrInvalidDateFilter   = errors.New("invalid date filter, expected YYYY-MM-DD")
)

// ListQuotesQuery is bound from the query string of GET /quotes.
type ListQuotesQuery struct {
	Status          string `form:"status"`
	Mode            string `form:"mode"`
	ClientName      string `form:"client_name"`
	ClientTaxID     string `form:"client_tax_id"`
	OriginCity      string `form:"origin_city"`
	DestinationCity string `form:"destination_city"`
	RequestedFrom   string `form:"requested_from"`
	RequestedTo     string `form:"requested_to"`
	ConsultantID    string `form:"consultant_id"`
	OperatorID      string `form:"operator_id"`
	Page            int    `form:"page"`
	PageSize        int    `form:"page_size"`
}

// ToFilter converts the query. Dates are calendar days in loc and the range
// includes both ends.
func (q ListQuotesQuery) ToFilter(loc *time.Location) (entities.QuoteFilter, entities.Page, error) {
	f := entities.QuoteFilter{
		ClientName:      strings.TrimSpace(q.ClientName),
		ClientTaxID:     strings.TrimSpace(q.ClientTaxID),
		OriginCity:      strings.TrimSpace(q.OriginCity),
		DestinationCity: strings.TrimSpace(q.DestinationCity),
		ConsultantID:    strings.TrimSpace(q.ConsultantID),
		OperatorID:      strings.TrimSpace(q.OperatorID),
	}

	if strings.TrimSpace(q.Status) != "" {
		s, ok := entities.ParseQuoteStatus(q.Status)
		if !ok {
			return entities.QuoteFilter{}, entities.Page{}, ErrInvalidStatusFilter
		}
		f.Status = s
	}
	if strings.TrimSpace(q.Mode) != "" {
		m, ok := entities.ParseTransportMode(q.Mode)
		if !ok {
			return entities.QuoteFilter{}, entities.Page{}, ErrInvalidModeFilter
		}
		f.Mode = m
	}

	if loc == nil {
		loc = time.UTC
	}
	from, err := parseDay(q.RequestedFrom, loc)
	if err != nil {
		return entities.QuoteFilter{}, entities.Page{}, err
	}
	to, err := parseDay(q.RequestedTo, loc)
	if err != nil {
		return entities.QuoteFilter{}, entities.Page{}, err
	}
	f.RequestedFrom, f.RequestedBefore = entities.DayRange(from, to, loc)

	return f, entities.NewPage(q.Page, q.PageSize), nil
}

func parseDay(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFilter
	}
	return t, nil
}

type InboxQuery struct {
	UnreadOnly bool `form:"unread_only"`
	Limit      int  `form:"limit" binding:"gte=0"`
}
