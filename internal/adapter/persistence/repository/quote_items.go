package repository

import (
	"time"

	"brcargo_cotacoes/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// quoteItem is the DynamoDB shape of a quote. Decimals are stored as strings
// to keep their exact representation; nullable instants are empty strings.
type quoteItem struct {
	ID                string `dynamodbav:"id"`
	Number            string `dynamodbav:"number"`
	ConsultantID      string `dynamodbav:"consultant_id"`
	OperatorID        string `dynamodbav:"operator_id,omitempty"`
	ProviderCompanyID string `dynamodbav:"provider_company_id,omitempty"`
	Mode              string `dynamodbav:"mode"`
	Status            string `dynamodbav:"status"`

	Client      clientItem    `dynamodbav:"client"`
	Origin      locationItem  `dynamodbav:"origin"`
	Destination locationItem  `dynamodbav:"destination"`
	Cargo       cargoItem     `dynamodbav:"cargo"`
	Service     serviceItem   `dynamodbav:"service"`
	Maritime    *maritimeItem `dynamodbav:"maritime,omitempty"`
	Air         *airItem      `dynamodbav:"air,omitempty"`
	Response    *responseItem `dynamodbav:"response,omitempty"`

	RequestedAt         string `dynamodbav:"requested_at"`
	OperatorAcceptedAt  string `dynamodbav:"operator_accepted_at,omitempty"`
	QuotedAt            string `dynamodbav:"quoted_at,omitempty"`
	CustomerRespondedAt string `dynamodbav:"customer_responded_at,omitempty"`
	FinalizedAt         string `dynamodbav:"finalized_at,omitempty"`
	CreatedAt           string `dynamodbav:"created_at"`
	UpdatedAt           string `dynamodbav:"updated_at"`
	Version             int64  `dynamodbav:"version"`
}

type clientItem struct {
	Name   string `dynamodbav:"name"`
	TaxID  string `dynamodbav:"tax_id"`
	Phone  string `dynamodbav:"phone,omitempty"`
	Email  string `dynamodbav:"email,omitempty"`
	Number string `dynamodbav:"number"`
}

type locationItem struct {
	Kind       string `dynamodbav:"kind"`
	PostalCode string `dynamodbav:"postal_code,omitempty"`
	Address    string `dynamodbav:"address,omitempty"`
	City       string `dynamodbav:"city,omitempty"`
	State      string `dynamodbav:"state,omitempty"`
	Port       string `dynamodbav:"port,omitempty"`
	Airport    string `dynamodbav:"airport,omitempty"`
}

type cargoItem struct {
	Description   string `dynamodbav:"description"`
	WeightKg      string `dynamodbav:"weight_kg"`
	LengthCm      string `dynamodbav:"length_cm,omitempty"`
	WidthCm       string `dynamodbav:"width_cm,omitempty"`
	HeightCm      string `dynamodbav:"height_cm,omitempty"`
	DeclaredValue string `dynamodbav:"declared_value"`
	PackagingType string `dynamodbav:"packaging_type,omitempty"`
	CubicVolume   string `dynamodbav:"cubic_volume,omitempty"`
}

type serviceItem struct {
	DesiredLeadTimeDays   int    `dynamodbav:"desired_lead_time_days,omitempty"`
	ServiceType           string `dynamodbav:"service_type,omitempty"`
	Observations          string `dynamodbav:"observations,omitempty"`
	PreferredPickupDate   string `dynamodbav:"preferred_pickup_date,omitempty"`
	HandlingInstructions  string `dynamodbav:"handling_instructions,omitempty"`
	AdditionalInsurance   bool   `dynamodbav:"additional_insurance"`
	ComplementaryServices string `dynamodbav:"complementary_services,omitempty"`
}

type maritimeItem struct {
	NetWeightKg       string `dynamodbav:"net_weight_kg"`
	GrossWeightKg     string `dynamodbav:"gross_weight_kg"`
	Incoterm          string `dynamodbav:"incoterm"`
	CargoType         string `dynamodbav:"cargo_type"`
	ContainerSize     string `dynamodbav:"container_size,omitempty"`
	ContainerQuantity int    `dynamodbav:"container_quantity,omitempty"`
	OriginPort        string `dynamodbav:"origin_port"`
	DestinationPort   string `dynamodbav:"destination_port"`
}

type airItem struct {
	OriginAirport      string `dynamodbav:"origin_airport"`
	DestinationAirport string `dynamodbav:"destination_airport"`
	ServiceType        string `dynamodbav:"service_type"`
}

type responseItem struct {
	FreightValue string `dynamodbav:"freight_value"`
	LeadTimeDays int    `dynamodbav:"lead_time_days"`
	Notes        string `dynamodbav:"notes,omitempty"`
}

type historyItem struct {
	ID             string `dynamodbav:"id"`
	QuoteID        string `dynamodbav:"quote_id"`
	ActorID        string `dynamodbav:"actor_id"`
	PreviousStatus string `dynamodbav:"previous_status,omitempty"`
	NewStatus      string `dynamodbav:"new_status"`
	Note           string `dynamodbav:"note,omitempty"`
	Timestamp      string `dynamodbav:"timestamp"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func parseTimePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := parseTime(s)
	return &t
}

// formatDecimal leaves "not informed" measures out of the item.
func formatDecimal(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func toQuoteItem(q entities.Quote) quoteItem {
	it := quoteItem{
		ID:                q.ID,
		Number:            q.Number,
		ConsultantID:      q.ConsultantID,
		OperatorID:        q.OperatorID,
		ProviderCompanyID: q.ProviderCompanyID,
		Mode:              string(q.Mode),
		Status:            string(q.Status),
		Client: clientItem{
			Name:   q.Client.Name,
			TaxID:  q.Client.TaxID,
			Phone:  q.Client.Phone,
			Email:  q.Client.Email,
			Number: q.Client.Number,
		},
		Origin:      toLocationItem(q.Origin),
		Destination: toLocationItem(q.Destination),
		Cargo: cargoItem{
			Description:   q.Cargo.Description,
			WeightKg:      q.Cargo.WeightKg.String(),
			LengthCm:      formatDecimal(q.Cargo.LengthCm),
			WidthCm:       formatDecimal(q.Cargo.WidthCm),
			HeightCm:      formatDecimal(q.Cargo.HeightCm),
			DeclaredValue: q.Cargo.DeclaredValue.String(),
			PackagingType: q.Cargo.PackagingType,
			CubicVolume:   formatDecimal(q.Cargo.CubicVolume),
		},
		Service: serviceItem{
			DesiredLeadTimeDays:   q.Service.DesiredLeadTimeDays,
			ServiceType:           q.Service.ServiceType,
			Observations:          q.Service.Observations,
			PreferredPickupDate:   formatTimePtr(q.Service.PreferredPickupDate),
			HandlingInstructions:  q.Service.HandlingInstructions,
			AdditionalInsurance:   q.Service.AdditionalInsurance,
			ComplementaryServices: q.Service.ComplementaryServices,
		},
		RequestedAt:         formatTime(q.RequestedAt),
		OperatorAcceptedAt:  formatTimePtr(q.OperatorAcceptedAt),
		QuotedAt:            formatTimePtr(q.QuotedAt),
		CustomerRespondedAt: formatTimePtr(q.CustomerRespondedAt),
		FinalizedAt:         formatTimePtr(q.FinalizedAt),
		CreatedAt:           formatTime(q.CreatedAt),
		UpdatedAt:           formatTime(q.UpdatedAt),
		Version:             q.Version,
	}
	if m := q.Maritime; m != nil {
		it.Maritime = &maritimeItem{
			NetWeightKg:       m.NetWeightKg.String(),
			GrossWeightKg:     m.GrossWeightKg.String(),
			Incoterm:          m.Incoterm,
			CargoType:         m.CargoType,
			ContainerSize:     m.ContainerSize,
			ContainerQuantity: m.ContainerQuantity,
			OriginPort:        m.OriginPort,
			DestinationPort:   m.DestinationPort,
		}
	}
	if a := q.Air; a != nil {
		it.Air = &airItem{
			OriginAirport:      a.OriginAirport,
			DestinationAirport: a.DestinationAirport,
			ServiceType:        a.ServiceType,
		}
	}
	if r := q.Response; r != nil {
		it.Response = &responseItem{
			FreightValue: r.FreightValue.String(),
			LeadTimeDays: r.LeadTimeDays,
			Notes:        r.Notes,
		}
	}
	return it
}

func toLocationItem(l entities.Location) locationItem {
	return locationItem{
		Kind:       string(l.Kind),
		PostalCode: l.PostalCode,
		Address:    l.Address,
		City:       l.City,
		State:      l.State,
		Port:       l.Port,
		Airport:    l.Airport,
	}
}

func fromLocationItem(it locationItem) entities.Location {
	return entities.Location{
		Kind:       entities.LocationKind(it.Kind),
		PostalCode: it.PostalCode,
		Address:    it.Address,
		City:       it.City,
		State:      it.State,
		Port:       it.Port,
		Airport:    it.Airport,
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	q := entities.Quote{
		ID:                it.ID,
		Number:            it.Number,
		ConsultantID:      it.ConsultantID,
		OperatorID:        it.OperatorID,
		ProviderCompanyID: it.ProviderCompanyID,
		Mode:              entities.TransportMode(it.Mode),
		Status:            entities.StatusFromStore(it.Status),
		Client: entities.Client{
			Name:   it.Client.Name,
			TaxID:  it.Client.TaxID,
			Phone:  it.Client.Phone,
			Email:  it.Client.Email,
			Number: it.Client.Number,
		},
		Origin:      fromLocationItem(it.Origin),
		Destination: fromLocationItem(it.Destination),
		Cargo: entities.Cargo{
			Description:   it.Cargo.Description,
			WeightKg:      parseDecimal(it.Cargo.WeightKg),
			LengthCm:      parseDecimal(it.Cargo.LengthCm),
			WidthCm:       parseDecimal(it.Cargo.WidthCm),
			HeightCm:      parseDecimal(it.Cargo.HeightCm),
			DeclaredValue: parseDecimal(it.Cargo.DeclaredValue),
			PackagingType: it.Cargo.PackagingType,
			CubicVolume:   parseDecimal(it.Cargo.CubicVolume),
		},
		Service: entities.ServiceRequest{
			DesiredLeadTimeDays:   it.Service.DesiredLeadTimeDays,
			ServiceType:           it.Service.ServiceType,
			Observations:          it.Service.Observations,
			PreferredPickupDate:   parseTimePtr(it.Service.PreferredPickupDate),
			HandlingInstructions:  it.Service.HandlingInstructions,
			AdditionalInsurance:   it.Service.AdditionalInsurance,
			ComplementaryServices: it.Service.ComplementaryServices,
		},
		RequestedAt:         parseTime(it.RequestedAt),
		OperatorAcceptedAt:  parseTimePtr(it.OperatorAcceptedAt),
		QuotedAt:            parseTimePtr(it.QuotedAt),
		CustomerRespondedAt: parseTimePtr(it.CustomerRespondedAt),
		FinalizedAt:         parseTimePtr(it.FinalizedAt),
		CreatedAt:           parseTime(it.CreatedAt),
		UpdatedAt:           parseTime(it.UpdatedAt),
		Version:             it.Version,
	}
	if m := it.Maritime; m != nil {
		q.Maritime = &entities.MaritimeDetails{
			NetWeightKg:       parseDecimal(m.NetWeightKg),
			GrossWeightKg:     parseDecimal(m.GrossWeightKg),
			Incoterm:          m.Incoterm,
			CargoType:         m.CargoType,
			ContainerSize:     m.ContainerSize,
			ContainerQuantity: m.ContainerQuantity,
			OriginPort:        m.OriginPort,
			DestinationPort:   m.DestinationPort,
		}
	}
	if a := it.Air; a != nil {
		q.Air = &entities.AirDetails{
			OriginAirport:      a.OriginAirport,
			DestinationAirport: a.DestinationAirport,
			ServiceType:        a.ServiceType,
		}
	}
	if r := it.Response; r != nil {
		q.Response = &entities.QuoteResponse{
			FreightValue: parseDecimal(r.FreightValue),
			LeadTimeDays: r.LeadTimeDays,
			Notes:        r.Notes,
		}
	}
	return q
}

func toHistoryItem(e entities.HistoryEntry) historyItem {
	it := historyItem{
		ID:        e.ID,
		QuoteID:   e.QuoteID,
		ActorID:   e.ActorID,
		NewStatus: string(e.NewStatus),
		Note:      e.Note,
		Timestamp: formatTime(e.Timestamp),
	}
	if e.PreviousStatus != nil {
		it.PreviousStatus = string(*e.PreviousStatus)
	}
	return it
}

func fromHistoryItem(it historyItem) entities.HistoryEntry {
	return entities.HistoryEntry{
		ID:             it.ID,
		QuoteID:        it.QuoteID,
		ActorID:        it.ActorID,
		PreviousStatus: entities.PreviousStatusFromStore(it.PreviousStatus),
		NewStatus:      entities.StatusFromStore(it.NewStatus),
		Note:           it.Note,
		Timestamp:      parseTime(it.Timestamp),
	}
}
