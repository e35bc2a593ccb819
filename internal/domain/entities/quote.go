package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus is the lifecycle state of a freight quote (cotação).
//
// Solicitada -> Aceita pelo Operador -> Cotação Enviada ->
// {Aceita pelo Consultor | Negada pelo Consultor} -> Finalizada.
type QuoteStatus string

const (
	QuoteStatusSolicitada      QuoteStatus = "solicitada"
	QuoteStatusAceitaOperador  QuoteStatus = "aceita_operador"
	QuoteStatusCotacaoEnviada  QuoteStatus = "cotacao_enviada"
	QuoteStatusAceitaConsultor QuoteStatus = "aceita_consultor"
	QuoteStatusNegadaConsultor QuoteStatus = "negada_consultor"
	QuoteStatusFinalizada      QuoteStatus = "finalizada"
)

// AllQuoteStatuses lists every status in lifecycle order.
var AllQuoteStatuses = []QuoteStatus{
	QuoteStatusSolicitada,
	QuoteStatusAceitaOperador,
	QuoteStatusCotacaoEnviada,
	QuoteStatusAceitaConsultor,
	QuoteStatusNegadaConsultor,
	QuoteStatusFinalizada,
}

var quoteStatusDisplay = map[QuoteStatus]string{
	QuoteStatusSolicitada:      "Solicitada",
	QuoteStatusAceitaOperador:  "Aceita pelo Operador",
	QuoteStatusCotacaoEnviada:  "Cotação Enviada",
	QuoteStatusAceitaConsultor: "Aceita pelo Consultor",
	QuoteStatusNegadaConsultor: "Negada pelo Consultor",
	QuoteStatusFinalizada:      "Finalizada",
}

func (s QuoteStatus) IsValid() bool {
	_, ok := quoteStatusDisplay[s]
	return ok
}

func (s QuoteStatus) DisplayName() string {
	if name, ok := quoteStatusDisplay[s]; ok {
		return name
	}
	return string(s)
}

var legacyTextReplacer = strings.NewReplacer(
	"ç", "c", "ã", "a", "á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
	" ", "_", "-", "_",
)

func normalizeLegacyText(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	// Enum reprs such as "StatusCotacao.SOLICITADA".
	if i := strings.LastIndex(s, "."); i >= 0 {
		s = s[i+1:]
	}
	return legacyTextReplacer.Replace(s)
}

// ParseQuoteStatus reads a status that may have been persisted in a legacy
// form: the enum name ("SOLICITADA"), the display name ("Aceita pelo
// Operador") or an enum repr ("StatusCotacao.FINALIZADA").
func ParseQuoteStatus(raw string) (QuoteStatus, bool) {
	norm := normalizeLegacyText(raw)
	if norm == "" {
		return "", false
	}
	if s := QuoteStatus(norm); s.IsValid() {
		return s, true
	}
	for status, display := range quoteStatusDisplay {
		if normalizeLegacyText(display) == norm {
			return status, true
		}
	}
	return "", false
}

// StoredForms lists every spelling ParseQuoteStatus folds into s, for
// stores that can only compare by equality.
func (s QuoteStatus) StoredForms() []string {
	upper := strings.ToUpper(string(s))
	forms := []string{string(s), upper, "StatusCotacao." + upper}
	if display, ok := quoteStatusDisplay[s]; ok {
		forms = append(forms, display)
	}
	return forms
}

// TransportMode is fixed at creation and decides which shipment fields are
// mandatory.
type TransportMode string

const (
	TransportModeRodoviario TransportMode = "rodoviario"
	TransportModeMaritimo   TransportMode = "maritimo"
	TransportModeAereo      TransportMode = "aereo"
)

var AllTransportModes = []TransportMode{
	TransportModeRodoviario,
	TransportModeMaritimo,
	TransportModeAereo,
}

func (m TransportMode) IsValid() bool {
	switch m {
	case TransportModeRodoviario, TransportModeMaritimo, TransportModeAereo:
		return true
	}
	return false
}

func (m TransportMode) DisplayName() string {
	switch m {
	case TransportModeRodoviario:
		return "BRCargo Rodoviário"
	case TransportModeMaritimo:
		return "BRCargo Marítimo"
	case TransportModeAereo:
		return "Frete Aéreo"
	}
	return string(m)
}

// ParseTransportMode accepts the canonical value and the company-style
// names used by older clients (brcargo_rodoviario, frete_aereo, ...).
func ParseTransportMode(raw string) (TransportMode, bool) {
	switch normalizeLegacyText(raw) {
	case "rodoviario", "brcargo_rodoviario", "road":
		return TransportModeRodoviario, true
	case "maritimo", "brcargo_maritimo", "maritime", "sea":
		return TransportModeMaritimo, true
	case "aereo", "frete_aereo", "air":
		return TransportModeAereo, true
	}
	return "", false
}

// LocationKind tells how an origin or destination is identified.
type LocationKind string

const (
	LocationKindEndereco  LocationKind = "endereco"
	LocationKindPorto     LocationKind = "porto"
	LocationKindAeroporto LocationKind = "aeroporto"
)

// PortPostalCode is stored as the postal code of port origins.
const PortPostalCode = "00000000"

type Location struct {
	Kind       LocationKind `json:"kind"`
	PostalCode string       `json:"postal_code,omitempty"`
	Address    string       `json:"address,omitempty"`
	City       string       `json:"city,omitempty"`
	State      string       `json:"state,omitempty"`
	Port       string       `json:"port,omitempty"`
	Airport    string       `json:"airport,omitempty"`
}

type Client struct {
	Name   string `json:"name"`
	TaxID  string `json:"tax_id"` // CNPJ, digits only
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty"`
	Number string `json:"number"`
}

// Cargo uses zero to mean "not informed" for the optional measures.
type Cargo struct {
	Description   string          `json:"description"`
	WeightKg      decimal.Decimal `json:"weight_kg"`
	LengthCm      decimal.Decimal `json:"length_cm"`
	WidthCm       decimal.Decimal `json:"width_cm"`
	HeightCm      decimal.Decimal `json:"height_cm"`
	DeclaredValue decimal.Decimal `json:"declared_value"`
	PackagingType string          `json:"packaging_type,omitempty"`
	CubicVolume   decimal.Decimal `json:"cubic_volume"`
}

type ServiceRequest struct {
	DesiredLeadTimeDays   int        `json:"desired_lead_time_days,omitempty"`
	ServiceType           string     `json:"service_type,omitempty"`
	Observations          string     `json:"observations,omitempty"`
	PreferredPickupDate   *time.Time `json:"preferred_pickup_date,omitempty"`
	HandlingInstructions  string     `json:"handling_instructions,omitempty"`
	AdditionalInsurance   bool       `json:"additional_insurance"`
	ComplementaryServices string     `json:"complementary_services,omitempty"`
}

type MaritimeDetails struct {
	NetWeightKg       decimal.Decimal `json:"net_weight_kg"`
	GrossWeightKg     decimal.Decimal `json:"gross_weight_kg"`
	Incoterm          string          `json:"incoterm"`
	CargoType         string          `json:"cargo_type"` // FCL, LCL
	ContainerSize     string          `json:"container_size,omitempty"`
	ContainerQuantity int             `json:"container_quantity,omitempty"`
	OriginPort        string          `json:"origin_port"`
	DestinationPort   string          `json:"destination_port"`
}

type AirDetails struct {
	OriginAirport      string `json:"origin_airport"`
	DestinationAirport string `json:"destination_airport"`
	ServiceType        string `json:"service_type"`
}

// QuoteResponse is what the operator sends back to the consultant.
type QuoteResponse struct {
	FreightValue decimal.Decimal `json:"freight_value"`
	LeadTimeDays int             `json:"lead_time_days"`
	Notes        string          `json:"notes,omitempty"`
}

func (r QuoteResponse) Validate() error {
	if !r.FreightValue.IsPositive() {
		return NewValidationError("freight_value", "must be greater than zero")
	}
	if r.LeadTimeDays <= 0 {
		return NewValidationError("lead_time_days", "must be greater than zero")
	}
	return nil
}

// QuoteDraft is the shipment data a consultant submits. It becomes a Quote
// once validated, composed and numbered.
type QuoteDraft struct {
	Mode        TransportMode
	Client      Client
	Origin      Location
	Destination Location
	Cargo       Cargo
	Service     ServiceRequest
	Maritime    *MaritimeDetails
	Air         *AirDetails
}

// Quote is the aggregate root of the freight workflow.
//
// Status and the lifecycle stamps change only through the transition methods
// in quote_transitions.go. OperatorID is empty until an operator accepts.
type Quote struct {
	ID                string        `json:"id"`
	Number            string        `json:"number"`
	ConsultantID      string        `json:"consultant_id"`
	OperatorID        string        `json:"operator_id,omitempty"`
	ProviderCompanyID string        `json:"provider_company_id,omitempty"`
	Mode              TransportMode `json:"mode"`
	Status            QuoteStatus   `json:"status"`

	Client      Client           `json:"client"`
	Origin      Location         `json:"origin"`
	Destination Location         `json:"destination"`
	Cargo       Cargo            `json:"cargo"`
	Service     ServiceRequest   `json:"service"`
	Maritime    *MaritimeDetails `json:"maritime,omitempty"`
	Air         *AirDetails      `json:"air,omitempty"`
	Response    *QuoteResponse   `json:"response,omitempty"`

	RequestedAt         time.Time  `json:"requested_at"`
	OperatorAcceptedAt  *time.Time `json:"operator_accepted_at,omitempty"`
	QuotedAt            *time.Time `json:"quoted_at,omitempty"`
	CustomerRespondedAt *time.Time `json:"customer_responded_at,omitempty"`
	FinalizedAt         *time.Time `json:"finalized_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"version"`
}

// NewQuote opens a quote in Solicitada from an already validated draft.
func NewQuote(id, number, consultantID string, d QuoteDraft, now time.Time) Quote {
	return Quote{
		ID:           id,
		Number:       number,
		ConsultantID: consultantID,
		Mode:         d.Mode,
		Status:       QuoteStatusSolicitada,
		Client:       d.Client,
		Origin:       d.Origin,
		Destination:  d.Destination,
		Cargo:        d.Cargo,
		Service:      d.Service,
		Maritime:     d.Maritime,
		Air:          d.Air,
		RequestedAt:  now,
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
	}
}

var volumetricDivisor = decimal.NewFromInt(6000)

// EffectiveCubicVolume returns the informed cubic volume, falling back to
// length*width*height/6000 when every dimension is present. Never persisted.
func (q Quote) EffectiveCubicVolume() decimal.Decimal {
	if q.Cargo.CubicVolume.IsPositive() {
		return q.Cargo.CubicVolume
	}
	c := q.Cargo
	if !c.LengthCm.IsPositive() || !c.WidthCm.IsPositive() || !c.HeightCm.IsPositive() {
		return decimal.Zero
	}
	return c.LengthCm.Mul(c.WidthCm).Mul(c.HeightCm).Div(volumetricDivisor).Round(4)
}

// IsAssignedTo reports whether userID is the operator currently holding the
// quote.
func (q Quote) IsAssignedTo(userID string) bool {
	return q.OperatorID != "" && q.OperatorID == userID
}

// latestStamp is the newest lifecycle instant recorded so far.
func (q Quote) latestStamp() time.Time {
	latest := q.RequestedAt
	for _, ts := range []*time.Time{q.OperatorAcceptedAt, q.QuotedAt, q.CustomerRespondedAt, q.FinalizedAt} {
		if ts != nil && ts.After(latest) {
			latest = *ts
		}
	}
	return latest
}
