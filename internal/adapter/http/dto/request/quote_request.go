package request

import (
	"strings"
	"time"

	"brcargo_cotacoes/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type ClientRequest struct {
	Name   string `json:"name" binding:"required"`
	TaxID  string `json:"tax_id" binding:"required,cnpj"`
	Phone  string `json:"phone"`
	Email  string `json:"email" binding:"omitempty,email"`
	Number string `json:"number"`
}

type LocationRequest struct {
	Kind       string `json:"kind" binding:"omitempty,oneof=endereco porto aeroporto"`
	PostalCode string `json:"postal_code" binding:"cep"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state" binding:"omitempty,len=2"`
	Port       string `json:"port"`
	Airport    string `json:"airport"`
}

type CargoRequest struct {
	Description   string          `json:"description"`
	WeightKg      decimal.Decimal `json:"weight_kg"`
	LengthCm      decimal.Decimal `json:"length_cm"`
	WidthCm       decimal.Decimal `json:"width_cm"`
	HeightCm      decimal.Decimal `json:"height_cm"`
	DeclaredValue decimal.Decimal `json:"declared_value"`
	PackagingType string          `json:"packaging_type"`
	CubicVolume   decimal.Decimal `json:"cubic_volume"`
}

type ServiceRequest struct {
	DesiredLeadTimeDays   int        `json:"desired_lead_time_days" binding:"gte=0"`
	ServiceType           string     `json:"service_type"`
	Observations          string     `json:"observations"`
	PreferredPickupDate   *time.Time `json:"preferred_pickup_date"`
	HandlingInstructions  string     `json:"handling_instructions"`
	AdditionalInsurance   bool       `json:"additional_insurance"`
	ComplementaryServices string     `json:"complementary_services"`
}

type MaritimeRequest struct {
	NetWeightKg       decimal.Decimal `json:"net_weight_kg"`
	GrossWeightKg     decimal.Decimal `json:"gross_weight_kg"`
	Incoterm          string          `json:"incoterm"`
	CargoType         string          `json:"cargo_type"`
	ContainerSize     string          `json:"container_size"`
	ContainerQuantity int             `json:"container_quantity" binding:"gte=0"`
	OriginPort        string          `json:"origin_port"`
	DestinationPort   string          `json:"destination_port"`
}

type AirRequest struct {
	OriginAirport      string `json:"origin_airport"`
	DestinationAirport string `json:"destination_airport"`
	ServiceType        string `json:"service_type"`
}

// CreateQuoteRequest carries the shipment data. Mode-specific rules (which
// fields are mandatory for each transport mode) are enforced by the domain.
type CreateQuoteRequest struct {
	Mode        string           `json:"mode" binding:"required"`
	Client      ClientRequest    `json:"client"`
	Origin      LocationRequest  `json:"origin"`
	Destination LocationRequest  `json:"destination"`
	Cargo       CargoRequest     `json:"cargo"`
	Service     ServiceRequest   `json:"service"`
	Maritime    *MaritimeRequest `json:"maritime"`
	Air         *AirRequest      `json:"air"`
}

func (r CreateQuoteRequest) ToDraft() entities.QuoteDraft {
	mode, ok := entities.ParseTransportMode(r.Mode)
	if !ok {
		mode = entities.TransportMode(strings.TrimSpace(r.Mode))
	}

	d := entities.QuoteDraft{
		Mode: mode,
		Client: entities.Client{
			Name:   r.Client.Name,
			TaxID:  r.Client.TaxID,
			Phone:  r.Client.Phone,
			Email:  r.Client.Email,
			Number: r.Client.Number,
		},
		Origin:      r.Origin.toLocation(),
		Destination: r.Destination.toLocation(),
		Cargo: entities.Cargo{
			Description:   r.Cargo.Description,
			WeightKg:      r.Cargo.WeightKg,
			LengthCm:      r.Cargo.LengthCm,
			WidthCm:       r.Cargo.WidthCm,
			HeightCm:      r.Cargo.HeightCm,
			DeclaredValue: r.Cargo.DeclaredValue,
			PackagingType: r.Cargo.PackagingType,
			CubicVolume:   r.Cargo.CubicVolume,
		},
		Service: entities.ServiceRequest{
			DesiredLeadTimeDays:   r.Service.DesiredLeadTimeDays,
			ServiceType:           r.Service.ServiceType,
			Observations:          r.Service.Observations,
			PreferredPickupDate:   r.Service.PreferredPickupDate,
			HandlingInstructions:  r.Service.HandlingInstructions,
			AdditionalInsurance:   r.Service.AdditionalInsurance,
			ComplementaryServices: r.Service.ComplementaryServices,
		},
	}
	if m := r.Maritime; m != nil {
		d.Maritime = &entities.MaritimeDetails{
			NetWeightKg:       m.NetWeightKg,
			GrossWeightKg:     m.GrossWeightKg,
			Incoterm:          m.Incoterm,
			CargoType:         m.CargoType,
			ContainerSize:     m.ContainerSize,
			ContainerQuantity: m.ContainerQuantity,
			OriginPort:        m.OriginPort,
			DestinationPort:   m.DestinationPort,
		}
	}
	if a := r.Air; a != nil {
		d.Air = &entities.AirDetails{
			OriginAirport:      a.OriginAirport,
			DestinationAirport: a.DestinationAirport,
			ServiceType:        a.ServiceType,
		}
	}
	return d
}

func (l LocationRequest) toLocation() entities.Location {
	return entities.Location{
		Kind:       entities.LocationKind(l.Kind),
		PostalCode: l.PostalCode,
		Address:    l.Address,
		City:       l.City,
		State:      strings.ToUpper(l.State),
		Port:       l.Port,
		Airport:    l.Airport,
	}
}

// AcceptQuoteRequest lets a supervisor accept on behalf of an operator by
// naming OperatorID. Operators leave it empty.
type AcceptQuoteRequest struct {
	OperatorID string `json:"operator_id"`
	Note       string `json:"note"`
}

type NoteRequest struct {
	Note string `json:"note"`
}

type SendQuoteRequest struct {
	FreightValue      decimal.Decimal `json:"freight_value"`
	LeadTimeDays      int             `json:"lead_time_days"`
	Notes             string          `json:"notes"`
	ProviderCompanyID string          `json:"provider_company_id"`
}

func (r SendQuoteRequest) ToResponse() entities.QuoteResponse {
	return entities.QuoteResponse{
		FreightValue: r.FreightValue,
		LeadTimeDays: r.LeadTimeDays,
		Notes:        strings.TrimSpace(r.Notes),
	}
}

type DecisionRequest struct {
	Approved *bool  `json:"approved" binding:"required"`
	Note     string `json:"note"`
}

type ReassignRequest struct {
	OperatorID string `json:"operator_id" binding:"required"`
}
