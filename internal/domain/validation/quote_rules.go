// Package validation holds the preconditions a quote draft must meet before
// it is persisted. Each transport mode has exactly one rule function, which
// both checks the mode's required fields and composes the mode-dependent
// locations.
package validation

import (
	"strings"

	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/pkg/docnum"

	"github.com/shopspring/decimal"
)

// portOriginState is recorded as the state of port origins.
const portOriginState = "SP"

type modeRule func(d *entities.QuoteDraft) error

var modeRules = map[entities.TransportMode]modeRule{
	entities.TransportModeRodoviario: prepareRoad,
	entities.TransportModeMaritimo:   prepareMaritime,
	entities.TransportModeAereo:      prepareAir,
}

// PrepareDraft validates d for its transport mode and returns the normalized
// draft ready to become a quote. The first failing field is reported as an
// *entities.ValidationError.
func PrepareDraft(d entities.QuoteDraft) (entities.QuoteDraft, error) {
	rule, ok := modeRules[d.Mode]
	if !ok {
		return entities.QuoteDraft{}, entities.NewValidationError("mode", "unknown transport mode")
	}
	if err := prepareClient(&d.Client); err != nil {
		return entities.QuoteDraft{}, err
	}
	if err := prepareService(&d.Service); err != nil {
		return entities.QuoteDraft{}, err
	}
	if err := rule(&d); err != nil {
		return entities.QuoteDraft{}, err
	}
	return d, nil
}

// RequiredFields lists the fields a mode demands, for documentation and
// client-side forms. Road origins identified by port swap the origin address
// block for origin.port.
func RequiredFields(mode entities.TransportMode) []string {
	basic := []string{"client.name", "client.tax_id", "client.number"}
	switch mode {
	case entities.TransportModeRodoviario:
		return append(basic,
			"origin.postal_code", "origin.address", "origin.city", "origin.state",
			"destination.postal_code", "destination.address", "destination.city", "destination.state",
			"cargo.description", "cargo.weight_kg", "cargo.declared_value", "cargo.cubic_volume")
	case entities.TransportModeMaritimo:
		return append(basic,
			"maritime.origin_port", "maritime.destination_port", "maritime.net_weight_kg", "maritime.gross_weight_kg",
			"cargo.cubic_volume", "maritime.incoterm", "maritime.cargo_type", "cargo.declared_value")
	case entities.TransportModeAereo:
		return append(basic,
			"air.origin_airport", "air.destination_airport", "air.service_type",
			"cargo.description", "cargo.weight_kg", "cargo.declared_value", "cargo.cubic_volume")
	}
	return basic
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return entities.NewValidationError(field, "required field")
	}
	return nil
}

func positive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return entities.NewValidationError(field, "must be a positive number")
	}
	return nil
}

func nonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return entities.NewValidationError(field, "must not be negative")
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func prepareClient(c *entities.Client) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Number = strings.TrimSpace(c.Number)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	if err := firstError(
		required("client.name", c.Name),
		required("client.tax_id", c.TaxID),
		required("client.number", c.Number),
	); err != nil {
		return err
	}
	if !docnum.IsCNPJ(c.TaxID) {
		return entities.NewValidationError("client.tax_id", "invalid CNPJ")
	}
	c.TaxID = docnum.OnlyDigits(c.TaxID)
	return nil
}

func prepareService(s *entities.ServiceRequest) error {
	if s.DesiredLeadTimeDays < 0 {
		return entities.NewValidationError("service.desired_lead_time_days", "must not be negative")
	}
	return nil
}

// prepareAddress checks a street address block with a mandatory CEP.
func prepareAddress(prefix string, l *entities.Location) error {
	if err := firstError(
		required(prefix+".postal_code", l.PostalCode),
		required(prefix+".address", l.Address),
		required(prefix+".city", l.City),
		required(prefix+".state", l.State),
	); err != nil {
		return err
	}
	if !docnum.IsCEP(l.PostalCode) {
		return entities.NewValidationError(prefix+".postal_code", "invalid CEP")
	}
	l.Kind = entities.LocationKindEndereco
	l.PostalCode = docnum.OnlyDigits(l.PostalCode)
	l.Address = strings.TrimSpace(l.Address)
	l.City = strings.TrimSpace(l.City)
	l.State = strings.ToUpper(strings.TrimSpace(l.State))
	return nil
}

// portLocation composes the location stored for a port: the port name as
// city, "Porto: <name>" as address and the placeholder CEP.
func portLocation(port string) entities.Location {
	port = strings.TrimSpace(port)
	return entities.Location{
		Kind:       entities.LocationKindPorto,
		PostalCode: entities.PortPostalCode,
		Address:    "Porto: " + port,
		City:       port,
		State:      portOriginState,
		Port:       port,
	}
}

func prepareCargo(c *entities.Cargo, requireDescription bool) error {
	c.Description = strings.TrimSpace(c.Description)
	if requireDescription {
		if err := required("cargo.description", c.Description); err != nil {
			return err
		}
	}
	return firstError(
		positive("cargo.weight_kg", c.WeightKg),
		positive("cargo.declared_value", c.DeclaredValue),
		positive("cargo.cubic_volume", c.CubicVolume),
		nonNegative("cargo.length_cm", c.LengthCm),
		nonNegative("cargo.width_cm", c.WidthCm),
		nonNegative("cargo.height_cm", c.HeightCm),
	)
}

func prepareRoad(d *entities.QuoteDraft) error {
	if d.Origin.Kind == entities.LocationKindPorto {
		if err := required("origin.port", d.Origin.Port); err != nil {
			return err
		}
		d.Origin = portLocation(d.Origin.Port)
	} else if err := prepareAddress("origin", &d.Origin); err != nil {
		return err
	}
	if err := prepareAddress("destination", &d.Destination); err != nil {
		return err
	}
	if err := prepareCargo(&d.Cargo, true); err != nil {
		return err
	}
	d.Maritime = nil
	d.Air = nil
	return nil
}

func prepareMaritime(d *entities.QuoteDraft) error {
	if d.Maritime == nil {
		return entities.NewValidationError("maritime", "required for maritime quotes")
	}
	m := *d.Maritime
	d.Maritime = &m
	m.Incoterm = strings.ToUpper(strings.TrimSpace(m.Incoterm))
	m.CargoType = strings.ToUpper(strings.TrimSpace(m.CargoType))
	if err := firstError(
		required("maritime.origin_port", m.OriginPort),
		required("maritime.destination_port", m.DestinationPort),
		positive("maritime.net_weight_kg", m.NetWeightKg),
		positive("maritime.gross_weight_kg", m.GrossWeightKg),
		positive("cargo.cubic_volume", d.Cargo.CubicVolume),
		required("maritime.incoterm", m.Incoterm),
		required("maritime.cargo_type", m.CargoType),
		positive("cargo.declared_value", d.Cargo.DeclaredValue),
	); err != nil {
		return err
	}
	if m.NetWeightKg.GreaterThan(m.GrossWeightKg) {
		return entities.NewValidationError("maritime.net_weight_kg", "net weight cannot exceed gross weight")
	}
	if m.CargoType != "FCL" && m.CargoType != "LCL" {
		return entities.NewValidationError("maritime.cargo_type", "must be FCL or LCL")
	}
	if m.ContainerQuantity < 0 {
		return entities.NewValidationError("maritime.container_quantity", "must not be negative")
	}

	m.OriginPort = strings.TrimSpace(m.OriginPort)
	m.DestinationPort = strings.TrimSpace(m.DestinationPort)
	d.Origin = portLocation(m.OriginPort)

	dest := d.Destination
	dest.Kind = entities.LocationKindPorto
	dest.Port = m.DestinationPort
	if strings.TrimSpace(dest.City) == "" {
		dest.City = m.DestinationPort
	}
	dest.PostalCode = docnum.OnlyDigits(dest.PostalCode)
	d.Destination = dest

	d.Cargo.Description = strings.TrimSpace(d.Cargo.Description)
	d.Cargo.WeightKg = m.GrossWeightKg
	d.Air = nil
	return nil
}

func prepareAir(d *entities.QuoteDraft) error {
	if d.Air == nil {
		return entities.NewValidationError("air", "required for air quotes")
	}
	a := *d.Air
	d.Air = &a
	if err := firstError(
		required("air.origin_airport", a.OriginAirport),
		required("air.destination_airport", a.DestinationAirport),
		required("air.service_type", a.ServiceType),
	); err != nil {
		return err
	}
	if err := prepareCargo(&d.Cargo, true); err != nil {
		return err
	}
	a.OriginAirport = strings.TrimSpace(a.OriginAirport)
	a.DestinationAirport = strings.TrimSpace(a.DestinationAirport)
	a.ServiceType = strings.TrimSpace(a.ServiceType)

	for _, l := range []struct {
		field   string
		loc     *entities.Location
		airport string
	}{
		{"origin", &d.Origin, a.OriginAirport},
		{"destination", &d.Destination, a.DestinationAirport},
	} {
		if l.loc.PostalCode != "" && !docnum.IsCEP(l.loc.PostalCode) {
			return entities.NewValidationError(l.field+".postal_code", "invalid CEP")
		}
		l.loc.Kind = entities.LocationKindAeroporto
		l.loc.PostalCode = docnum.OnlyDigits(l.loc.PostalCode)
		l.loc.Airport = l.airport
		if strings.TrimSpace(l.loc.City) == "" {
			l.loc.City = l.airport
		}
	}
	d.Maritime = nil
	return nil
}
