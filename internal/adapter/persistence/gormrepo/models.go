package gormrepo

import (
	"time"

	"brcargo_cotacoes/internal/domain/entities"
)

// QuoteModel keeps the filterable columns flat and the shipment detail as a
// JSON document.
type QuoteModel struct {
	ID                string `gorm:"primaryKey;size:36"`
	Number            string `gorm:"size:20;uniqueIndex;not null"`
	ConsultantID      string `gorm:"size:64;index;not null"`
	OperatorID        string `gorm:"size:64;index"`
	ProviderCompanyID string `gorm:"size:64"`
	Mode              string `gorm:"size:20;index;not null"`
	Status            string `gorm:"size:32;index;not null"`
	ClientName        string `gorm:"size:255"`
	ClientTaxID       string `gorm:"size:14;index"`
	OriginCity        string `gorm:"size:255"`
	DestinationCity   string `gorm:"size:255"`

	Detail   quoteDetail             `gorm:"type:text;serializer:json"`
	Response *entities.QuoteResponse `gorm:"type:text;serializer:json"`

	RequestedAt         time.Time `gorm:"index;not null"`
	OperatorAcceptedAt  *time.Time
	QuotedAt            *time.Time
	CustomerRespondedAt *time.Time
	FinalizedAt         *time.Time
	CreatedAt           time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime:false"`
	Version             int64     `gorm:"not null;default:1"`
}

func (QuoteModel) TableName() string { return "quotes" }

type quoteDetail struct {
	Client      entities.Client           `json:"client"`
	Origin      entities.Location         `json:"origin"`
	Destination entities.Location         `json:"destination"`
	Cargo       entities.Cargo            `json:"cargo"`
	Service     entities.ServiceRequest   `json:"service"`
	Maritime    *entities.MaritimeDetails `json:"maritime,omitempty"`
	Air         *entities.AirDetails      `json:"air,omitempty"`
}

type HistoryModel struct {
	ID             string    `gorm:"primaryKey;size:36"`
	QuoteID        string    `gorm:"size:36;index;not null"`
	ActorID        string    `gorm:"size:64"`
	PreviousStatus *string   `gorm:"size:64"`
	NewStatus      string    `gorm:"size:64;not null"`
	Note           string    `gorm:"type:text"`
	Timestamp      time.Time `gorm:"column:recorded_at;index;not null"`
	// 0-based append order within the quote's trail
	Position       int64     `gorm:"not null;default:0"`
}

func (HistoryModel) TableName() string { return "quote_history" }

type UserModel struct {
	ID     string `gorm:"primaryKey;size:64"`
	Name   string `gorm:"size:255"`
	Email  string `gorm:"size:255"`
	Role   string `gorm:"size:32;index"`
	Active bool
}

func (UserModel) TableName() string { return "users" }

type CompanyModel struct {
	ID     string `gorm:"primaryKey;size:64"`
	Name   string `gorm:"size:255"`
	TaxID  string `gorm:"size:14"`
	Active bool
}

func (CompanyModel) TableName() string { return "companies" }

type NotificationModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	RecipientID string `gorm:"size:64;index:idx_notifications_recipient,priority:1;not null"`
	QuoteID     string `gorm:"size:36"`
	QuoteNumber string `gorm:"size:20"`
	Kind        string `gorm:"size:32"`
	Title       string `gorm:"size:255"`
	Message     string `gorm:"type:text"`
	Read        bool   `gorm:"index:idx_notifications_recipient,priority:2"`
	CreatedAt   time.Time
}

func (NotificationModel) TableName() string { return "notifications" }

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func toQuoteModel(q entities.Quote) QuoteModel {
	return QuoteModel{
		ID:                q.ID,
		Number:            q.Number,
		ConsultantID:      q.ConsultantID,
		OperatorID:        q.OperatorID,
		ProviderCompanyID: q.ProviderCompanyID,
		Mode:              string(q.Mode),
		Status:            string(q.Status),
		ClientName:        q.Client.Name,
		ClientTaxID:       q.Client.TaxID,
		OriginCity:        q.Origin.City,
		DestinationCity:   q.Destination.City,
		Detail: quoteDetail{
			Client:      q.Client,
			Origin:      q.Origin,
			Destination: q.Destination,
			Cargo:       q.Cargo,
			Service:     q.Service,
			Maritime:    q.Maritime,
			Air:         q.Air,
		},
		Response:            q.Response,
		RequestedAt:         q.RequestedAt.UTC(),
		OperatorAcceptedAt:  utcPtr(q.OperatorAcceptedAt),
		QuotedAt:            utcPtr(q.QuotedAt),
		CustomerRespondedAt: utcPtr(q.CustomerRespondedAt),
		FinalizedAt:         utcPtr(q.FinalizedAt),
		CreatedAt:           q.CreatedAt.UTC(),
		UpdatedAt:           q.UpdatedAt.UTC(),
		Version:             q.Version,
	}
}

func fromQuoteModel(m QuoteModel) entities.Quote {
	return entities.Quote{
		ID:                  m.ID,
		Number:              m.Number,
		ConsultantID:        m.ConsultantID,
		OperatorID:          m.OperatorID,
		ProviderCompanyID:   m.ProviderCompanyID,
		Mode:                entities.TransportMode(m.Mode),
		Status:              entities.StatusFromStore(m.Status),
		Client:              m.Detail.Client,
		Origin:              m.Detail.Origin,
		Destination:         m.Detail.Destination,
		Cargo:               m.Detail.Cargo,
		Service:             m.Detail.Service,
		Maritime:            m.Detail.Maritime,
		Air:                 m.Detail.Air,
		Response:            m.Response,
		RequestedAt:         m.RequestedAt.UTC(),
		OperatorAcceptedAt:  utcPtr(m.OperatorAcceptedAt),
		QuotedAt:            utcPtr(m.QuotedAt),
		CustomerRespondedAt: utcPtr(m.CustomerRespondedAt),
		FinalizedAt:         utcPtr(m.FinalizedAt),
		CreatedAt:           m.CreatedAt.UTC(),
		UpdatedAt:           m.UpdatedAt.UTC(),
		Version:             m.Version,
	}
}

func toHistoryModel(e entities.HistoryEntry) HistoryModel {
	m := HistoryModel{
		ID:        e.ID,
		QuoteID:   e.QuoteID,
		ActorID:   e.ActorID,
		NewStatus: string(e.NewStatus),
		Note:      e.Note,
		Timestamp: e.Timestamp.UTC(),
	}
	if e.PreviousStatus != nil {
		prev := string(*e.PreviousStatus)
		m.PreviousStatus = &prev
	}
	return m
}

func fromHistoryModel(m HistoryModel) entities.HistoryEntry {
	prev := ""
	if m.PreviousStatus != nil {
		prev = *m.PreviousStatus
	}
	return entities.HistoryEntry{
		ID:             m.ID,
		QuoteID:        m.QuoteID,
		ActorID:        m.ActorID,
		PreviousStatus: entities.PreviousStatusFromStore(prev),
		NewStatus:      entities.StatusFromStore(m.NewStatus),
		Note:           m.Note,
		Timestamp:      m.Timestamp.UTC(),
	}
}
