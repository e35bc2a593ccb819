package gormrepo

import (
	"context"
	"errors"
	"strings"

	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type QuoteGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IQuoteRepository = (*QuoteGormRepository)(nil)

func NewQuoteGormRepository(db *gorm.DB) *QuoteGormRepository {
	return &QuoteGormRepository{db: db}
}

func (r *QuoteGormRepository) Create(ctx context.Context, q entities.Quote, entry entities.HistoryEntry) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&QuoteModel{}).Where("number = ?", q.Number).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return entities.ErrDuplicateQuoteNumber
		}

		m := toQuoteModel(q)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		h := toHistoryModel(entry)
		return tx.Create(&h).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return entities.ErrDuplicateQuoteNumber
	}
	return err
}

func (r *QuoteGormRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	var m QuoteModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Quote{}, nil
	}
	if err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteModel(m), nil
}

// Transition rewrites the quote only while its stored version still equals
// expectedVersion and appends the history entry in the same transaction.
func (r *QuoteGormRepository) Transition(ctx context.Context, q entities.Quote, expectedVersion int64, entry entities.HistoryEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toQuoteModel(q)
		result := tx.Model(&QuoteModel{}).
			Where("id = ? AND version = ?", q.ID, expectedVersion).
			Select("*").
			Omit("id", "number", "consultant_id", "created_at").
			Updates(&m)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entities.ErrVersionConflict
		}
		h := toHistoryModel(entry)
		if err := tx.Model(&HistoryModel{}).Where("quote_id = ?", q.ID).Count(&h.Position).Error; err != nil {
			return err
		}
		return tx.Create(&h).Error
	})
}

func likeFold(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

func (r *QuoteGormRepository) filtered(ctx context.Context, f entities.QuoteFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&QuoteModel{})

	if f.Scope.OwnerConsultantID != "" {
		q = q.Where("consultant_id = ?", f.Scope.OwnerConsultantID)
	}
	if f.Scope.PoolOperatorID != "" {
		q = q.Where("(status IN ? OR operator_id = ?)", entities.QuoteStatusSolicitada.StoredForms(), f.Scope.PoolOperatorID)
	}
	if f.Status != "" {
		q = q.Where("status IN ?", f.Status.StoredForms())
	}
	if f.Mode != "" {
		q = q.Where("mode = ?", string(f.Mode))
	}
	if f.ClientName != "" {
		q = q.Where("LOWER(client_name) LIKE ?", likeFold(f.ClientName))
	}
	if digits := f.TaxIDDigits(); digits != "" {
		q = q.Where("client_tax_id LIKE ?", "%"+digits+"%")
	}
	if f.OriginCity != "" {
		q = q.Where("LOWER(origin_city) LIKE ?", likeFold(f.OriginCity))
	}
	if f.DestinationCity != "" {
		q = q.Where("LOWER(destination_city) LIKE ?", likeFold(f.DestinationCity))
	}
	if !f.RequestedFrom.IsZero() {
		q = q.Where("requested_at >= ?", f.RequestedFrom.UTC())
	}
	if !f.RequestedBefore.IsZero() {
		q = q.Where("requested_at < ?", f.RequestedBefore.UTC())
	}
	if f.ConsultantID != "" {
		q = q.Where("consultant_id = ?", f.ConsultantID)
	}
	if f.OperatorID != "" {
		q = q.Where("operator_id = ?", f.OperatorID)
	}
	return q
}

func (r *QuoteGormRepository) Search(ctx context.Context, filter entities.QuoteFilter, page entities.Page) ([]entities.Quote, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []QuoteModel
	err := r.filtered(ctx, filter).
		Order("requested_at DESC").
		Order("number DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	quotes := make([]entities.Quote, 0, len(models))
	for _, m := range models {
		quotes = append(quotes, fromQuoteModel(m))
	}
	return quotes, total, nil
}

type groupCount struct {
	Key string `gorm:"column:group_key"`
	N   int64  `gorm:"column:group_count"`
}

func (r *QuoteGormRepository) groupBy(ctx context.Context, filter entities.QuoteFilter, column string) ([]groupCount, error) {
	var rows []groupCount
	err := r.filtered(ctx, filter).
		Select(column + " AS group_key, COUNT(*) AS group_count").
		Group(column).
		Scan(&rows).Error
	return rows, err
}

func (r *QuoteGormRepository) Count(ctx context.Context, filter entities.QuoteFilter) (entities.QuoteCounts, error) {
	counts := entities.NewQuoteCounts()

	byStatus, err := r.groupBy(ctx, filter, "status")
	if err != nil {
		return entities.QuoteCounts{}, err
	}
	for _, row := range byStatus {
		counts.ByStatus[entities.StatusFromStore(row.Key)] += row.N
		counts.Total += row.N
	}

	byMode, err := r.groupBy(ctx, filter, "mode")
	if err != nil {
		return entities.QuoteCounts{}, err
	}
	for _, row := range byMode {
		counts.ByMode[entities.TransportMode(row.Key)] += row.N
	}

	byOperator, err := r.groupBy(ctx, filter, "operator_id")
	if err != nil {
		return entities.QuoteCounts{}, err
	}
	for _, row := range byOperator {
		if row.Key != "" {
			counts.ByOperator[row.Key] += row.N
		}
	}
	return counts, nil
}

func (r *QuoteGormRepository) ListHistory(ctx context.Context, quoteID string) ([]entities.HistoryEntry, error) {
	var models []HistoryModel
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("recorded_at ASC").
		Order("position ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entries := make([]entities.HistoryEntry, 0, len(models))
	for _, m := range models {
		entries = append(entries, fromHistoryModel(m))
	}
	return entries, nil
}

func (r *QuoteGormRepository) LatestNumber(ctx context.Context, prefix string) (string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Model(&QuoteModel{}).
		Where("number LIKE ?", prefix+"%").
		Order("number DESC").
		Limit(1).
		Pluck("number", &numbers).Error
	if err != nil || len(numbers) == 0 {
		return "", err
	}
	return numbers[0], nil
}
