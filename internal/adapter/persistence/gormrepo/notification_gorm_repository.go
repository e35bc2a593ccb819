package gormrepo

import (
	"context"

	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

var _ interfaces.INotificationRepository = (*NotificationGormRepository)(nil)

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) Create(ctx context.Context, n entities.Notification) error {
	m := NotificationModel{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		QuoteID:     n.QuoteID,
		QuoteNumber: n.QuoteNumber,
		Kind:        string(n.Kind),
		Title:       n.Title,
		Message:     n.Message,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *NotificationGormRepository) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]entities.Notification, error) {
	q := r.db.WithContext(ctx).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var models []NotificationModel
	if err := q.Order("created_at DESC").Order("id DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Notification, 0, len(models))
	for _, m := range models {
		out = append(out, entities.Notification{
			ID:          m.ID,
			RecipientID: m.RecipientID,
			QuoteID:     m.QuoteID,
			QuoteNumber: m.QuoteNumber,
			Kind:        entities.NotificationKind(m.Kind),
			Title:       m.Title,
			Message:     m.Message,
			Read:        m.Read,
			CreatedAt:   m.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *NotificationGormRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&NotificationModel{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&n).Error
	return n, err
}

func (r *NotificationGormRepository) MarkRead(ctx context.Context, recipientID, id string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&NotificationModel{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *NotificationGormRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&NotificationModel{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Update("read", true)
	return result.RowsAffected, result.Error
}
