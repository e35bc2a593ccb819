package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	QuoteEventsChannel       = "cotacoes.eventos"
	defaultNotificationLimit = 50
	maxNotificationLimit     = 200
)

// INotificationUseCase exposes the caller's inbox.
type INotificationUseCase interface {
	List(ctx context.Context, caller entities.User, unreadOnly bool, limit int) (NotificationInbox, error)
	MarkRead(ctx context.Context, caller entities.User, id string) error
	MarkAllRead(ctx context.Context, caller entities.User) (int64, error)
}

type NotificationInbox struct {
	Items  []entities.Notification
	Unread int64
}

// QuoteEventMessage is the payload published for other processes.
type QuoteEventMessage struct {
	Event       string    `json:"event"`
	QuoteID     string    `json:"quote_id"`
	QuoteNumber string    `json:"quote_number"`
	Status      string    `json:"status"`
	Recipients  []string  `json:"recipients"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NotificationUseCase writes inbox rows for every lifecycle step and, when a
// publisher is configured, publishes the event as JSON.
type NotificationUseCase struct {
	repo      interfaces.INotificationRepository
	users     interfaces.IUserRepository
	publisher interfaces.IEventPublisher
	log       *zap.Logger
	now       func() time.Time
	newID     func() string
}

var (
	_ INotificationUseCase      = (*NotificationUseCase)(nil)
	_ interfaces.IQuoteNotifier = (*NotificationUseCase)(nil)
)

func NewNotificationUseCase(
	repo interfaces.INotificationRepository,
	users interfaces.IUserRepository,
	publisher interfaces.IEventPublisher,
	log *zap.Logger,
) *NotificationUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &NotificationUseCase{
		repo:      repo,
		users:     users,
		publisher: publisher,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

func (u *NotificationUseCase) NotifyNewQuote(ctx context.Context, q entities.Quote) error {
	operators, err := u.users.ListByRoles(ctx, []entities.Role{entities.RoleOperador})
	if err != nil {
		return fmt.Errorf("list operators: %w", err)
	}
	recipients := make([]string, 0, len(operators))
	for _, op := range operators {
		if op.Active {
			recipients = append(recipients, op.ID)
		}
	}
	return u.deliver(ctx, q, entities.NotificationNovaCotacao,
		"Nova cotação disponível",
		fmt.Sprintf("Nova cotação %s de %s aguardando operador.", q.Number, q.Client.Name),
		recipients)
}

func (u *NotificationUseCase) NotifyOperatorAccepted(ctx context.Context, q entities.Quote) error {
	return u.deliver(ctx, q, entities.NotificationCotacaoAceita,
		"Cotação aceita",
		fmt.Sprintf("A cotação %s foi aceita por um operador.", q.Number),
		[]string{q.ConsultantID})
}

func (u *NotificationUseCase) NotifyQuoteSent(ctx context.Context, q entities.Quote) error {
	msg := fmt.Sprintf("A cotação %s foi respondida.", q.Number)
	if q.Response != nil {
		msg = fmt.Sprintf("A cotação %s foi respondida: R$ %s em %d dias.",
			q.Number, q.Response.FreightValue.StringFixed(2), q.Response.LeadTimeDays)
	}
	return u.deliver(ctx, q, entities.NotificationCotacaoRespondida, "Cotação respondida", msg, []string{q.ConsultantID})
}

func (u *NotificationUseCase) NotifyCustomerDecision(ctx context.Context, q entities.Quote, accepted bool) error {
	kind, title, verb := entities.NotificationCotacaoRecusada, "Cotação recusada", "recusada"
	if accepted {
		kind, title, verb = entities.NotificationCotacaoAprovada, "Cotação aprovada", "aprovada"
	}
	var recipients []string
	if q.OperatorID != "" {
		recipients = []string{q.OperatorID}
	}
	return u.deliver(ctx, q, kind, title,
		fmt.Sprintf("A cotação %s foi %s pelo cliente.", q.Number, verb),
		recipients)
}

func (u *NotificationUseCase) deliver(ctx context.Context, q entities.Quote, kind entities.NotificationKind, title, message string, recipients []string) error {
	now := u.now()
	var errs []error
	for _, recipientID := range recipients {
		if recipientID == "" {
			continue
		}
		n := entities.Notification{
			ID:          u.newID(),
			RecipientID: recipientID,
			QuoteID:     q.ID,
			QuoteNumber: q.Number,
			Kind:        kind,
			Title:       title,
			Message:     message,
			CreatedAt:   now,
		}
		if err := u.repo.Create(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("notify %s: %w", recipientID, err))
		}
	}

	if u.publisher != nil {
		payload, err := json.Marshal(QuoteEventMessage{
			Event:       string(kind),
			QuoteID:     q.ID,
			QuoteNumber: q.Number,
			Status:      string(q.Status),
			Recipients:  recipients,
			OccurredAt:  now,
		})
		if err == nil {
			err = u.publisher.Publish(ctx, QuoteEventsChannel, payload)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", kind, err))
		}
	}
	return errors.Join(errs...)
}

func (u *NotificationUseCase) List(ctx context.Context, caller entities.User, unreadOnly bool, limit int) (NotificationInbox, error) {
	if err := checkCaller(caller); err != nil {
		return NotificationInbox{}, err
	}
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}

	items, err := u.repo.ListByRecipient(ctx, caller.ID, unreadOnly, limit)
	if err != nil {
		return NotificationInbox{}, entities.PersistenceFailure("list notifications", err)
	}
	unread, err := u.repo.CountUnread(ctx, caller.ID)
	if err != nil {
		return NotificationInbox{}, entities.PersistenceFailure("count notifications", err)
	}
	if items == nil {
		items = []entities.Notification{}
	}
	return NotificationInbox{Items: items, Unread: unread}, nil
}

func (u *NotificationUseCase) MarkRead(ctx context.Context, caller entities.User, id string) error {
	if err := checkCaller(caller); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.NewValidationError("id", "required field")
	}
	ok, err := u.repo.MarkRead(ctx, caller.ID, id)
	if err != nil {
		return entities.PersistenceFailure("mark notification read", err)
	}
	if !ok {
		return entities.ErrNotificationMissing
	}
	return nil
}

func (u *NotificationUseCase) MarkAllRead(ctx context.Context, caller entities.User) (int64, error) {
	if err := checkCaller(caller); err != nil {
		return 0, err
	}
	n, err := u.repo.MarkAllRead(ctx, caller.ID)
	if err != nil {
		return 0, entities.PersistenceFailure("mark notifications read", err)
	}
	return n, nil
}
