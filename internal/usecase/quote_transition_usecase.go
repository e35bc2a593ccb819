package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// mutation applies one lifecycle edge to a freshly loaded quote.
type mutation func(ctx context.Context, q *entities.Quote, now time.Time) (entities.Transition, error)

// transition is the unit of work shared by every lifecycle command: load the
// quote, evaluate guard and from set, mutate, then commit quote and history
// entry under an optimistic version check. A version conflict reloads and
// re-evaluates, so a racing loser sees the winner's status and fails with a
// state conflict.
func (u *QuoteUseCase) transition(ctx context.Context, caller entities.User, id string, event entities.QuoteEvent, apply mutation) (entities.Quote, error) {
	if err := checkCaller(caller); err != nil {
		return entities.Quote{}, err
	}

	for attempt := 1; attempt <= u.transitionAttempts; attempt++ {
		q, err := u.loadQuote(ctx, id)
		if err != nil {
			u.observe(event, err)
			return entities.Quote{}, err
		}

		expected := q.Version
		t, err := apply(ctx, &q, u.now())
		if err != nil {
			u.observe(event, err)
			return entities.Quote{}, err
		}
		q.Version = expected + 1

		entry := entities.NewHistoryEntry(u.newID(), q.ID, t)
		err = u.quotes.Transition(ctx, q, expected, entry)
		if errors.Is(err, entities.ErrVersionConflict) {
			u.log.Info("quote changed concurrently, reloading",
				zap.String("quote_id", q.ID),
				zap.String("event", string(event)),
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			err = entities.PersistenceFailure("commit transition", err)
			u.observe(event, err)
			return entities.Quote{}, err
		}

		u.observe(event, nil)
		u.log.Info("quote transition",
			zap.String("quote_id", q.ID),
			zap.String("number", q.Number),
			zap.String("event", string(event)),
			zap.String("from", string(t.From)),
			zap.String("to", string(t.To)),
			zap.String("actor_id", t.ActorID),
		)
		return q, nil
	}

	err := fmt.Errorf("%w: quote %s kept changing during %s", entities.ErrStateConflict, id, event)
	u.observe(event, err)
	return entities.Quote{}, err
}

func (u *QuoteUseCase) AcceptByOperator(ctx context.Context, caller entities.User, id, note string) (entities.Quote, error) {
	q, err := u.transition(ctx, caller, id, entities.EventOperatorAccept,
		func(_ context.Context, q *entities.Quote, now time.Time) (entities.Transition, error) {
			return q.AcceptByOperator(caller, note, now)
		})
	if err != nil {
		return entities.Quote{}, err
	}
	u.notify(ctx, q, "operator_accepted", func(ctx context.Context, n interfaces.IQuoteNotifier) error {
		return n.NotifyOperatorAccepted(ctx, q)
	})
	return q, nil
}

// AcceptByOperatorID resolves the operator and accepts on their behalf.
func (u *QuoteUseCase) AcceptByOperatorID(ctx context.Context, id, operatorID, note string) (entities.Quote, error) {
	operatorID = strings.TrimSpace(operatorID)
	if operatorID == "" {
		return entities.Quote{}, ErrInvalidOperatorID
	}
	operator, err := u.users.GetByID(ctx, operatorID)
	if err != nil {
		return entities.Quote{}, entities.PersistenceFailure("load operator", err)
	}
	if operator.ID == "" {
		return entities.Quote{}, entities.ErrUserNotFound
	}
	return u.AcceptByOperator(ctx, operator, id, note)
}

func (u *QuoteUseCase) SendQuote(ctx context.Context, caller entities.User, id string, resp entities.QuoteResponse, providerCompanyID string) (entities.Quote, error) {
	providerCompanyID = strings.TrimSpace(providerCompanyID)
	q, err := u.transition(ctx, caller, id, entities.EventSendQuote,
		func(ctx context.Context, q *entities.Quote, now time.Time) (entities.Transition, error) {
			if err := q.CheckTransition(caller, entities.EventSendQuote); err != nil {
				return entities.Transition{}, err
			}
			if err := resp.Validate(); err != nil {
				return entities.Transition{}, err
			}
			if providerCompanyID != "" {
				if err := u.ensureCompany(ctx, providerCompanyID); err != nil {
					return entities.Transition{}, err
				}
			}
			return q.SendQuote(caller, resp, providerCompanyID, now)
		})
	if err != nil {
		return entities.Quote{}, err
	}
	u.notify(ctx, q, "quote_sent", func(ctx context.Context, n interfaces.IQuoteNotifier) error {
		return n.NotifyQuoteSent(ctx, q)
	})
	return q, nil
}

func (u *QuoteUseCase) ensureCompany(ctx context.Context, id string) error {
	c, err := u.companies.GetByID(ctx, id)
	if err != nil {
		return entities.PersistenceFailure("load providing company", err)
	}
	if c.ID == "" || !c.Active {
		return entities.ErrCompanyNotFound
	}
	return nil
}

func (u *QuoteUseCase) CustomerAccept(ctx context.Context, caller entities.User, id, note string) (entities.Quote, error) {
	return u.customerDecision(ctx, caller, id, true, note)
}

func (u *QuoteUseCase) CustomerDecline(ctx context.Context, caller entities.User, id, note string) (entities.Quote, error) {
	return u.customerDecision(ctx, caller, id, false, note)
}

// RecordCustomerDecision is the outcome-driven form of CustomerAccept and
// CustomerDecline.
func (u *QuoteUseCase) RecordCustomerDecision(ctx context.Context, caller entities.User, id string, approved bool, note string) (entities.Quote, error) {
	if approved {
		return u.CustomerAccept(ctx, caller, id, note)
	}
	return u.CustomerDecline(ctx, caller, id, note)
}

func (u *QuoteUseCase) customerDecision(ctx context.Context, caller entities.User, id string, approved bool, note string) (entities.Quote, error) {
	event := entities.EventCustomerDecline
	if approved {
		event = entities.EventCustomerAccept
	}
	q, err := u.transition(ctx, caller, id, event,
		func(_ context.Context, q *entities.Quote, now time.Time) (entities.Transition, error) {
			if approved {
				return q.CustomerAccept(caller, note, now)
			}
			return q.CustomerDecline(caller, note, now)
		})
	if err != nil {
		return entities.Quote{}, err
	}
	u.notify(ctx, q, "customer_decision", func(ctx context.Context, n interfaces.IQuoteNotifier) error {
		return n.NotifyCustomerDecision(ctx, q, approved)
	})
	return q, nil
}

func (u *QuoteUseCase) Finalize(ctx context.Context, caller entities.User, id, note string) (entities.Quote, error) {
	return u.transition(ctx, caller, id, entities.EventFinalize,
		func(_ context.Context, q *entities.Quote, now time.Time) (entities.Transition, error) {
			return q.Finalize(caller, note, now)
		})
}

// MarkFinalized is an alias of Finalize.
func (u *QuoteUseCase) MarkFinalized(ctx context.Context, caller entities.User, id, note string) (entities.Quote, error) {
	return u.Finalize(ctx, caller, id, note)
}

func (u *QuoteUseCase) Reassign(ctx context.Context, caller entities.User, id, operatorID string) (entities.Quote, error) {
	operatorID = strings.TrimSpace(operatorID)
	return u.transition(ctx, caller, id, entities.EventReassign,
		func(ctx context.Context, q *entities.Quote, now time.Time) (entities.Transition, error) {
			if err := q.CheckTransition(caller, entities.EventReassign); err != nil {
				return entities.Transition{}, err
			}
			if operatorID == "" {
				return entities.Transition{}, ErrInvalidOperatorID
			}
			target, err := u.users.GetByID(ctx, operatorID)
			if err != nil {
				return entities.Transition{}, entities.PersistenceFailure("load operator", err)
			}
			if target.ID == "" {
				return entities.Transition{}, entities.ErrUserNotFound
			}
			previous := ""
			if q.OperatorID != "" {
				previous = u.displayName(ctx, q.OperatorID, nil)
			}
			return q.Reassign(caller, target, previous, now)
		})
}
