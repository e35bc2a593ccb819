package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const defaultNotifyTimeout = 10 * time.Second

// AsyncQuoteNotifier runs every delivery on its own goroutine so lifecycle
// commands never wait on the inbox or the broker. Failures are logged.
type AsyncQuoteNotifier struct {
	next    interfaces.IQuoteNotifier
	timeout time.Duration
	log     *zap.Logger
	wg      sync.WaitGroup
}

var _ interfaces.IQuoteNotifier = (*AsyncQuoteNotifier)(nil)

func NewAsyncQuoteNotifier(next interfaces.IQuoteNotifier, timeout time.Duration, log *zap.Logger) *AsyncQuoteNotifier {
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AsyncQuoteNotifier{next: next, timeout: timeout, log: log}
}

func (a *AsyncQuoteNotifier) NotifyNewQuote(ctx context.Context, q entities.Quote) error {
	a.dispatch(ctx, "new_quote", q, func(ctx context.Context) error { return a.next.NotifyNewQuote(ctx, q) })
	return nil
}

func (a *AsyncQuoteNotifier) NotifyOperatorAccepted(ctx context.Context, q entities.Quote) error {
	a.dispatch(ctx, "operator_accepted", q, func(ctx context.Context) error { return a.next.NotifyOperatorAccepted(ctx, q) })
	return nil
}

func (a *AsyncQuoteNotifier) NotifyQuoteSent(ctx context.Context, q entities.Quote) error {
	a.dispatch(ctx, "quote_sent", q, func(ctx context.Context) error { return a.next.NotifyQuoteSent(ctx, q) })
	return nil
}

func (a *AsyncQuoteNotifier) NotifyCustomerDecision(ctx context.Context, q entities.Quote, accepted bool) error {
	a.dispatch(ctx, "customer_decision", q, func(ctx context.Context) error { return a.next.NotifyCustomerDecision(ctx, q, accepted) })
	return nil
}

// Wait blocks until every dispatched delivery has finished.
func (a *AsyncQuoteNotifier) Wait() {
	a.wg.Wait()
}

func (a *AsyncQuoteNotifier) dispatch(ctx context.Context, kind string, q entities.Quote, send func(context.Context) error) {
	// The request context is cancelled once the handler returns.
	ctx = context.WithoutCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		var err error
		func() {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("notifier panic: %v", r)
				}
			}()
			err = send(ctx)
		}()
		if err != nil {
			a.log.Warn("async quote notification failed",
				zap.String("kind", kind),
				zap.String("quote_id", q.ID),
				zap.String("number", q.Number),
				zap.Error(err),
			)
		}
	}()
}
