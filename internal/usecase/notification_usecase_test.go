package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"brcargo_cotacoes/internal/domain/entities"
	mock_interfaces "brcargo_cotacoes/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func sentQuote() entities.Quote {
	q := storedQuote(entities.QuoteStatusCotacaoEnviada, tOperator.ID, 3)
	q.Response = &entities.QuoteResponse{FreightValue: decimal.NewFromInt(900), LeadTimeDays: 2}
	return q
}

func TestNotificationUseCase_NotifyNewQuote(t *testing.T) {
	t.Run("every active operator gets a row and the event is published", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockINotificationRepository(ctrl)
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		pub := mock_interfaces.NewMockIEventPublisher(ctrl)
		uc := NewNotificationUseCase(repo, users, pub, nil)

		inactive := entities.User{ID: "u-old", Role: entities.RoleOperador}
		users.EXPECT().ListByRoles(gomock.Any(), []entities.Role{entities.RoleOperador}).
			Return([]entities.User{tOperator, inactive, tOperator2}, nil)

		var got []string
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, n entities.Notification) error {
				if n.Kind != entities.NotificationNovaCotacao || n.QuoteNumber != "COT-20240105-0001" || n.Read {
					t.Fatalf("unexpected notification: %+v", n)
				}
				got = append(got, n.RecipientID)
				return nil
			}).Times(2)
		pub.EXPECT().Publish(gomock.Any(), QuoteEventsChannel, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, payload []byte) error {
				var msg QuoteEventMessage
				if err := json.Unmarshal(payload, &msg); err != nil {
					t.Fatalf("bad payload: %v", err)
				}
				if msg.Event != string(entities.NotificationNovaCotacao) || len(msg.Recipients) != 2 {
					t.Fatalf("unexpected message: %+v", msg)
				}
				return nil
			})

		if err := uc.NotifyNewQuote(context.Background(), storedQuote(entities.QuoteStatusSolicitada, "", 1)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0] != tOperator.ID || got[1] != tOperator2.ID {
			t.Fatalf("unexpected recipients: %v", got)
		}
	})

	t.Run("operator lookup failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockINotificationRepository(ctrl)
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewNotificationUseCase(repo, users, nil, nil)

		users.EXPECT().ListByRoles(gomock.Any(), gomock.Any()).Return(nil, errors.New("db"))

		if err := uc.NotifyNewQuote(context.Background(), storedQuote(entities.QuoteStatusSolicitada, "", 1)); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestNotificationUseCase_Recipients(t *testing.T) {
	t.Run("quote sent goes to the consultant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockINotificationRepository(ctrl)
		uc := NewNotificationUseCase(repo, nil, nil, nil)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, n entities.Notification) error {
				if n.RecipientID != tConsultant.ID || n.Kind != entities.NotificationCotacaoRespondida {
					t.Fatalf("unexpected notification: %+v", n)
				}
				if n.Message != "A cotação COT-20240105-0001 foi respondida: R$ 900.00 em 2 dias." {
					t.Fatalf("unexpected message %q", n.Message)
				}
				return nil
			})

		if err := uc.NotifyQuoteSent(context.Background(), sentQuote()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("decision goes to the assigned operator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockINotificationRepository(ctrl)
		uc := NewNotificationUseCase(repo, nil, nil, nil)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, n entities.Notification) error {
				if n.RecipientID != tOperator.ID || n.Kind != entities.NotificationCotacaoAprovada {
					t.Fatalf("unexpected notification: %+v", n)
				}
				return nil
			})

		if err := uc.NotifyCustomerDecision(context.Background(), sentQuote(), true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("inbox and broker failures are joined", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockINotificationRepository(ctrl)
		pub := mock_interfaces.NewMockIEventPublisher(ctrl)
		uc := NewNotificationUseCase(repo, nil, pub, nil)

		inboxErr := errors.New("inbox")
		brokerErr := errors.New("broker")
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(inboxErr)
		pub.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(brokerErr)

		err := uc.NotifyOperatorAccepted(context.Background(), sentQuote())
		if !errors.Is(err, inboxErr) || !errors.Is(err, brokerErr) {
			t.Fatalf("expected both errors, got %v", err)
		}
	})
}

func TestNotificationUseCase_Inbox(t *testing.T) {
	t.Run("list clamps the limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockINotificationRepository(ctrl)
		uc := NewNotificationUseCase(repo, nil, nil, nil)

		repo.EXPECT().ListByRecipient(gomock.Any(), tConsultant.ID, true, maxNotificationLimit).Return(nil, nil)
		repo.EXPECT().CountUnread(gomock.Any(), tConsultant.ID).Return(int64(0), nil)

		inbox, err := uc.List(context.Background(), tConsultant, true, 10000)
		if err != nil || inbox.Items == nil {
			t.Fatalf("unexpected result: %+v %v", inbox, err)
		}
	})

	t.Run("mark read of a foreign notification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockINotificationRepository(ctrl)
		uc := NewNotificationUseCase(repo, nil, nil, nil)

		repo.EXPECT().MarkRead(gomock.Any(), tConsultant.ID, "n-1").Return(false, nil)

		err := uc.MarkRead(context.Background(), tConsultant, "n-1")
		if !errors.Is(err, entities.ErrNotificationMissing) {
			t.Fatalf("expected ErrNotificationMissing, got %v", err)
		}
	})

	t.Run("mark all read", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockINotificationRepository(ctrl)
		uc := NewNotificationUseCase(repo, nil, nil, nil)

		repo.EXPECT().MarkAllRead(gomock.Any(), tOperator.ID).Return(int64(3), nil)

		n, err := uc.MarkAllRead(context.Background(), tOperator)
		if err != nil || n != 3 {
			t.Fatalf("unexpected result: %d %v", n, err)
		}
	})
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
	fail  bool
}

func (r *recordingNotifier) record(kind string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, kind)
	if r.fail {
		panic("boom")
	}
	return nil
}

func (r *recordingNotifier) NotifyNewQuote(context.Context, entities.Quote) error {
	return r.record("new")
}

func (r *recordingNotifier) NotifyOperatorAccepted(context.Context, entities.Quote) error {
	return r.record("accepted")
}

func (r *recordingNotifier) NotifyQuoteSent(context.Context, entities.Quote) error {
	return r.record("sent")
}

func (r *recordingNotifier) NotifyCustomerDecision(context.Context, entities.Quote, bool) error {
	return r.record("decision")
}

func TestAsyncQuoteNotifier(t *testing.T) {
	t.Run("delivers after the request context is gone", func(t *testing.T) {
		next := &recordingNotifier{}
		a := NewAsyncQuoteNotifier(next, time.Second, nil)

		ctx, cancel := context.WithCancel(context.Background())
		_ = a.NotifyNewQuote(ctx, entities.Quote{ID: "q-1"})
		_ = a.NotifyQuoteSent(ctx, entities.Quote{ID: "q-1"})
		cancel()
		a.Wait()

		if len(next.calls) != 2 {
			t.Fatalf("expected 2 deliveries, got %v", next.calls)
		}
	})

	t.Run("panics are contained", func(t *testing.T) {
		next := &recordingNotifier{fail: true}
		a := NewAsyncQuoteNotifier(next, time.Second, nil)

		if err := a.NotifyCustomerDecision(context.Background(), entities.Quote{ID: "q-1"}, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		a.Wait()
	})
}
