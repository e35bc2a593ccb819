package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/internal/domain/validation"
	"brcargo_cotacoes/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidQuoteID    = fmt.Errorf("%w: invalid quote id", entities.ErrValidation)
	ErrInvalidOperatorID = fmt.Errorf("%w: invalid operator id", entities.ErrValidation)
	ErrInactiveCaller    = fmt.Errorf("%w: unknown or inactive caller", entities.ErrPermission)
	ErrQuoteNotVisible   = fmt.Errorf("%w: quote not visible to caller", entities.ErrPermission)
	ErrSupervisorOnly    = fmt.Errorf("%w: manager or administrator role required", entities.ErrPermission)
)

const (
	defaultNumberAttempts     = 5
	defaultTransitionAttempts = 3
)

// IQuoteUseCase is the boundary the HTTP layer consumes.
//
// Every operation receives the resolved caller explicitly. Lifecycle commands
// return the updated quote; the mirror wrappers (AcceptByOperatorID,
// RecordCustomerDecision, MarkFinalized) delegate to the single
// implementation of their edge.

type IQuoteUseCase interface {
	Create(ctx context.Context, caller entities.User, draft entities.QuoteDraft) (entities.Quote, error)
	Get(ctx context.Context, caller entities.User, id string) (entities.Quote, error)
	List(ctx context.Context, caller entities.User, filter entities.QuoteFilter, page entities.Page) (entities.PageResult[entities.Quote], error)

	AcceptByOperator(ctx context.Context, caller entities.User, id, note string) (entities.Quote, error)
	AcceptByOperatorID(ctx context.Context, id, operatorID, note string) (entities.Quote, error)
	SendQuote(ctx context.Context, caller entities.User, id string, resp entities.QuoteResponse, providerCompanyID string) (entities.Quote, error)
	CustomerAccept(ctx context.Context, caller entities.User, id, note string) (entities.Quote, error)
	CustomerDecline(ctx context.Context, caller entities.User, id, note string) (entities.Quote, error)
	RecordCustomerDecision(ctx context.Context, caller entities.User, id string, approved bool, note string) (entities.Quote, error)
	Finalize(ctx context.Context, caller entities.User, id, note string) (entities.Quote, error)
	MarkFinalized(ctx context.Context, caller entities.User, id, note string) (entities.Quote, error)
	Reassign(ctx context.Context, caller entities.User, id, operatorID string) (entities.Quote, error)

	Statistics(ctx context.Context, caller entities.User) (entities.QuoteStatistics, error)
	History(ctx context.Context, caller entities.User, id string) ([]entities.HistoryEntry, error)
	ListOperators(ctx context.Context, caller entities.User) ([]entities.User, error)
}

type QuoteUseCase struct {
	quotes    interfaces.IQuoteRepository
	users     interfaces.IUserRepository
	companies interfaces.ICompanyRepository
	numbers   *QuoteNumberer
	notifier  interfaces.IQuoteNotifier
	metrics   interfaces.ITransitionMetrics
	log       *zap.Logger

	now                func() time.Time
	newID              func() string
	numberAttempts     int
	transitionAttempts int
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

type QuoteUseCaseOption func(*QuoteUseCase)

func WithNotifier(n interfaces.IQuoteNotifier) QuoteUseCaseOption {
	return func(u *QuoteUseCase) { u.notifier = n }
}

func WithTransitionMetrics(m interfaces.ITransitionMetrics) QuoteUseCaseOption {
	return func(u *QuoteUseCase) { u.metrics = m }
}

func WithLogger(l *zap.Logger) QuoteUseCaseOption {
	return func(u *QuoteUseCase) {
		if l != nil {
			u.log = l
		}
	}
}

func WithClock(now func() time.Time) QuoteUseCaseOption {
	return func(u *QuoteUseCase) { u.now = now }
}

func WithIDGenerator(newID func() string) QuoteUseCaseOption {
	return func(u *QuoteUseCase) { u.newID = newID }
}

func WithNumberAttempts(n int) QuoteUseCaseOption {
	return func(u *QuoteUseCase) {
		if n > 0 {
			u.numberAttempts = n
		}
	}
}

func WithTransitionAttempts(n int) QuoteUseCaseOption {
	return func(u *QuoteUseCase) {
		if n > 0 {
			u.transitionAttempts = n
		}
	}
}

func NewQuoteUseCase(
	quotes interfaces.IQuoteRepository,
	users interfaces.IUserRepository,
	companies interfaces.ICompanyRepository,
	numbers *QuoteNumberer,
	opts ...QuoteUseCaseOption,
) *QuoteUseCase {
	u := &QuoteUseCase{
		quotes:             quotes,
		users:              users,
		companies:          companies,
		numbers:            numbers,
		log:                zap.NewNop(),
		now:                func() time.Time { return time.Now().UTC() },
		newID:              uuid.NewString,
		numberAttempts:     defaultNumberAttempts,
		transitionAttempts: defaultTransitionAttempts,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func checkCaller(caller entities.User) error {
	if strings.TrimSpace(caller.ID) == "" || !caller.Active || !caller.Role.IsValid() {
		return ErrInactiveCaller
	}
	return nil
}

func (u *QuoteUseCase) Create(ctx context.Context, caller entities.User, draft entities.QuoteDraft) (entities.Quote, error) {
	if err := checkCaller(caller); err != nil {
		return entities.Quote{}, err
	}
	if err := entities.CanCreateQuote(caller); err != nil {
		u.observe(entities.EventCreate, err)
		return entities.Quote{}, err
	}

	d, err := validation.PrepareDraft(draft)
	if err != nil {
		u.observe(entities.EventCreate, err)
		return entities.Quote{}, err
	}

	var lastErr error
	for attempt := 1; attempt <= u.numberAttempts; attempt++ {
		now := u.now()
		number, err := u.numbers.Next(ctx, now)
		if err != nil {
			u.observe(entities.EventCreate, err)
			return entities.Quote{}, err
		}

		q := entities.NewQuote(u.newID(), number, caller.ID, d, now)
		entry := entities.NewCreationHistoryEntry(u.newID(), q)

		err = u.quotes.Create(ctx, q, entry)
		if errors.Is(err, entities.ErrDuplicateQuoteNumber) {
			lastErr = err
			u.log.Info("quote number taken, retrying",
				zap.String("number", number),
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			err = entities.PersistenceFailure("create quote", err)
			u.observe(entities.EventCreate, err)
			return entities.Quote{}, err
		}

		u.observe(entities.EventCreate, nil)
		u.log.Info("quote created",
			zap.String("quote_id", q.ID),
			zap.String("number", q.Number),
			zap.String("mode", string(q.Mode)),
			zap.String("consultant_id", q.ConsultantID),
		)
		u.notify(ctx, q, "new_quote", func(ctx context.Context, n interfaces.IQuoteNotifier) error {
			return n.NotifyNewQuote(ctx, q)
		})
		return q, nil
	}

	err = fmt.Errorf("create quote after %d attempts: %w", u.numberAttempts, lastErr)
	u.observe(entities.EventCreate, err)
	return entities.Quote{}, err
}

// loadQuote returns ErrQuoteNotFound for a missing quote.
func (u *QuoteUseCase) loadQuote(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	q, err := u.quotes.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, entities.PersistenceFailure("load quote", err)
	}
	if q.ID == "" {
		return entities.Quote{}, entities.ErrQuoteNotFound
	}
	return q, nil
}

func (u *QuoteUseCase) Get(ctx context.Context, caller entities.User, id string) (entities.Quote, error) {
	if err := checkCaller(caller); err != nil {
		return entities.Quote{}, err
	}
	q, err := u.loadQuote(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if !entities.CanView(caller, q) {
		return entities.Quote{}, ErrQuoteNotVisible
	}
	return q, nil
}

func (u *QuoteUseCase) List(ctx context.Context, caller entities.User, filter entities.QuoteFilter, page entities.Page) (entities.PageResult[entities.Quote], error) {
	if err := checkCaller(caller); err != nil {
		return entities.PageResult[entities.Quote]{}, err
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return entities.PageResult[entities.Quote]{}, entities.NewValidationError("status", "unknown status")
	}
	if filter.Mode != "" && !filter.Mode.IsValid() {
		return entities.PageResult[entities.Quote]{}, entities.NewValidationError("mode", "unknown transport mode")
	}

	page = entities.NewPage(page.Number, page.Size)
	items, total, err := u.quotes.Search(ctx, filter.ForCaller(caller), page)
	if err != nil {
		return entities.PageResult[entities.Quote]{}, entities.PersistenceFailure("search quotes", err)
	}
	if items == nil {
		items = []entities.Quote{}
	}
	return entities.NewPageResult(items, total, page), nil
}

func (u *QuoteUseCase) Statistics(ctx context.Context, caller entities.User) (entities.QuoteStatistics, error) {
	if err := checkCaller(caller); err != nil {
		return entities.QuoteStatistics{}, err
	}

	counts, err := u.quotes.Count(ctx, entities.QuoteFilter{}.ForCaller(caller))
	if err != nil {
		return entities.QuoteStatistics{}, entities.PersistenceFailure("count quotes", err)
	}

	base := entities.NewQuoteCounts()
	for s, n := range counts.ByStatus {
		base.ByStatus[s] = n
	}
	for m, n := range counts.ByMode {
		base.ByMode[m] = n
	}
	stats := entities.QuoteStatistics{
		Total:    counts.Total,
		ByStatus: base.ByStatus,
		ByMode:   base.ByMode,
	}
	if caller.Role == entities.RoleConsultor {
		return stats, nil
	}

	stats.ByOperator = make(map[string]int64, len(counts.ByOperator))
	for operatorID, n := range counts.ByOperator {
		if n <= 0 {
			continue
		}
		stats.ByOperator[u.displayName(ctx, operatorID, nil)] += n
	}
	return stats, nil
}

// displayName resolves a user name, falling back to the id. cache may be nil.
func (u *QuoteUseCase) displayName(ctx context.Context, userID string, cache map[string]string) string {
	if userID == "" {
		return ""
	}
	if name, ok := cache[userID]; ok {
		return name
	}
	name := userID
	if usr, err := u.users.GetByID(ctx, userID); err != nil {
		u.log.Warn("resolve user name", zap.String("user_id", userID), zap.Error(err))
	} else if usr.ID != "" && usr.Name != "" {
		name = usr.Name
	}
	if cache != nil {
		cache[userID] = name
	}
	return name
}

func (u *QuoteUseCase) History(ctx context.Context, caller entities.User, id string) ([]entities.HistoryEntry, error) {
	if err := checkCaller(caller); err != nil {
		return nil, err
	}
	q, err := u.loadQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entities.CanViewHistory(caller, q) {
		return nil, ErrQuoteNotVisible
	}

	entries, err := u.quotes.ListHistory(ctx, q.ID)
	if err != nil {
		return nil, entities.PersistenceFailure("list history", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})

	names := map[string]string{}
	for i := range entries {
		entries[i].ActorName = u.displayName(ctx, entries[i].ActorID, names)
	}
	if entries == nil {
		entries = []entities.HistoryEntry{}
	}
	return entries, nil
}

var operatorRoles = []entities.Role{entities.RoleOperador, entities.RoleGerente, entities.RoleAdministrador}

// ListOperators returns the active users a quote can be reassigned to.
func (u *QuoteUseCase) ListOperators(ctx context.Context, caller entities.User) ([]entities.User, error) {
	if err := checkCaller(caller); err != nil {
		return nil, err
	}
	if !caller.Role.IsSupervisor() {
		return nil, ErrSupervisorOnly
	}

	users, err := u.users.ListByRoles(ctx, operatorRoles)
	if err != nil {
		return nil, entities.PersistenceFailure("list operators", err)
	}
	out := make([]entities.User, 0, len(users))
	for _, usr := range users {
		if usr.Active {
			out = append(out, usr)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// observe records a command outcome when metrics are wired.
func (u *QuoteUseCase) observe(event entities.QuoteEvent, err error) {
	if u.metrics == nil {
		return
	}
	u.metrics.ObserveTransition(event, outcomeOf(err))
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, entities.ErrValidation):
		return "validation"
	case errors.Is(err, entities.ErrPermission):
		return "permission"
	case errors.Is(err, entities.ErrStateConflict):
		return "conflict"
	case errors.Is(err, entities.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// notify hands the quote to the notifier. Failures are logged only.
func (u *QuoteUseCase) notify(ctx context.Context, q entities.Quote, kind string, send func(context.Context, interfaces.IQuoteNotifier) error) {
	if u.notifier == nil {
		return
	}
	if err := send(ctx, u.notifier); err != nil {
		u.log.Warn("quote notification failed",
			zap.String("kind", kind),
			zap.String("quote_id", q.ID),
			zap.String("number", q.Number),
			zap.Error(err),
		)
	}
}
