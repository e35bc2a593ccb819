package entities

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// QuoteEvent names an edge of the quote lifecycle.
type QuoteEvent string

const (
	EventCreate          QuoteEvent = "criar"
	EventOperatorAccept  QuoteEvent = "aceitar_operador"
	EventSendQuote       QuoteEvent = "enviar_cotacao"
	EventCustomerAccept  QuoteEvent = "aceitar_consultor"
	EventCustomerDecline QuoteEvent = "negar_consultor"
	EventFinalize        QuoteEvent = "finalizar"
	EventReassign        QuoteEvent = "reatribuir"
)

type transitionGuard func(caller User, q Quote) bool

// transitionRule is one row of the guard table. An empty from set accepts any
// current status and an empty to keeps the status untouched.
type transitionRule struct {
	from  []QuoteStatus
	to    QuoteStatus
	guard transitionGuard
}

func guardOperator(caller User, _ Quote) bool {
	return caller.Role.CanOperate()
}

func guardAssignedOperator(caller User, q Quote) bool {
	return caller.Role.IsSupervisor() || (caller.Role == RoleOperador && q.IsAssignedTo(caller.ID))
}

func guardOwningConsultant(caller User, q Quote) bool {
	return caller.Role.IsSupervisor() || (caller.ID != "" && caller.ID == q.ConsultantID)
}

func guardSupervisor(caller User, _ Quote) bool {
	return caller.Role.IsSupervisor()
}

var transitionRules = map[QuoteEvent]transitionRule{
	EventOperatorAccept: {
		from:  []QuoteStatus{QuoteStatusSolicitada},
		to:    QuoteStatusAceitaOperador,
		guard: guardOperator,
	},
	EventSendQuote: {
		from:  []QuoteStatus{QuoteStatusAceitaOperador},
		to:    QuoteStatusCotacaoEnviada,
		guard: guardAssignedOperator,
	},
	EventCustomerAccept: {
		from:  []QuoteStatus{QuoteStatusCotacaoEnviada},
		to:    QuoteStatusAceitaConsultor,
		guard: guardOwningConsultant,
	},
	EventCustomerDecline: {
		from:  []QuoteStatus{QuoteStatusCotacaoEnviada},
		to:    QuoteStatusNegadaConsultor,
		guard: guardOwningConsultant,
	},
	EventFinalize: {
		from:  []QuoteStatus{QuoteStatusCotacaoEnviada, QuoteStatusAceitaConsultor, QuoteStatusNegadaConsultor},
		to:    QuoteStatusFinalizada,
		guard: guardAssignedOperator,
	},
	EventReassign: {
		guard: guardSupervisor,
	},
}

// Transition describes a committed lifecycle step. It is the input for the
// matching history entry and notification.
type Transition struct {
	Event   QuoteEvent
	From    QuoteStatus
	To      QuoteStatus
	ActorID string
	Note    string
	At      time.Time
}

// CanCreateQuote gates the creation event.
func CanCreateQuote(caller User) error {
	if !caller.Role.CanRequest() {
		return fmt.Errorf("%w: role %q cannot request quotes", ErrPermission, caller.Role)
	}
	return nil
}

// CheckTransition evaluates the guard first and then the from set, without
// mutating the quote.
func (q Quote) CheckTransition(caller User, event QuoteEvent) error {
	rule, ok := transitionRules[event]
	if !ok {
		return fmt.Errorf("%w: unknown event %q", ErrStateConflict, event)
	}
	if !rule.guard(caller, q) {
		return fmt.Errorf("%w: %s not allowed for role %q", ErrPermission, event, caller.Role)
	}
	if len(rule.from) > 0 && !slices.Contains(rule.from, q.Status) {
		return fmt.Errorf("%w: cannot %s a quote in status %q", ErrStateConflict, event, q.Status)
	}
	return nil
}

// apply moves the quote along a table edge. mutate runs only after the guard
// and the from set passed, so a failed call leaves q untouched.
func (q *Quote) apply(caller User, event QuoteEvent, note string, now time.Time, mutate func(at time.Time)) (Transition, error) {
	if err := q.CheckTransition(caller, event); err != nil {
		return Transition{}, err
	}
	rule := transitionRules[event]

	at := now
	if latest := q.latestStamp(); at.Before(latest) {
		at = latest
	}

	from := q.Status
	if mutate != nil {
		mutate(at)
	}
	if rule.to != "" {
		q.Status = rule.to
	}
	q.UpdatedAt = at

	return Transition{
		Event:   event,
		From:    from,
		To:      q.Status,
		ActorID: caller.ID,
		Note:    note,
		At:      at,
	}, nil
}

func stamp(at time.Time) *time.Time {
	t := at
	return &t
}

// AcceptByOperator takes a quote from the open pool and assigns it to the
// caller.
func (q *Quote) AcceptByOperator(caller User, note string, now time.Time) (Transition, error) {
	if strings.TrimSpace(note) == "" {
		note = fmt.Sprintf("Cotação aceita pelo operador %s", caller.Name)
	}
	return q.apply(caller, EventOperatorAccept, note, now, func(at time.Time) {
		q.OperatorID = caller.ID
		q.OperatorAcceptedAt = stamp(at)
	})
}

// SendQuote records the operator's priced response. providerCompanyID is
// optional.
func (q *Quote) SendQuote(caller User, resp QuoteResponse, providerCompanyID string, now time.Time) (Transition, error) {
	if err := q.CheckTransition(caller, EventSendQuote); err != nil {
		return Transition{}, err
	}
	if err := resp.Validate(); err != nil {
		return Transition{}, err
	}
	note := fmt.Sprintf("Valor: R$ %s, Prazo: %d dias.", resp.FreightValue.StringFixed(2), resp.LeadTimeDays)
	if n := strings.TrimSpace(resp.Notes); n != "" {
		note += " " + n
	}
	return q.apply(caller, EventSendQuote, note, now, func(at time.Time) {
		r := resp
		q.Response = &r
		q.ProviderCompanyID = providerCompanyID
		q.QuotedAt = stamp(at)
	})
}

func (q *Quote) CustomerAccept(caller User, note string, now time.Time) (Transition, error) {
	if strings.TrimSpace(note) == "" {
		note = "Cotação aprovada pelo cliente"
	}
	return q.apply(caller, EventCustomerAccept, note, now, func(at time.Time) {
		q.CustomerRespondedAt = stamp(at)
	})
}

func (q *Quote) CustomerDecline(caller User, note string, now time.Time) (Transition, error) {
	if strings.TrimSpace(note) == "" {
		note = "Cotação recusada pelo cliente"
	}
	return q.apply(caller, EventCustomerDecline, note, now, func(at time.Time) {
		q.CustomerRespondedAt = stamp(at)
	})
}

func (q *Quote) Finalize(caller User, note string, now time.Time) (Transition, error) {
	if strings.TrimSpace(note) == "" {
		note = "Cotação marcada como finalizada"
	}
	return q.apply(caller, EventFinalize, note, now, func(at time.Time) {
		q.FinalizedAt = stamp(at)
	})
}

// Reassign hands the quote to another operator without touching its status.
// previousName is the display name of the operator being replaced, if any.
func (q *Quote) Reassign(caller User, target User, previousName string, now time.Time) (Transition, error) {
	if err := q.CheckTransition(caller, EventReassign); err != nil {
		return Transition{}, err
	}
	if !target.Active || !target.Role.CanOperate() {
		return Transition{}, NewValidationError("operator_id", "target user cannot operate quotes")
	}
	if strings.TrimSpace(previousName) == "" {
		previousName = "N/A"
	}
	note := fmt.Sprintf("Cotação reatribuída de %s para %s", previousName, target.Name)
	return q.apply(caller, EventReassign, note, now, func(time.Time) {
		q.OperatorID = target.ID
	})
}
