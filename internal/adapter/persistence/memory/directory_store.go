package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/internal/usecase/interfaces"
)

var errDuplicateID = errors.New("duplicate id")

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

type UserStore struct {
	mu    sync.RWMutex
	users map[string]entities.User
}

var _ interfaces.IUserRepository = (*UserStore)(nil)

func NewUserStore(users ...entities.User) *UserStore {
	s := &UserStore{users: map[string]entities.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *UserStore) GetByID(_ context.Context, id string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[id], nil
}

func (s *UserStore) ListByRoles(_ context.Context, roles []entities.Role) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.User, 0)
	for _, u := range s.users {
		if slices.Contains(roles, u.Role) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *UserStore) Save(_ context.Context, u entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

type CompanyStore struct {
	mu        sync.RWMutex
	companies map[string]entities.Company
}

var _ interfaces.ICompanyRepository = (*CompanyStore)(nil)

func NewCompanyStore(companies ...entities.Company) *CompanyStore {
	s := &CompanyStore{companies: map[string]entities.Company{}}
	for _, c := range companies {
		s.companies[c.ID] = c
	}
	return s
}

func (s *CompanyStore) GetByID(_ context.Context, id string) (entities.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.companies[id], nil
}

func (s *CompanyStore) Save(_ context.Context, c entities.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[c.ID] = c
	return nil
}

type NotificationStore struct {
	mu    sync.Mutex
	items []entities.Notification
}

var _ interfaces.INotificationRepository = (*NotificationStore)(nil)

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{}
}

func (s *NotificationStore) Create(_ context.Context, n entities.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, n)
	return nil
}

// ListByRecipient returns newest first.
func (s *NotificationStore) ListByRecipient(_ context.Context, recipientID string, unreadOnly bool, limit int) ([]entities.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entities.Notification, 0)
	for i := len(s.items) - 1; i >= 0; i-- {
		n := s.items[i]
		if n.RecipientID != recipientID || (unreadOnly && n.Read) {
			continue
		}
		out = append(out, n)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *NotificationStore) CountUnread(_ context.Context, recipientID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, item := range s.items {
		if item.RecipientID == recipientID && !item.Read {
			n++
		}
	}
	return n, nil
}

func (s *NotificationStore) MarkRead(_ context.Context, recipientID, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id && s.items[i].RecipientID == recipientID {
			s.items[i].Read = true
			return true, nil
		}
	}
	return false, nil
}

func (s *NotificationStore) MarkAllRead(_ context.Context, recipientID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for i := range s.items {
		if s.items[i].RecipientID == recipientID && !s.items[i].Read {
			s.items[i].Read = true
			n++
		}
	}
	return n, nil
}
