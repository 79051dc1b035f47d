package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryUsers is an in-memory UserStore used in tests and local runs.
// It enforces the same uniqueness rules as the Postgres schema.
type MemoryUsers struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[string]User)}
}

func (m *MemoryUsers) FindByEmail(_ context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MemoryUsers) FindByID(_ context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := u
	return &copied, nil
}

func (m *MemoryUsers) List(_ context.Context) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (m *MemoryUsers) Create(_ context.Context, n NewUser) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, n.Email) {
			return nil, ErrDuplicateEmail
		}
	}
	now := time.Now().UTC()
	u := User{
		ID:        uuid.New().String(),
		Email:     n.Email,
		Role:      n.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.users[u.ID] = u
	return &u, nil
}

func (m *MemoryUsers) Update(_ context.Context, id string, patch UserPatch) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Image != nil {
		u.Image = *patch.Image
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	u.UpdatedAt = time.Now().UTC()
	m.users[id] = u
	return &u, nil
}

func (m *MemoryUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

// MemoryAccounts is an in-memory AccountStore mirroring the Postgres
// uniqueness constraint on (provider, provider_account_id).
type MemoryAccounts struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{accounts: make(map[string]Account)}
}

func (m *MemoryAccounts) Find(_ context.Context, f AccountFilter) ([]Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []Account
	for _, a := range m.accounts {
		if f.Provider != "" && a.Provider != f.Provider {
			continue
		}
		if f.ProviderAccountID != "" && a.ProviderAccountID != f.ProviderAccountID {
			continue
		}
		if f.UserID != "" && a.UserID != f.UserID {
			continue
		}
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts, nil
}

func (m *MemoryAccounts) Create(_ context.Context, n NewAccount) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Provider == n.Provider && a.ProviderAccountID == n.ProviderAccountID {
			return nil, ErrDuplicateLink
		}
	}
	a := Account{
		ID:                uuid.New().String(),
		UserID:            n.UserID,
		Provider:          n.Provider,
		ProviderAccountID: n.ProviderAccountID,
		Type:              n.Type,
		AccessToken:       n.AccessToken,
		RefreshToken:      n.RefreshToken,
		CreatedAt:         time.Now().UTC(),
	}
	m.accounts[a.ID] = a
	return &a, nil
}

func (m *MemoryAccounts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return ErrNotFound
	}
	delete(m.accounts, id)
	return nil
}
