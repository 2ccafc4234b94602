package userstore

import (
	"context"
	"fmt"
	"sync"

	tokenAuth "github.com/MrEthical07/tokenAuth"
	"github.com/google/uuid"
)

// Memory is an in-process UserStore.
type Memory struct {
	mu       sync.RWMutex
	byID     map[string]tokenAuth.User
	byHandle map[string]string
}

func NewMemory() *Memory {
	return &Memory{
		byID:     make(map[string]tokenAuth.User),
		byHandle: make(map[string]string),
	}
}

func (m *Memory) FindByHandle(_ context.Context, handle string) (*tokenAuth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byHandle[handle]
	if !ok {
		return nil, tokenAuth.ErrUserNotFound
	}
	u := m.byID[id]
	return &u, nil
}

func (m *Memory) FindByID(_ context.Context, id string) (*tokenAuth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.byID[id]
	if !ok {
		return nil, tokenAuth.ErrUserNotFound
	}
	return &u, nil
}

func (m *Memory) ExistsByHandle(_ context.Context, handle string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.byHandle[handle]
	return ok, nil
}

// Create stores a copy of user and writes the assigned id back into it.
func (m *Memory) Create(_ context.Context, user *tokenAuth.User) error {
	if user == nil {
		return fmt.Errorf("nil user")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byHandle[user.Handle]; ok {
		return fmt.Errorf("%w: %s", tokenAuth.ErrDuplicateHandle, user.Handle)
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if _, ok := m.byID[user.ID]; ok {
		return fmt.Errorf("user id %s already exists", user.ID)
	}

	m.byID[user.ID] = *user
	m.byHandle[user.Handle] = user.ID
	return nil
}

// Update replaces the stored record with the same id. It exists for admin
// tooling and tests that change status or role.
func (m *Memory) Update(_ context.Context, user tokenAuth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.byID[user.ID]
	if !ok {
		return tokenAuth.ErrUserNotFound
	}
	if old.Handle != user.Handle {
		if _, taken := m.byHandle[user.Handle]; taken {
			return fmt.Errorf("%w: %s", tokenAuth.ErrDuplicateHandle, user.Handle)
		}
		delete(m.byHandle, old.Handle)
		m.byHandle[user.Handle] = user.ID
	}
	m.byID[user.ID] = user
	return nil
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error {
	return nil
}
