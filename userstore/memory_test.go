package userstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	tokenAuth "github.com/MrEthical07/tokenAuth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ tokenAuth.UserStore = (*Memory)(nil)
var _ tokenAuth.Pinger = (*Memory)(nil)

func TestMemoryCreateAssignsUUID(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	u := &tokenAuth.User{Handle: "alice", Status: tokenAuth.StatusActive, Role: tokenAuth.RoleUser}
	require.NoError(t, m.Create(ctx, u))
	_, err := uuid.Parse(u.ID)
	require.NoError(t, err)

	got, err := m.FindByHandle(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	byID, err := m.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Handle)

	exists, err := m.ExistsByHandle(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryNotFoundAndDuplicate(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.FindByHandle(ctx, "ghost")
	assert.ErrorIs(t, err, tokenAuth.ErrUserNotFound)
	_, err = m.FindByID(ctx, "ghost")
	assert.ErrorIs(t, err, tokenAuth.ErrUserNotFound)

	require.NoError(t, m.Create(ctx, &tokenAuth.User{Handle: "alice"}))
	err = m.Create(ctx, &tokenAuth.User{Handle: "alice"})
	assert.True(t, errors.Is(err, tokenAuth.ErrDuplicateHandle), "got %v", err)
}

func TestMemoryReturnsCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	u := &tokenAuth.User{Handle: "alice", Role: tokenAuth.RoleUser}
	require.NoError(t, m.Create(ctx, u))

	got, err := m.FindByID(ctx, u.ID)
	require.NoError(t, err)
	got.Role = tokenAuth.RoleAdmin

	again, err := m.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, tokenAuth.RoleUser, again.Role)
}

func TestMemoryUpdate(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	u := &tokenAuth.User{Handle: "alice", Status: tokenAuth.StatusActive}
	require.NoError(t, m.Create(ctx, u))

	updated := *u
	updated.Status = tokenAuth.StatusSuspended
	updated.Handle = "alice2"
	require.NoError(t, m.Update(ctx, updated))

	got, err := m.FindByHandle(ctx, "alice2")
	require.NoError(t, err)
	assert.Equal(t, tokenAuth.StatusSuspended, got.Status)
	_, err = m.FindByHandle(ctx, "alice")
	assert.ErrorIs(t, err, tokenAuth.ErrUserNotFound)

	assert.ErrorIs(t, m.Update(ctx, tokenAuth.User{ID: "missing"}), tokenAuth.ErrUserNotFound)
}

func TestMemoryConcurrentCreateSameHandle(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := m.Create(ctx, &tokenAuth.User{Handle: "race"}); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
}
