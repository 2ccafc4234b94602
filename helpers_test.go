package tokenAuth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/MrEthical07/tokenAuth/password"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	mu       sync.Mutex
	byID     map[string]*User
	byHandle map[string]string
	nextID   int
	creates  int
	err      error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:     make(map[string]*User),
		byHandle: make(map[string]string),
	}
}

func (s *fakeUserStore) FindByHandle(_ context.Context, handle string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	id, ok := s.byHandle[handle]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *s.byID[id]
	return &u, nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) ExistsByHandle(_ context.Context, handle string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.byHandle[handle]
	return ok, nil
}

func (s *fakeUserStore) Create(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.byHandle[u.Handle]; ok {
		return ErrDuplicateHandle
	}
	s.creates++
	s.nextID++
	u.ID = fmt.Sprintf("user-%d", s.nextID)
	cp := *u
	s.byID[u.ID] = &cp
	s.byHandle[u.Handle] = u.ID
	return nil
}

func (s *fakeUserStore) setStatus(id string, status UserStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[id].Status = status
}

func (s *fakeUserStore) setRole(id string, role Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[id].Role = role
}

func (s *fakeUserStore) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.byID[id]; ok {
		delete(s.byHandle, u.Handle)
		delete(s.byID, id)
	}
}

func (s *fakeUserStore) createCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates
}

type pingingUserStore struct {
	*fakeUserStore
	pingErr error
}

func (s pingingUserStore) Ping(context.Context) error { return s.pingErr }

var errUserStoreDown = errors.New("connection refused")

type engineFixture struct {
	engine *Engine
	users  *fakeUserStore
	redis  *miniredis.Miniredis
	logs   *observer.ObservedLogs
}

func testEngineConfig() Config {
	cfg := DefaultConfig()
	cfg.JWT.PrivateKey = []byte("0123456789abcdef0123456789abcdef")
	cfg.Metrics.Enabled = true
	return cfg
}

func newEngineFixture(t *testing.T, configure func(*Builder)) *engineFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	hasher, err := password.NewBcrypt(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hasher: %v", err)
	}

	core, logs := observer.New(zap.DebugLevel)
	users := newFakeUserStore()

	b := New().
		WithConfig(testEngineConfig()).
		WithRedis(rdb).
		WithUserStore(users).
		WithPasswordHasher(hasher).
		WithLogger(zap.New(core))
	if configure != nil {
		configure(b)
	}

	engine, err := b.Build()
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	t.Cleanup(engine.Close)

	return &engineFixture{engine: engine, users: users, redis: mr, logs: logs}
}

func (f *engineFixture) signup(t *testing.T, handle, pass string) AuthResult {
	t.Helper()
	res, err := f.engine.Signup(context.Background(), SignupInput{Handle: handle, Password: pass})
	if err != nil {
		t.Fatalf("signup %s: %v", handle, err)
	}
	return res
}

func (f *engineFixture) sessionExists(id string) bool {
	return f.redis.Exists(f.engine.sessionStore.Key(id))
}
