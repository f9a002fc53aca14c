package auth_test

import (
	"context"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/mock"

	auth "github.com/ftechlab/playauth"
)

func errNotFound() error {
	return goerrors.New("account not found", goerrors.CategoryNotFound).
		WithCode(goerrors.CodeNotFound)
}

// MockCredentialStore implements auth.CredentialStore
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) VerifyCredentials(ctx context.Context, email, password string) (auth.Identity, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(auth.Identity), args.Error(1)
}

// MockTokenSessions implements auth.TokenSessions
type MockTokenSessions struct {
	mock.Mock
}

func (m *MockTokenSessions) Put(ctx context.Context, refreshID, refreshToken string) error {
	args := m.Called(ctx, refreshID, refreshToken)
	return args.Error(0)
}

func (m *MockTokenSessions) Get(ctx context.Context, refreshID string) (string, error) {
	args := m.Called(ctx, refreshID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenSessions) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// memSessions is an in-memory TokenSessions for flows that need real
// put/get behavior.
type memSessions struct {
	mu      sync.Mutex
	entries map[string]string
	created map[string]time.Time
}

var _ auth.TokenSessions = (*memSessions)(nil)

func newMemSessions() *memSessions {
	return &memSessions{
		entries: map[string]string{},
		created: map[string]time.Time{},
	}
}

func (s *memSessions) Put(_ context.Context, refreshID, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[refreshID]; ok {
		return nil
	}
	s.entries[refreshID] = refreshToken
	s.created[refreshID] = time.Now()
	return nil
}

func (s *memSessions) Get(_ context.Context, refreshID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.entries[refreshID]
	if !ok {
		return "", auth.ErrSessionNotFound
	}
	return token, nil
}

func (s *memSessions) DeleteCreatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for id, at := range s.created {
		if at.Before(cutoff) {
			delete(s.entries, id)
			delete(s.created, id)
			deleted++
		}
	}
	return deleted, nil
}

// memAccounts is an in-memory auth.Accounts for controller tests.
type memAccounts struct {
	mu     sync.Mutex
	nextID int64
	byMail map[string]*auth.Account
}

var _ auth.Accounts = (*memAccounts)(nil)

func newMemAccounts() *memAccounts {
	return &memAccounts{nextID: 1, byMail: map[string]*auth.Account{}}
}

func (s *memAccounts) Create(_ context.Context, record *auth.Account) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byMail[record.Email]; ok {
		return nil, auth.ErrAccountExists
	}
	record.ID = s.nextID
	s.nextID++
	record.CreatedAt = time.Now()
	s.byMail[record.Email] = record
	return record, nil
}

func (s *memAccounts) GetByEmail(_ context.Context, email string) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.byMail[email]
	if !ok {
		return nil, errNotFound()
	}
	return record, nil
}
