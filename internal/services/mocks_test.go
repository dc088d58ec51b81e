package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/atlas-lingua/portal-service/internal/models"
	"github.com/atlas-lingua/portal-service/internal/repositories"
	"github.com/atlas-lingua/portal-service/internal/validator"
)

// mockKVStore is an in-memory stand-in for the relational key-value table.
type mockKVStore struct {
	mu   sync.RWMutex
	data map[string]json.RawMessage

	// setErr, when non-nil, fails Set calls whose key has this prefix.
	setErrPrefix string
	setErr       error
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{data: make(map[string]json.RawMessage)}
}

func (m *mockKVStore) Get(ctx context.Context, key string, dest any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.data[key]
	if !ok {
		return repositories.ErrKeyNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockKVStore) Set(ctx context.Context, key string, value any) error {
	if m.setErr != nil && strings.HasPrefix(key, m.setErrPrefix) {
		return m.setErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	return nil
}

func (m *mockKVStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *mockKVStore) GetByPrefix(ctx context.Context, prefix string) ([]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []json.RawMessage
	for k, v := range m.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockKVStore) keyCount(prefix string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			n++
		}
	}
	return n
}

func (m *mockKVStore) mustPut(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		panic(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
}

// mockIdentityProvider fakes the external auth provider.
type mockIdentityProvider struct {
	mu         sync.Mutex
	identities map[string]*models.Identity
	emails     map[string]string
	deleted    []string

	createErr error
	deleteErr error
	nextID    string
}

func newMockIdentityProvider() *mockIdentityProvider {
	return &mockIdentityProvider{
		identities: make(map[string]*models.Identity),
		emails:     make(map[string]string),
	}
}

func (m *mockIdentityProvider) ValidateToken(ctx context.Context, token string) (*models.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.identities[token]; ok {
		return id, nil
	}
	return nil, repositories.ErrInvalidToken
}

func (m *mockIdentityProvider) CreateIdentity(ctx context.Context, req repositories.CreateIdentityRequest) (*models.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	if _, exists := m.emails[req.Email]; exists {
		return nil, repositories.ErrIdentityConflict
	}
	id := m.nextID
	if id == "" {
		id = "identity-" + req.Email
	}
	identity := &models.Identity{
		ID:          id,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
	}
	m.identities[id] = identity
	m.emails[req.Email] = id
	return identity, nil
}

func (m *mockIdentityProvider) DeleteIdentity(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	if identity, ok := m.identities[id]; ok {
		delete(m.emails, identity.Email)
		delete(m.identities, id)
	}
	return nil
}

func (m *mockIdentityProvider) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.emails[email]
	return ok, nil
}

func (m *mockIdentityProvider) GetByID(ctx context.Context, id string) (*models.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if identity, ok := m.identities[id]; ok {
		return identity, nil
	}
	return nil, errors.New("identity not found")
}

// mockRepository aggregates the mocks behind the Repository interface.
type mockRepository struct {
	kv       *mockKVStore
	identity *mockIdentityProvider
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		kv:       newMockKVStore(),
		identity: newMockIdentityProvider(),
	}
}

func (m *mockRepository) KV() repositories.KVStore                { return m.kv }
func (m *mockRepository) Identity() repositories.IdentityProvider { return m.identity }
func (m *mockRepository) Ping(ctx context.Context) error          { return nil }
func (m *mockRepository) Close() error                            { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testValidator() *validator.Validator {
	return validator.New()
}
