package storage

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/eugenenazirov/cloakroom/internal/cloakroom"
)

var (
	// ErrUnknownKey indicates no outstanding key is registered under the token.
	ErrUnknownKey = errors.New("no key found for token")
	// ErrInvalidKey indicates a nil or already used key was offered for safekeeping.
	ErrInvalidKey = errors.New("key is missing or already used")
)

// KeyStore holds the keys of closed lockers on behalf of remote customers,
// who only ever see an opaque token.
type KeyStore interface {
	Put(key *cloakroom.Key) (string, error)
	Replace(token string, key *cloakroom.Key) error
	Take(token string) (*cloakroom.Key, error)
	LockerNumbers() []int
}

// MemoryKeyStore keeps keys in-memory and guards access with a RWMutex.
type MemoryKeyStore struct {
	mu      sync.RWMutex
	keys    map[string]*cloakroom.Key
	newUUID func() string
}

// NewMemoryKeyStore initialises an empty store issuing random UUID tokens.
func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{
		keys:    make(map[string]*cloakroom.Key),
		newUUID: uuid.NewString,
	}
}

// Put registers a key under a freshly generated token.
func (s *MemoryKeyStore) Put(key *cloakroom.Key) (string, error) {
	if !usable(key) {
		return "", ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.newUUID()
	for _, taken := s.keys[token]; taken; _, taken = s.keys[token] {
		token = s.newUUID()
	}
	s.keys[token] = key
	return token, nil
}

// Replace registers a key under a token the customer already holds.
func (s *MemoryKeyStore) Replace(token string, key *cloakroom.Key) error {
	if !usable(key) {
		return ErrInvalidKey
	}
	token = normalizeToken(token)
	if token == "" {
		return ErrUnknownKey
	}

	s.mu.Lock()
	s.keys[token] = key
	s.mu.Unlock()
	return nil
}

// Take removes and returns the key registered under token.
func (s *MemoryKeyStore) Take(token string) (*cloakroom.Key, error) {
	token = normalizeToken(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.keys[token]
	if !ok {
		return nil, ErrUnknownKey
	}
	delete(s.keys, token)
	return key, nil
}

// LockerNumbers returns the locker numbers with an outstanding key in ascending order.
// A locker number appears once per outstanding key.
func (s *MemoryKeyStore) LockerNumbers() []int {
	s.mu.RLock()
	out := make([]int, 0, len(s.keys))
	for _, key := range s.keys {
		out = append(out, key.LockerNumber())
	}
	s.mu.RUnlock()

	sort.Ints(out)
	return out
}

func usable(key *cloakroom.Key) bool {
	return key != nil && !key.Used()
}

func normalizeToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}
