package memory

import (
	"context"
	"sync"

	"jobmatch/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps collections in process memory. Used by tests and ephemeral runs.
type Store struct {
	mu    sync.Mutex
	blobs map[string][]byte
	// failSave makes Save return the error for the named collection.
	failSave map[string]error
}

func NewStore() *Store {
	return &Store{blobs: make(map[string][]byte), failSave: make(map[string]error)}
}

func (s *Store) Load(_ context.Context, name string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, ok := s.blobs[name]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), blob...), true, nil
}

func (s *Store) Save(_ context.Context, name string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failSave[name]; err != nil {
		return err
	}
	s.blobs[name] = append([]byte(nil), blob...)
	return nil
}

// Put stores raw bytes, bypassing any failure injected with FailSave.
func (s *Store) Put(name string, blob []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[name] = append([]byte(nil), blob...)
}

// FailSave makes every following Save of name fail with err. A nil err clears it.
func (s *Store) FailSave(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failSave, name)
		return
	}
	s.failSave[name] = err
}
