package inmemory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ayadlabs/propchat/models"
	"github.com/ayadlabs/propchat/session"
)

type Store struct {
	sessions map[string]*session.State
	mu       sync.RWMutex
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*session.State)}
}

func (store *Store) Ensure(ctx context.Context, id string) (*session.State, error) {
	if id == "" {
		id = uuid.NewString()
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if state, ok := store.sessions[id]; ok {
		return state.Clone(), nil
	}

	state := session.NewState(id)
	store.sessions[id] = state
	return state.Clone(), nil
}

func (store *Store) Get(ctx context.Context, id string) (*session.State, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	state, ok := store.sessions[id]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	return state.Clone(), nil
}

func (store *Store) Save(ctx context.Context, state *session.State) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.sessions[state.ID] = state.Clone()
	return nil
}

func (store *Store) Reset(ctx context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.sessions, id)
	return nil
}
