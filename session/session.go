package session

import (
	"context"
)

type StoreType string

const (
	InMemoryStore StoreType = "inmemory"
	RedisStore    StoreType = "redis"
)

// Turn is a single exchange within a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// State holds everything remembered about one conversation.
type State struct {
	ID          string            `json:"id"`
	Preferences map[string]string `json:"preferences"`
	History     []Turn            `json:"history"`
	TurnCount   int               `json:"turn_count"`
}

func NewState(id string) *State {
	return &State{ID: id, Preferences: make(map[string]string)}
}

// MergePreferences copies non-empty values into the state's preference map.
// Existing keys are overwritten only by non-empty updates, so a later turn
// never erases a preference by omission.
func (s *State) MergePreferences(updates map[string]string) {
	if s.Preferences == nil {
		s.Preferences = make(map[string]string)
	}
	for k, v := range updates {
		if v != "" {
			s.Preferences[k] = v
		}
	}
}

func (s *State) AppendTurn(role, content string) {
	s.History = append(s.History, Turn{Role: role, Content: content})
}

// Clone returns a deep copy so a turn can be assembled without mutating the
// stored state until the turn succeeds.
func (s *State) Clone() *State {
	cp := &State{ID: s.ID, TurnCount: s.TurnCount}
	cp.Preferences = make(map[string]string, len(s.Preferences))
	for k, v := range s.Preferences {
		cp.Preferences[k] = v
	}
	cp.History = append([]Turn(nil), s.History...)
	return cp
}

// Store persists conversation state keyed by session id.
type Store interface {
	// Ensure returns the state for id, creating an empty one if absent.
	Ensure(ctx context.Context, id string) (*State, error)
	// Get returns the state for id or models.ErrSessionNotFound.
	Get(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, state *State) error
	Reset(ctx context.Context, id string) error
}
