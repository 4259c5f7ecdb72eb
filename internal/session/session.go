package session

import "github.com/vbonduro/fruitchat/internal/domain"

// State tracks which intents have already been answered per fruit so the
// dispatcher can refuse repeats. Owned by a single conversation loop; not safe
// for concurrent use and never persisted.
type State struct {
	active  string
	history map[string]map[domain.Intent]struct{}
}

func New() *State {
	return &State{history: make(map[string]map[domain.Intent]struct{})}
}

// SetActiveFruit makes name the current subject and resets its history, so a
// fruit switch always starts with a clean slate.
func (s *State) SetActiveFruit(name string) {
	s.active = name
	s.history[name] = make(map[domain.Intent]struct{})
}

func (s *State) ActiveFruit() string {
	return s.active
}

func (s *State) HasAnswered(name string, intent domain.Intent) bool {
	_, ok := s.history[name][intent]
	return ok
}

func (s *State) MarkAnswered(name string, intent domain.Intent) {
	if s.history[name] == nil {
		s.history[name] = make(map[domain.Intent]struct{})
	}
	s.history[name][intent] = struct{}{}
}
