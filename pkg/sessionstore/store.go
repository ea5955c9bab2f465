package sessionstore

import (
	"sync"

	"github.com/dmitrymomot/sessionkit/pkg/apiclient"
)

// State is the session lifecycle state.
//
// Unknown is entered once at process start and left exactly once, when the
// startup bootstrap completes. After that the store only cycles between
// Authenticated and Anonymous.
type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Subscriber receives the state and user snapshot after every mutation.
type Subscriber func(state State, user *apiclient.User)

// Store is the process-wide reactive holder of the current user. It is the
// single authoritative "who is logged in" answer for the UI; the only
// mutator is the session manager.
//
// Concurrent mutations are last-writer-wins: whichever operation completes
// last determines the final value. No transaction spans multiple calls.
type Store struct {
	mu     sync.RWMutex
	state  State
	user   *apiclient.User
	nextID int
	subs   map[int]Subscriber
}

// New creates a store in the Unknown state with no user.
func New() *Store {
	return &Store{
		state: StateUnknown,
		subs:  make(map[int]Subscriber),
	}
}

// Set replaces the current user snapshot atomically and transitions the
// store to Authenticated.
func (s *Store) Set(user *apiclient.User) {
	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = user.Clone()
	subs, state, snapshot := s.snapshotLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(state, snapshot)
	}
}

// Clear drops the current user and transitions the store to Anonymous.
func (s *Store) Clear() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.user = nil
	subs, state, snapshot := s.snapshotLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(state, snapshot)
	}
}

// Current returns the user snapshot and whether one is resident.
func (s *Store) Current() (*apiclient.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone(), s.user != nil
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reports whether a user is resident.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateAuthenticated && s.user != nil
}

// Subscribe registers a subscriber invoked after every mutation. The
// returned function unregisters it. Callbacks run on the mutating
// goroutine, outside the store lock.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotLocked() ([]Subscriber, State, *apiclient.User) {
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs, s.state, s.user.Clone()
}
