package appstate

import "sync"

// Observer is notified with the new state after every Set.
type Observer func(State)

// Store owns the current State. It is constructed explicitly and passed to the
// layers that need it. Writes are expected from a single goroutine (the UI
// update loop); the mutex only keeps readers on other goroutines safe.
type Store struct {
	mu        sync.Mutex
	current   State
	gen       uint64
	nextID    uint64
	observers []subscription
}

type subscription struct {
	id uint64
	fn Observer
}

// NewStore returns a store holding initial, or Start when initial is nil.
func NewStore(initial State) *Store {
	if initial == nil {
		initial = Start{}
	}
	return &Store{current: initial}
}

// Get returns the current state.
func (s *Store) Get() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Generation increases by one on every Set. Async work records it when issued
// and compares on completion to detect that the user has moved on.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Set replaces the current state and synchronously notifies every observer
// subscribed at the time of the call, in subscription order. Any case may
// follow any case.
func (s *Store) Set(next State) {
	s.mu.Lock()
	s.current = next
	s.gen++
	observers := make([]subscription, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.fn(next)
	}
}

// Subscribe registers fn and returns a function that removes it. Calling the
// returned function more than once is a no-op.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, o := range s.observers {
				if o.id == id {
					s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}
