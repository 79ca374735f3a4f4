package bot

import "sync"

type flow int

const (
	flowNone flow = iota
	flowRegister
	flowAddingTask
)

// conversationStore maps each user to its active flow. Every user also gets
// a dedicated lock that is held for the whole handling of one update, so
// concurrent webhook deliveries for the same user cannot race on flow state
// or on task list indices. Different users proceed independently.
type conversationStore struct {
	mu    sync.Mutex
	flows map[int64]flow
	locks map[int64]*sync.Mutex
}

func newConversationStore() *conversationStore {
	return &conversationStore{
		flows: make(map[int64]flow),
		locks: make(map[int64]*sync.Mutex),
	}
}

// userLock returns the serialization lock for a user, creating it on first use.
func (s *conversationStore) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

func (s *conversationStore) get(userID int64) flow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flows[userID]
}

func (s *conversationStore) set(userID int64, f flow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flows[userID] = f
}

func (s *conversationStore) clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, userID)
}
