package service

import "sync"

// userLocks serializes checkouts per user so two concurrent requests cannot
// both read the same cart and create two orders from it.
type userLocks struct {
	mu    sync.Mutex
	users map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{users: make(map[string]*userLock)}
}

func (l *userLocks) lock(userID string) {
	l.mu.Lock()
	entry, ok := l.users[userID]
	if !ok {
		entry = &userLock{}
		l.users[userID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

func (l *userLocks) unlock(userID string) {
	l.mu.Lock()
	entry := l.users[userID]
	entry.refs--
	if entry.refs == 0 {
		delete(l.users, userID)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}
