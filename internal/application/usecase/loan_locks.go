package usecase

import "sync"

// loanLocks serializes mutating operations per loan ID so that concurrent
// payments against the same loan allocate one at a time. The repository's
// optimistic lock still backstops writers on other instances.
type loanLocks struct {
	mu    sync.Mutex
	locks map[string]*loanLock
}

type loanLock struct {
	mu   sync.Mutex
	refs int
}

func newLoanLocks() *loanLocks {
	return &loanLocks{locks: make(map[string]*loanLock)}
}

// acquire blocks until the lock for loanID is held and returns the release
// function. Locks are reference counted and removed once idle.
func (l *loanLocks) acquire(loanID string) func() {
	l.mu.Lock()
	lk, ok := l.locks[loanID]
	if !ok {
		lk = &loanLock{}
		l.locks[loanID] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.mu.Lock()

	return func() {
		lk.mu.Unlock()
		l.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(l.locks, loanID)
		}
		l.mu.Unlock()
	}
}
