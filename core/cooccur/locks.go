package cooccur

import "sync"

// rowLocks guards concurrent increments into the shared count matrix, one
// mutex per matrix row. Workers take at most one lock at a time, so lock
// ordering cannot deadlock.
type rowLocks []*sync.Mutex

func newRowLocks(n int) rowLocks {
	locks := make(rowLocks, n)
	for i := range locks {
		locks[i] = &sync.Mutex{}
	}
	return locks
}
