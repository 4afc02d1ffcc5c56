package server

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/umputun/gamegraf/pkg/view"
)

// sessionStore keeps one shell per page load. Entries expire after ttl or get evicted
// when the store is full; either way the shell is closed and its fetch stops.
type sessionStore struct {
	cache *expirable.LRU[string, *view.Shell]
}

func newSessionStore(size int, ttl time.Duration) *sessionStore {
	if size < 1 {
		size = 1
	}
	onEvict := func(sid string, shell *view.Shell) {
		log.Printf("[DEBUG] session %s closed", sid)
		shell.Close()
	}
	return &sessionStore{cache: expirable.NewLRU[string, *view.Shell](size, onEvict, ttl)}
}

// add registers shell under a new session id
func (s *sessionStore) add(shell *view.Shell) string {
	sid := uuid.NewString()
	s.cache.Add(sid, shell)
	return sid
}

// get returns a live shell, refreshing its position in the lru
func (s *sessionStore) get(sid string) (*view.Shell, bool) {
	if _, err := uuid.Parse(sid); err != nil {
		return nil, false
	}
	return s.cache.Get(sid)
}

func (s *sessionStore) len() int { return s.cache.Len() }

// purge closes all shells
func (s *sessionStore) purge() { s.cache.Purge() }
