package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/schema"
)

// session pairs a controller with the lock that serialises its events.
type session struct {
	mu         sync.Mutex
	controller *form.Controller
	lastSeen   time.Time
}

// sessionStore keeps one controller per browser session in memory.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
	schema   *schema.Schema
	logger   logrus.FieldLogger
	ttl      time.Duration
	now      func() time.Time
}

func newSessionStore(s *schema.Schema, logger logrus.FieldLogger, ttl time.Duration) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		schema:   s,
		logger:   logger,
		ttl:      ttl,
		now:      time.Now,
	}
}

// get returns the session for id, creating one under a fresh id when id is
// unknown. The returned id is the one the client must keep.
func (s *sessionStore) get(id string) (string, *session, error) {
	if id != "" {
		s.mu.RLock()
		sess, ok := s.sessions[id]
		s.mu.RUnlock()
		if ok {
			s.touch(sess)
			return id, sess, nil
		}
	}

	id = uuid.NewString()
	controller, err := form.New(s.schema, form.WithLogger(s.logger.WithField("session", id)))
	if err != nil {
		return "", nil, err
	}
	sess := &session{controller: controller, lastSeen: s.now()}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	s.logger.WithField("session", id).Debug("session created")
	return id, sess, nil
}

func (s *sessionStore) touch(sess *session) {
	sess.mu.Lock()
	sess.lastSeen = s.now()
	sess.mu.Unlock()
}

// sweep drops sessions idle for longer than the store ttl.
func (s *sessionStore) sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *sessionStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
