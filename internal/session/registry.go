package session

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Registry keeps the running sessions in memory.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	rnd      *rand.Rand
}

func NewRegistry(r *rand.Rand) *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		rnd:      r,
	}
}

// Create starts a new session with its own random source split off the
// registry's.
func (reg *Registry) Create(opts Options) (*Session, error) {
	reg.mu.Lock()
	r := rand.New(rand.NewPCG(reg.rnd.Uint64(), reg.rnd.Uint64()))
	reg.mu.Unlock()

	s, err := New(opts, r)
	if err != nil {
		return nil, err
	}

	reg.mu.Lock()
	reg.sessions[s.ID] = s
	reg.mu.Unlock()
	return s, nil
}

func (reg *Registry) Get(id uuid.UUID) (*Session, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	s, ok := reg.sessions[id]
	return s, ok
}

func (reg *Registry) Delete(id uuid.UUID) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.sessions, id)
}

func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.sessions)
}

// Sweep drops sessions idle for longer than ttl and returns how many went.
func (reg *Registry) Sweep(now time.Time, ttl time.Duration) int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	n := 0
	for id, s := range reg.sessions {
		if s.idle(now) > ttl {
			delete(reg.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (reg *Registry) Run(ctx context.Context, interval, ttl time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if n := reg.Sweep(now, ttl); n > 0 {
				Log.WithFields(logrus.Fields{
					"evicted": n,
					"left":    reg.Len(),
				}).Info("swept idle sessions")
			}
		}
	}
}
