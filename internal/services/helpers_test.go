package services

import (
	"sync"
	"testing"
	"time"

	"github.com/aawaaz/waterlogging-server/internal/storage"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	return storage.New(storage.NewMemoryKV(), zap.NewNop().Sugar())
}

var nopLogger = zap.NewNop().Sugar()
