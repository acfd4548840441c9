package service

import (
	"context"
	"testing"
	"time"

	"bedrot-sim/internal/wizard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager(t *testing.T) (*SessionManager, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := NewSessionManager(zaptest.NewLogger(t))
	m.now = clock.now
	return m, clock
}

func TestSessionLifecycle(t *testing.T) {
	m, _ := newTestManager(t)

	id, st := m.Create()
	require.NotEmpty(t, id)
	assert.Equal(t, 1, m.Len())

	st.SetSingle(models.CategoryBase, "Dark Grey")

	got, err := m.Get(id)
	require.NoError(t, err)
	assert.Same(t, st, got)
	assert.Equal(t, "Dark Grey", got.Snapshot().Base)

	assert.True(t, m.Delete(id))
	assert.False(t, m.Delete(id))

	_, err = m.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionsAreIsolated(t *testing.T) {
	m, _ := newTestManager(t)

	idA, a := m.Create()
	idB, b := m.Create()
	require.NotEqual(t, idA, idB)

	a.AddBounded(models.CategoryFlavors, "Kindle")
	assert.Empty(t, b.Snapshot().Flavors)
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	m, clock := newTestManager(t)

	idle, _ := m.Create()
	clock.advance(30 * time.Minute)
	active, _ := m.Create()
	clock.advance(45 * time.Minute)

	_, err := m.Get(active)
	require.NoError(t, err)
	clock.advance(20 * time.Minute)

	removed := m.Sweep(time.Hour)
	assert.Equal(t, 1, removed)

	_, err = m.Get(idle)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(active)
	assert.NoError(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	m, _ := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Run(ctx, time.Millisecond, time.Hour)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
