package deals

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{3661000 * time.Millisecond, "1h 1m 1s"},
		{-time.Millisecond, ExpiredLabel},
		{0, ExpiredLabel},
		{5000 * time.Millisecond, "5s"},
		{12*time.Minute + 5*time.Second, "12m 5s"},
		{3*time.Hour + 12*time.Minute + 5*time.Second, "3h 12m 5s"},
		{2 * time.Hour, "2h 0m 0s"},
		{999 * time.Millisecond, "0s"},
		{49*time.Hour + 1500*time.Millisecond, "49h 0m 1s"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatRemaining(tc.in), "duration %s", tc.in)
	}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newScheduler(t *testing.T, tick time.Duration) (*Scheduler, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewScheduler([]models.Deal{
		{ID: 1, Title: "Lightning", ProductIDs: []int{1, 4}, EndTime: clock.now.Add(3661 * time.Second)},
		{ID: 2, Title: "Gone", ProductIDs: []int{2}, EndTime: clock.now.Add(-time.Millisecond)},
	}, WithClock(clock.Now), WithTick(tick))
	t.Cleanup(s.Stop)
	return s, clock
}

func TestRemaining(t *testing.T) {
	s, clock := newScheduler(t, time.Hour)

	label, ok := s.Remaining(1)
	require.True(t, ok)
	assert.Equal(t, "1h 1m 1s", label)

	label, ok = s.Remaining(2)
	require.True(t, ok)
	assert.Equal(t, ExpiredLabel, label)

	_, ok = s.Remaining(99)
	assert.False(t, ok)

	clock.Advance(time.Hour)
	assert.Equal(t, Update{1: "1m 1s", 2: ExpiredLabel}, s.Snapshot())
}

func TestDeal_NotFound(t *testing.T) {
	s, _ := newScheduler(t, time.Hour)

	_, err := s.Deal(42)
	assert.True(t, errors.Is(err, ErrDealNotFound))

	d, err := s.Deal(1)
	require.NoError(t, err)
	assert.Equal(t, "Lightning", d.Title)
	assert.Equal(t, []int{1, 2}, []int{s.Deals()[0].ID, s.Deals()[1].ID})
}

func TestSubscribe_EmitsImmediatelyThenPerTick(t *testing.T) {
	s, _ := newScheduler(t, 5*time.Millisecond)

	var count atomic.Int32
	updates := make(chan Update, 64)
	cancel := s.Subscribe(func(u Update) {
		count.Add(1)
		select {
		case updates <- u:
		default:
		}
	})
	defer cancel()

	first := <-updates
	assert.Equal(t, "1h 1m 1s", first[1])
	assert.True(t, s.Ticking())

	require.Eventually(t, func() bool { return count.Load() >= 3 }, time.Second, time.Millisecond)
}

func TestSubscribe_StopsTickingWhenLastObserverLeaves(t *testing.T) {
	s, _ := newScheduler(t, 2*time.Millisecond)

	var a, b atomic.Int32
	cancelA := s.Subscribe(func(Update) { a.Add(1) })
	cancelB := s.Subscribe(func(Update) { b.Add(1) })

	require.Eventually(t, func() bool { return b.Load() >= 2 }, time.Second, time.Millisecond)

	cancelA()
	assert.True(t, s.Ticking())
	cancelA() // idempotente

	cancelB()
	assert.False(t, s.Ticking())

	// un tick en vuelo puede terminar de entregarse
	time.Sleep(5 * time.Millisecond)
	frozen := b.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, frozen, b.Load())
}

func TestSubscribe_RestartsAfterIdle(t *testing.T) {
	s, _ := newScheduler(t, 2*time.Millisecond)

	s.Subscribe(func(Update) {})()
	assert.False(t, s.Ticking())

	var n atomic.Int32
	cancel := s.Subscribe(func(Update) { n.Add(1) })
	defer cancel()

	assert.True(t, s.Ticking())
	require.Eventually(t, func() bool { return n.Load() >= 2 }, time.Second, time.Millisecond)
}

func TestStop_ReleasesObservers(t *testing.T) {
	s, _ := newScheduler(t, 2*time.Millisecond)

	var n atomic.Int32
	s.Subscribe(func(Update) { n.Add(1) })
	s.Stop()
	assert.False(t, s.Ticking())

	time.Sleep(5 * time.Millisecond)
	frozen := n.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, frozen, n.Load())

	// después de Stop no se emite nada
	var late atomic.Int32
	s.Subscribe(func(Update) { late.Add(1) })()
	assert.Zero(t, late.Load())
	assert.False(t, s.Ticking())
}

func TestNewScheduler_Defaults(t *testing.T) {
	s := NewScheduler(nil, WithTick(0), WithClock(nil))
	assert.Equal(t, DefaultTick, s.Tick())
	assert.Empty(t, s.Snapshot())
	assert.Panics(t, func() { s.Subscribe(nil) })
}
