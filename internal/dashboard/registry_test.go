package dashboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_GetReusesController(t *testing.T) {
	created := 0
	r := NewRegistry(time.Hour, func(string) *Controller {
		created++
		return New(&fakeService{}, nil, Options{})
	})

	a := r.Get("s1")
	b := r.Get("s1")
	r.Get("s2")

	assert.Same(t, a, b)
	assert.Equal(t, 2, created)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_SweepClosesIdle(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewRegistry(10*time.Minute, func(string) *Controller { return New(&fakeService{}, nil, Options{}) })
	r.now = func() time.Time { return now }

	idle := r.Get("idle")
	now = now.Add(8 * time.Minute)
	r.Get("active")
	now = now.Add(5 * time.Minute)

	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())
	assert.ErrorIs(t, idle.Load(context.Background()), ErrClosed)
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry(time.Hour, func(string) *Controller { return New(&fakeService{}, nil, Options{}) })
	c := r.Get("s1")

	r.Remove("s1")
	r.Remove("unknown")

	assert.Zero(t, r.Len())
	assert.ErrorIs(t, c.Load(context.Background()), ErrClosed)
	assert.NotSame(t, c, r.Get("s1"))
}

func TestRegistry_RunClosesOnShutdown(t *testing.T) {
	r := NewRegistry(time.Hour, func(string) *Controller { return New(&fakeService{}, nil, Options{}) })
	c := r.Get("s1")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	<-done

	assert.Zero(t, r.Len())
	assert.ErrorIs(t, c.Load(context.Background()), ErrClosed)
}

func TestRegistry_SlowCreateDoesNotBlockOtherSessions(t *testing.T) {
	release := make(chan struct{})
	r := NewRegistry(time.Hour, func(key string) *Controller {
		if key == "slow" {
			<-release
		}
		return New(&fakeService{}, nil, Options{})
	})

	slowDone := make(chan *Controller)
	go func() { slowDone <- r.Get("slow") }()

	fastDone := make(chan *Controller)
	go func() { fastDone <- r.Get("fast") }()

	select {
	case c := <-fastDone:
		assert.NotNil(t, c)
	case <-time.After(time.Second):
		t.Fatal("Get for another session waited on a slow controller build")
	}

	close(release)
	assert.NotNil(t, <-slowDone)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_ConcurrentGetSharesOneController(t *testing.T) {
	var (
		mu      sync.Mutex
		created []*Controller
	)
	start := make(chan struct{})
	r := NewRegistry(time.Hour, func(string) *Controller {
		<-start
		c := New(&fakeService{}, nil, Options{})
		mu.Lock()
		created = append(created, c)
		mu.Unlock()
		return c
	})

	const callers = 4
	results := make(chan *Controller, callers)
	for range callers {
		go func() { results <- r.Get("s1") }()
	}
	close(start)

	first := <-results
	for range callers - 1 {
		assert.Same(t, first, <-results)
	}
	require.Equal(t, 1, r.Len())

	mu.Lock()
	defer mu.Unlock()
	for _, c := range created {
		if c != first {
			assert.ErrorIs(t, c.Load(context.Background()), ErrClosed)
		}
	}
}
