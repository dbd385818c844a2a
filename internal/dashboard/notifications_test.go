package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_AutoDismiss(t *testing.T) {
	n := NewNotifier(20*time.Millisecond, nil)
	t.Cleanup(n.Close)

	n.Push(context.Background(), KindSuccess, "saved")
	require.Len(t, n.Active(), 1)

	assert.Eventually(t, func() bool { return len(n.Active()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestNotifier_Dismiss(t *testing.T) {
	n := NewNotifier(time.Minute, nil)
	t.Cleanup(n.Close)

	first := n.Push(context.Background(), KindInfo, "one")
	n.Push(context.Background(), KindError, "two")

	assert.True(t, n.Dismiss(first.ID))
	assert.False(t, n.Dismiss(first.ID))
	active := n.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "two", active[0].Message)
}

func TestNotifier_DefaultTTL(t *testing.T) {
	n := NewNotifier(0, nil)
	t.Cleanup(n.Close)
	assert.Equal(t, DefaultNotificationTTL, n.ttl)
}

type failingSink struct{}

func (failingSink) Publish(context.Context, Notification) error { return fmt.Errorf("sink down") }

func TestNotifier_SinkFailureDoesNotDropToast(t *testing.T) {
	n := NewNotifier(time.Minute, failingSink{})
	t.Cleanup(n.Close)

	n.Push(context.Background(), KindError, "still shown")

	assert.Len(t, n.Active(), 1)
}

func TestRedisSink_CapsFeed(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sink := NewRedisSink(client, "sess-1")
	n := NewNotifier(time.Minute, sink)
	t.Cleanup(n.Close)
	ctx := context.Background()

	for i := range 60 {
		n.Push(ctx, KindInfo, fmt.Sprintf("event %d", i))
	}

	items, err := mr.List("storefront:notifications:sess-1")
	require.NoError(t, err)
	assert.Len(t, items, feedLimit)

	recent, err := sink.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "event 59", recent[0].Message)
	assert.Equal(t, "event 57", recent[2].Message)
}
