package dashboard

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/seller-dashboard/internal/logx"
)

// DefaultNotificationTTL is how long a toast stays on screen.
const DefaultNotificationTTL = 3 * time.Second

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notification is a transient toast.
type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Sink receives a copy of every notification, e.g. for an activity feed.
type Sink interface {
	Publish(ctx context.Context, n Notification) error
}

// Notifier holds the active toasts and dismisses each one after ttl.
type Notifier struct {
	ttl  time.Duration
	sink Sink
	now  func() time.Time

	mu     sync.Mutex
	items  []Notification
	timers map[string]*time.Timer
	closed bool
}

// NewNotifier constructs a Notifier. sink may be nil.
func NewNotifier(ttl time.Duration, sink Sink) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &Notifier{ttl: ttl, sink: sink, now: time.Now, timers: map[string]*time.Timer{}}
}

// Push shows a new toast.
func (n *Notifier) Push(ctx context.Context, kind Kind, message string) Notification {
	note := Notification{ID: uuid.NewString(), Kind: kind, Message: message, CreatedAt: n.now().UTC()}

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return note
	}
	n.items = append(n.items, note)
	n.timers[note.ID] = time.AfterFunc(n.ttl, func() { n.Dismiss(note.ID) })
	n.mu.Unlock()

	if n.sink != nil {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := n.sink.Publish(pubCtx, note); err != nil {
			logx.Warn().Err(err).Str("notification", note.ID).Msg("publish notification")
		}
	}
	return note
}

// Dismiss removes a toast before its lifetime ends.
func (n *Notifier) Dismiss(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if t, ok := n.timers[id]; ok {
		t.Stop()
		delete(n.timers, id)
	}
	before := len(n.items)
	n.items = slices.DeleteFunc(n.items, func(x Notification) bool { return x.ID == id })
	return len(n.items) != before
}

// Active returns the toasts currently on screen, oldest first.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.items)
}

// Close stops all timers and drops the toasts.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, t := range n.timers {
		t.Stop()
		delete(n.timers, id)
	}
	n.items = nil
	n.closed = true
}

const (
	feedKeyPrefix = "storefront:notifications:"
	feedLimit     = 50
)

// RedisSink keeps the most recent notifications of one session in a redis list.
type RedisSink struct {
	client *redis.Client
	key    string
}

func NewRedisSink(client *redis.Client, sessionKey string) *RedisSink {
	return &RedisSink{client: client, key: feedKeyPrefix + sessionKey}
}

func (s *RedisSink) Publish(ctx context.Context, n Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key, data)
	pipe.LTrim(ctx, s.key, 0, feedLimit-1)
	_, err = pipe.Exec(ctx)
	return err
}

// Recent returns up to limit notifications, newest first.
func (s *RedisSink) Recent(ctx context.Context, limit int) ([]Notification, error) {
	if limit <= 0 || limit > feedLimit {
		limit = feedLimit
	}
	raw, err := s.client.LRange(ctx, s.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Notification, 0, len(raw))
	for _, item := range raw {
		var n Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
