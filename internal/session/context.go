package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rogerio-castellano/seller-dashboard/internal/auth"
	"github.com/rogerio-castellano/seller-dashboard/internal/models"
)

// Context is the session of one client, passed explicitly to whoever needs
// the token or the nameplate. It implements api.TokenSource.
type Context struct {
	store Store
	key   string
	now   func() time.Time

	mu      sync.RWMutex
	current Session
}

// NewContext binds a session key to a store. Nothing is read until Load.
func NewContext(store Store, key string) *Context {
	return &Context{store: store, key: key, now: time.Now}
}

// WithNow overrides the clock used for expiry checks and SavedAt.
func (c *Context) WithNow(now func() time.Time) *Context {
	if now != nil {
		c.now = now
	}
	return c
}

func (c *Context) Key() string { return c.key }

// Load restores the stored session. Sessions whose token has expired are
// cleared and reported as ErrNoSession.
func (c *Context) Load(ctx context.Context) (Session, error) {
	s, err := c.store.Load(ctx, c.key)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			c.set(Session{})
		}
		return Session{}, err
	}
	if s.Token != "" && auth.Expired(s.Token, c.now()) {
		if err := c.store.Clear(ctx, c.key); err != nil {
			return Session{}, err
		}
		c.set(Session{Theme: s.Theme})
		return Session{}, ErrNoSession
	}
	c.set(s)
	return s, nil
}

// Save persists s and makes it current.
func (c *Context) Save(ctx context.Context, s Session) error {
	s.SavedAt = c.now().UTC()
	if err := c.store.Save(ctx, c.key, s); err != nil {
		return err
	}
	c.set(s)
	return nil
}

// Update applies fn to the current session and saves the result.
func (c *Context) Update(ctx context.Context, fn func(*Session)) error {
	s := c.Current()
	fn(&s)
	return c.Save(ctx, s)
}

// Clear forgets everything, in the store and in memory.
func (c *Context) Clear(ctx context.Context) error {
	if err := c.store.Clear(ctx, c.key); err != nil {
		return err
	}
	c.set(Session{})
	return nil
}

// Current returns the last loaded or saved session.
func (c *Context) Current() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Token returns the bearer token of the current session.
func (c *Context) Token(context.Context) string {
	return c.Current().Token
}

func (c *Context) User() models.User {
	return c.Current().User
}

func (c *Context) LoggedIn() bool {
	return c.Current().LoggedIn()
}

func (c *Context) set(s Session) {
	c.mu.Lock()
	c.current = s
	c.mu.Unlock()
}
