// Package session keeps the signed-in seller's token and nameplate between
// requests (web) or invocations (CLI).
package session

import (
	"context"
	"errors"
	"time"

	"github.com/rogerio-castellano/seller-dashboard/internal/models"
)

var ErrNoSession = errors.New("no session")

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Session is the persisted client-side state.
type Session struct {
	Token            string      `json:"token"`
	User             models.User `json:"user"`
	Theme            string      `json:"theme,omitempty"`
	SidebarCollapsed bool        `json:"sidebar_collapsed,omitempty"`
	SavedAt          time.Time   `json:"saved_at"`
}

// LoggedIn reports whether the session carries a token.
func (s Session) LoggedIn() bool { return s.Token != "" }

// Store persists sessions by key.
type Store interface {
	Load(ctx context.Context, key string) (Session, error)
	Save(ctx context.Context, key string, s Session) error
	Clear(ctx context.Context, key string) error
}
