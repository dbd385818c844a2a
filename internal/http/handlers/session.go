package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/seller-dashboard/internal/logx"
	"github.com/rogerio-castellano/seller-dashboard/internal/session"
)

type contextKey string

const sessionKey = contextKey("session")

// SessionFromContext returns the session loaded by LoadSession.
func SessionFromContext(ctx context.Context) *session.Context {
	sc, _ := ctx.Value(sessionKey).(*session.Context)
	return sc
}

// LoadSession attaches the browser's session to the request, issuing a new
// session cookie on first visit.
func (h *Handler) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := ""
		if cookie, err := r.Cookie(h.cookieName); err == nil {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				key = cookie.Value
			}
		}
		if key == "" {
			key = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     h.cookieName,
				Value:    key,
				Path:     "/",
				HttpOnly: true,
				Secure:   h.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		sc := session.NewContext(h.sessions, key).WithNow(h.now)
		if _, err := sc.Load(r.Context()); err != nil && !errors.Is(err, session.ErrNoSession) {
			logx.Error().Err(err).Msg("load session")
		}

		ctx := context.WithValue(r.Context(), sessionKey, sc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireLogin sends anonymous visitors to the login page, or answers 401 on
// the JSON API.
func (h *Handler) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sc := SessionFromContext(r.Context())
		if sc == nil || !sc.LoggedIn() {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				http.Error(w, "missing or expired session", http.StatusUnauthorized)
				return
			}
			seeOther(w, r, "/login")
			return
		}
		next.ServeHTTP(w, r)
	})
}
