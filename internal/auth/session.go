package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	SessionName = "employee-portal-session"
	LoginPath   = "/"

	keyAuthenticated = "authenticated"
	keyUsername      = "username"
	keyNavigationID  = "nav_id"
)

// Session is the explicit context object handed to protected views.
type Session struct {
	Authenticated bool
	Username      string
	// NavigationID keys the per-browser navigation state.
	NavigationID string
}

type contextKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session placed by Guard.Require.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}

// Guard gates every view except login behind a single fixed credential pair.
// There is no token, no expiry and no notion of multiple users.
type Guard struct {
	username string
	password string
	store    *sessions.CookieStore
}

func NewGuard(username, password string, secret []byte, secure bool) *Guard {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0, // browser session cookie; closing the browser resets the gate
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
	return &Guard{
		username: username,
		password: password,
		store:    store,
	}
}

// CheckCredentials reports whether the pair matches the configured one.
func (g *Guard) CheckCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) == 1
	return userOK && passOK
}

// Current reads the session flag from the request cookie. An unreadable
// cookie counts as logged out.
func (g *Guard) Current(r *http.Request) *Session {
	session, _ := g.store.Get(r, SessionName)
	authenticated, _ := session.Values[keyAuthenticated].(bool)
	username, _ := session.Values[keyUsername].(string)
	navID, _ := session.Values[keyNavigationID].(string)
	return &Session{
		Authenticated: authenticated,
		Username:      username,
		NavigationID:  navID,
	}
}

// Login sets the session flag when the credentials match. On a mismatch the
// session is left untouched and no cookie is written.
func (g *Guard) Login(w http.ResponseWriter, r *http.Request, username, password string) (bool, error) {
	if !g.CheckCredentials(username, password) {
		return false, nil
	}

	session, _ := g.store.Get(r, SessionName)
	session.Values[keyAuthenticated] = true
	session.Values[keyUsername] = username
	session.Values[keyNavigationID] = uuid.New().String()
	if err := session.Save(r, w); err != nil {
		return false, fmt.Errorf("failed to save session: %w", err)
	}
	return true, nil
}

// Logout clears the session and expires the cookie.
func (g *Guard) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := g.store.Get(r, SessionName)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Require redirects unauthenticated requests to the login view and hands the
// session to the wrapped handler through the request context.
func (g *Guard) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := g.Current(r)
		if !current.Authenticated {
			// HTMX requests follow HX-Redirect instead of a 303
			if r.Header.Get("HX-Request") == "true" {
				w.Header().Set("HX-Redirect", LoginPath)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), current)))
	})
}
