// Package auth implements the admin gate: a single predicate on the session
// admin flag, plus the login and logout operations that flip it.
package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/juju/errors"
	"golang.org/x/crypto/bcrypt"

	"job-intake/internal/metrics"
	"job-intake/internal/session"
)

// LoginPath is where unauthorized admin requests are sent.
const LoginPath = "/admin/login"

type Gate struct {
	username     []byte
	passwordHash []byte
}

// NewGate builds a gate for the configured admin credentials. When either is
// empty the gate accepts no login at all.
func NewGate(username, password string) (*Gate, error) {
	g := &Gate{username: []byte(username)}
	if username == "" || password == "" {
		return g, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Annotate(err, "hashing admin password")
	}
	g.passwordHash = hash
	return g, nil
}

// Authorize reports whether s belongs to a logged in administrator.
func (g *Gate) Authorize(s *session.Session) error {
	if s == nil || !s.Admin {
		return errors.Unauthorizedf("admin session required")
	}
	return nil
}

// Login sets the admin flag on s when username and password match the
// configured credentials.
func (g *Gate) Login(s *session.Session, username, password string) error {
	if !g.matches(username, password) {
		metrics.RecordAdminLogin("failure")
		return errors.Unauthorizedf("invalid credentials")
	}
	s.Admin = true
	metrics.RecordAdminLogin("success")
	return nil
}

// Logout clears the admin flag; the session itself stays alive.
func (g *Gate) Logout(s *session.Session) {
	s.Admin = false
}

func (g *Gate) matches(username, password string) bool {
	if len(g.passwordHash) == 0 {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), g.username) == 1
	passOK := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password)) == nil
	return userOK && passOK
}

// RequireAdmin redirects requests without an admin session to the login
// page; next never runs for them.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := g.Authorize(session.FromContext(r.Context())); err != nil {
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
