package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-intake/internal/session"
)

func TestAuthorize(t *testing.T) {
	g, err := NewGate("admin", "s3cret")
	require.NoError(t, err)

	assert.NoError(t, g.Authorize(&session.Session{Admin: true}))
	assert.True(t, errors.Is(g.Authorize(&session.Session{}), errors.Unauthorized))
	assert.True(t, errors.Is(g.Authorize(nil), errors.Unauthorized))
}

func TestLogin(t *testing.T) {
	g, err := NewGate("admin", "s3cret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"correct credentials", "admin", "s3cret", false},
		{"wrong password", "admin", "nope", true},
		{"wrong username", "root", "s3cret", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &session.Session{}
			err := g.Login(s, tt.username, tt.password)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errors.Unauthorized))
				assert.False(t, s.Admin)
				return
			}
			require.NoError(t, err)
			assert.True(t, s.Admin)
		})
	}
}

func TestLoginUnconfiguredGateRejectsEverything(t *testing.T) {
	g, err := NewGate("", "")
	require.NoError(t, err)

	s := &session.Session{}
	assert.True(t, errors.Is(g.Login(s, "", ""), errors.Unauthorized))
	assert.False(t, s.Admin)
}

func TestLogoutKeepsSession(t *testing.T) {
	g, err := NewGate("admin", "s3cret")
	require.NoError(t, err)

	s := &session.Session{ID: "abc", Email: "a@x.com", Admin: true}
	g.Logout(s)

	assert.False(t, s.Admin)
	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, "a@x.com", s.Email)
}

func TestRequireAdmin(t *testing.T) {
	g, err := NewGate("admin", "s3cret")
	require.NoError(t, err)

	called := false
	h := g.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.False(t, called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = req.WithContext(session.NewContext(req.Context(), &session.Session{Admin: true}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}
