package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/juju/errors"
	"github.com/sirupsen/logrus"
)

// CookieName is the cookie carrying the signed session id.
const CookieName = "intake_sid"

// Manager binds a Store to HTTP requests.
type Manager struct {
	store  Store
	codec  *securecookie.SecureCookie
	ttl    time.Duration
	secure bool
	log    logrus.FieldLogger
}

// Option configures a Manager.
type Option func(*Manager)

// WithSecureCookie marks the session cookie Secure, so browsers only send
// it over HTTPS.
func WithSecureCookie(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

func NewManager(store Store, secret string, ttl time.Duration, log logrus.FieldLogger, opts ...Option) *Manager {
	codec := securecookie.New([]byte(secret), nil)
	codec.MaxAge(int(ttl.Seconds()))
	m := &Manager{
		store: store,
		codec: codec,
		ttl:   ttl,
		log:   log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Middleware attaches the client's session to the request context. A
// client without a valid session gets a fresh id and cookie on first
// contact; the session reaches the store on its first Save.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.load(r)
		if err != nil && !errors.Is(err, errors.NotFound) {
			m.log.WithError(err).Error("[Session] load failed")
			http.Error(w, "Server error while loading session, try again later.", http.StatusInternalServerError)
			return
		}
		if s == nil {
			s = &Session{ID: uuid.NewString()}
			if err := m.setCookie(w, s.ID); err != nil {
				m.log.WithError(err).Error("[Session] create failed")
				http.Error(w, "Server error while creating session, try again later.", http.StatusInternalServerError)
				return
			}
		}
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), s)))
	})
}

// Save persists changes made to s during a request and restarts its TTL.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if s.ID == "" {
		return errors.NotValidf("session without id")
	}
	return errors.Trace(m.store.Save(ctx, s, m.ttl))
}

// Renew moves s to a new id, persists it there, drops the old id from the
// store and sends the new cookie. Call it whenever the privilege of s
// changes so a previously issued cookie no longer reaches it.
func (m *Manager) Renew(ctx context.Context, w http.ResponseWriter, s *Session) error {
	oldID := s.ID
	s.ID = uuid.NewString()
	if err := m.store.Save(ctx, s, m.ttl); err != nil {
		return errors.Trace(err)
	}
	if oldID != "" {
		if err := m.store.Delete(ctx, oldID); err != nil {
			return errors.Annotate(err, "dropping renewed session")
		}
	}
	return errors.Trace(m.setCookie(w, s.ID))
}

func (m *Manager) load(r *http.Request) (*Session, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil, errors.NotFoundf("session cookie")
	}
	var id string
	if err := m.codec.Decode(CookieName, c.Value, &id); err != nil {
		m.log.WithError(err).Debug("[Session] discarding undecodable cookie")
		return nil, errors.NotFoundf("session cookie")
	}
	s, err := m.store.Load(r.Context(), id)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return s, nil
}

func (m *Manager) setCookie(w http.ResponseWriter, id string) error {
	encoded, err := m.codec.Encode(CookieName, id)
	if err != nil {
		return errors.Annotate(err, "signing session cookie")
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
