// Package memory provides an in-process implementation of the intake store,
// used for local runs and tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/juju/errors"

	"job-intake/internal/storage"
)

type Store struct {
	mu           sync.RWMutex
	users        map[string]storage.User
	applications []*storage.Application
}

func New() *Store {
	return &Store{users: make(map[string]storage.User)}
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*storage.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return nil, errors.NotFoundf("user %q", email)
	}
	return &u, nil
}

func (s *Store) InsertUser(_ context.Context, u *storage.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Email]; ok {
		return false, nil
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.users[u.Email] = *u
	return true, nil
}

// UserCount reports how many users are stored.
func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *Store) InsertApplication(_ context.Context, app *storage.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.Status == "" {
		app.Status = storage.StatusPending
	}
	if app.Messages == nil {
		app.Messages = []storage.Message{}
	}
	now := time.Now().UTC()
	app.CreatedAt, app.UpdatedAt = now, now

	s.applications = append(s.applications, clone(app))
	return nil
}

func (s *Store) FindApplicationByEmail(_ context.Context, email string) (*storage.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, app := range s.applications {
		if app.Email == email {
			return clone(app), nil
		}
	}
	return nil, errors.NotFoundf("application for %q", email)
}

func (s *Store) SearchApplications(_ context.Context, filter string) ([]*storage.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(filter)
	out := make([]*storage.Application, 0, len(s.applications))
	for _, app := range s.applications {
		if needle == "" || strings.Contains(strings.ToLower(app.Email), needle) {
			out = append(out, clone(app))
		}
	}
	return out, nil
}

func (s *Store) UpdateApplicationStatus(_ context.Context, id string, status storage.Status, adminMessage *string) (*storage.Application, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.NotValidf("application id %q", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, app := range s.applications {
		if app.ID != id {
			continue
		}
		app.Status = status
		if adminMessage != nil {
			app.AdminMessage = *adminMessage
		}
		app.UpdatedAt = time.Now().UTC()
		return clone(app), nil
	}
	return nil, errors.NotFoundf("application %s", id)
}

func (s *Store) ApplicationsOutsideStatuses(_ context.Context, statuses []storage.Status, limit int) ([]*storage.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	known := make(map[storage.Status]bool, len(statuses))
	for _, st := range statuses {
		known[st] = true
	}
	var out []*storage.Application
	for _, app := range s.applications {
		if len(out) >= limit {
			break
		}
		if !known[app.Status] {
			out = append(out, clone(app))
		}
	}
	return out, nil
}

func clone(app *storage.Application) *storage.Application {
	c := *app
	c.Messages = append([]storage.Message(nil), app.Messages...)
	if c.Messages == nil {
		c.Messages = []storage.Message{}
	}
	return &c
}
