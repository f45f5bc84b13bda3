// Package lifecycle owns the application state machine: how applications
// are created, looked up and moved between statuses by an administrator.
package lifecycle

import (
	"context"
	"strings"

	"github.com/juju/errors"

	"job-intake/internal/metrics"
	"job-intake/internal/storage"
)

// Store is the persistence the manager needs. *storage.DB and
// *memory.Store satisfy it.
type Store interface {
	FindUserByEmail(ctx context.Context, email string) (*storage.User, error)
	InsertUser(ctx context.Context, u *storage.User) (bool, error)

	InsertApplication(ctx context.Context, app *storage.Application) error
	FindApplicationByEmail(ctx context.Context, email string) (*storage.Application, error)
	SearchApplications(ctx context.Context, filter string) ([]*storage.Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, status storage.Status, adminMessage *string) (*storage.Application, error)
}

// Statuses lists every legal application status.
var Statuses = []storage.Status{storage.StatusPending, storage.StatusApplied, storage.StatusDeclined}

// ParseStatus maps s onto one of Statuses.
func ParseStatus(s string) (storage.Status, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", errors.NotValidf("status %q", s)
}

type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// SubmitEmail registers email as a user unless it is already known.
// existing reports whether the email had been submitted before.
func (m *Manager) SubmitEmail(ctx context.Context, email string) (existing bool, err error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, errors.NotValidf("missing email")
	}

	_, err = m.store.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case !errors.Is(err, errors.NotFound):
		return false, errors.Trace(err)
	}

	inserted, err := m.store.InsertUser(ctx, &storage.User{Email: email})
	if err != nil {
		return false, errors.Trace(err)
	}
	if !inserted {
		// Lost a race with a concurrent submission of the same email.
		return true, nil
	}
	metrics.RecordUserRegistered()
	return false, nil
}

// Create stores a new application for email. Applications enter the
// lifecycle as Applied, not the Pending storage default.
func (m *Manager) Create(ctx context.Context, email string, personal storage.PersonalDetails, job storage.JobDetails) (*storage.Application, error) {
	if email == "" {
		return nil, errors.NotValidf("missing email")
	}

	app := &storage.Application{
		Email:           email,
		PersonalDetails: personal,
		JobDetails:      job,
		Status:          storage.StatusApplied,
	}
	if err := m.store.InsertApplication(ctx, app); err != nil {
		return nil, errors.Trace(err)
	}
	metrics.RecordApplicationCreated()
	return app, nil
}

// FindByEmail returns the first application submitted under email.
func (m *Manager) FindByEmail(ctx context.Context, email string) (*storage.Application, error) {
	if email == "" {
		return nil, errors.NotValidf("missing email")
	}
	app, err := m.store.FindApplicationByEmail(ctx, email)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return app, nil
}

// FindBySearch returns applications whose email contains filter, ignoring
// case, or every application for an empty filter.
func (m *Manager) FindBySearch(ctx context.Context, filter string) ([]*storage.Application, error) {
	apps, err := m.store.SearchApplications(ctx, strings.TrimSpace(filter))
	if err != nil {
		return nil, errors.Trace(err)
	}
	return apps, nil
}

// Transition moves application id to newStatus. Any status may move to any
// other, including itself; the last write wins. A nil adminMessage keeps
// the stored message.
func (m *Manager) Transition(ctx context.Context, id, newStatus string, adminMessage *string) (*storage.Application, error) {
	if id == "" || newStatus == "" {
		return nil, errors.NotValidf("missing required fields")
	}
	status, err := ParseStatus(newStatus)
	if err != nil {
		return nil, errors.Trace(err)
	}

	app, err := m.store.UpdateApplicationStatus(ctx, id, status, adminMessage)
	if err != nil {
		return nil, errors.Trace(err)
	}
	metrics.RecordStatusTransition(string(status))
	return app, nil
}
