package main

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-intake/internal/storage"
	"job-intake/internal/storage/memory"
)

func seed(t *testing.T, store *memory.Store, email string, status storage.Status) *storage.Application {
	t.Helper()
	app := &storage.Application{Email: email, Status: status, AdminMessage: "note"}
	require.NoError(t, store.InsertApplication(context.Background(), app))
	return app
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestBackfillDryRunWritesNothing(t *testing.T) {
	store := memory.New()
	seed(t, store, "legacy@example.com", "Hired")
	seed(t, store, "ok@example.com", storage.StatusApplied)

	n, err := backfill(context.Background(), store, quietLogger(), true, 200)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	app, err := store.FindApplicationByEmail(context.Background(), "legacy@example.com")
	require.NoError(t, err)
	assert.Equal(t, storage.Status("Hired"), app.Status)
}

func TestBackfillResetsUnknownStatuses(t *testing.T) {
	store := memory.New()
	seed(t, store, "a@example.com", "Hired")
	seed(t, store, "b@example.com", "Rejected")
	seed(t, store, "c@example.com", "interview")
	seed(t, store, "ok@example.com", storage.StatusDeclined)

	n, err := backfill(context.Background(), store, quietLogger(), false, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "limit caps one run")

	n, err = backfill(context.Background(), store, quietLogger(), false, 200)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		app, err := store.FindApplicationByEmail(context.Background(), email)
		require.NoError(t, err)
		assert.Equal(t, storage.StatusPending, app.Status)
		assert.Equal(t, "note", app.AdminMessage)
	}
	ok, err := store.FindApplicationByEmail(context.Background(), "ok@example.com")
	require.NoError(t, err)
	assert.Equal(t, storage.StatusDeclined, ok.Status)
}
