package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/juju/errors"
	"github.com/sirupsen/logrus"

	"job-intake/internal/lifecycle"
	"job-intake/internal/logging"
	"job-intake/internal/storage"
)

// statusStore is what the backfill needs from storage.
type statusStore interface {
	ApplicationsOutsideStatuses(ctx context.Context, statuses []storage.Status, limit int) ([]*storage.Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, status storage.Status, adminMessage *string) (*storage.Application, error)
}

func main() {
	var dryRun bool
	var limit int
	flag.BoolVar(&dryRun, "dry-run", true, "If true, do not persist updates; just print changes")
	flag.IntVar(&limit, "limit", 200, "Max number of applications to process in one run")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logrus.Println("Warning: .env file not found, using environment variables")
	}
	log := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	log.Printf("Connecting to DB...")
	db, err := storage.NewDB(dbURL)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer db.Close()

	fixed, err := backfill(context.Background(), db, log, dryRun, limit)
	if err != nil {
		log.Fatalf("backfill failed: %v", errors.ErrorStack(err))
	}
	log.Printf("Done: %d application(s) reset to %s (dry-run=%v)", fixed, storage.StatusPending, dryRun)
}

// backfill resets applications whose status is not one of
// lifecycle.Statuses to Pending, keeping their admin message. It returns
// how many applications were (or, in dry-run, would be) reset.
func backfill(ctx context.Context, store statusStore, log logrus.FieldLogger, dryRun bool, limit int) (int, error) {
	apps, err := store.ApplicationsOutsideStatuses(ctx, lifecycle.Statuses, limit)
	if err != nil {
		return 0, errors.Annotate(err, "listing applications with unknown status")
	}
	log.Printf("Found %d application(s) with an unknown status (limit %d)", len(apps), limit)

	fixed := 0
	for _, app := range apps {
		entry := log.WithFields(logrus.Fields{"id": app.ID, "email": app.Email, "status": app.Status})
		if dryRun {
			entry.Infof("[dry-run] Would reset status to %s", storage.StatusPending)
			fixed++
			continue
		}
		if _, err := store.UpdateApplicationStatus(ctx, app.ID, storage.StatusPending, nil); err != nil {
			entry.WithError(err).Warn("failed to reset status")
			continue
		}
		entry.Infof("reset status to %s", storage.StatusPending)
		fixed++
	}
	return fixed, nil
}
