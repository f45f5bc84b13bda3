package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/sirupsen/logrus"
)

// ErrPersistence marks failures of the underlying database.
const ErrPersistence = errors.ConstError("persistence failure")

type DB struct {
	connection *sqlx.DB
}

func NewDB(dataSourceName string) (*DB, error) {
	db, err := sqlx.Open("postgres", dataSourceName)
	if err != nil {
		return nil, errors.Trace(err)
	}

	// Connection pool tuning
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Annotate(err, "ping postgres")
	}

	return &DB{connection: db}, nil
}

// Wrap builds a DB around an already opened connection.
func Wrap(conn *sql.DB) *DB {
	return &DB{connection: sqlx.NewDb(conn, "postgres")}
}

func (db *DB) Close() {
	if err := db.connection.Close(); err != nil {
		logrus.WithError(err).Warn("Error closing the database connection")
	}
}

// GetConnection returns the underlying database connection for advanced queries
func (db *DB) GetConnection() *sqlx.DB {
	return db.connection
}

func persistenceError(err error, format string, args ...interface{}) error {
	return errors.WithType(errors.Annotatef(err, format, args...), ErrPersistence)
}

// FindUserByEmail returns the user registered under email.
func (db *DB) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := db.connection.GetContext(ctx, &u, `SELECT email, created_at FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf("user %q", email)
	}
	if err != nil {
		return nil, persistenceError(err, "finding user %q", email)
	}
	return &u, nil
}

// InsertUser stores u unless a user with the same email exists.
// It reports whether a row was written.
func (db *DB) InsertUser(ctx context.Context, u *User) (bool, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	res, err := db.connection.ExecContext(ctx,
		`INSERT INTO users (email, created_at) VALUES ($1, $2) ON CONFLICT (email) DO NOTHING`,
		u.Email, u.CreatedAt,
	)
	if err != nil {
		return false, persistenceError(err, "inserting user %q", u.Email)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, persistenceError(err, "inserting user %q", u.Email)
	}
	return n == 1, nil
}

const applicationColumns = `id, email, full_name, personal_email, whatsapp, contact, country,
	company_names, company_location, position, job_type,
	status, admin_message, messages, created_at, updated_at`

type applicationRow struct {
	ID              string         `db:"id"`
	Email           string         `db:"email"`
	FullName        string         `db:"full_name"`
	PersonalEmail   string         `db:"personal_email"`
	WhatsApp        string         `db:"whatsapp"`
	Contact         string         `db:"contact"`
	Country         string         `db:"country"`
	CompanyNames    string         `db:"company_names"`
	CompanyLocation string         `db:"company_location"`
	Position        string         `db:"position"`
	JobType         string         `db:"job_type"`
	Status          string         `db:"status"`
	AdminMessage    sql.NullString `db:"admin_message"`
	Messages        []byte         `db:"messages"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (r applicationRow) toApplication() (*Application, error) {
	app := &Application{
		ID:    r.ID,
		Email: r.Email,
		PersonalDetails: PersonalDetails{
			FullName: r.FullName,
			Email:    r.PersonalEmail,
			WhatsApp: r.WhatsApp,
			Contact:  r.Contact,
			Country:  r.Country,
		},
		JobDetails: JobDetails{
			CompanyNames:    r.CompanyNames,
			CompanyLocation: r.CompanyLocation,
			Position:        r.Position,
			JobType:         r.JobType,
		},
		Status:       Status(r.Status),
		AdminMessage: r.AdminMessage.String,
		Messages:     []Message{},
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if len(r.Messages) > 0 {
		if err := json.Unmarshal(r.Messages, &app.Messages); err != nil {
			return nil, errors.Annotatef(err, "decoding messages of application %s", r.ID)
		}
	}
	return app, nil
}

func rowsToApplications(rows []applicationRow) ([]*Application, error) {
	out := make([]*Application, 0, len(rows))
	for _, r := range rows {
		app, err := r.toApplication()
		if err != nil {
			return nil, errors.Trace(err)
		}
		out = append(out, app)
	}
	return out, nil
}

// InsertApplication stores a new application, assigning its id and timestamps.
func (db *DB) InsertApplication(ctx context.Context, app *Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.Status == "" {
		app.Status = StatusPending
	}
	if app.Messages == nil {
		app.Messages = []Message{}
	}
	now := time.Now().UTC()
	app.CreatedAt, app.UpdatedAt = now, now

	messages, err := json.Marshal(app.Messages)
	if err != nil {
		return errors.Annotate(err, "encoding messages")
	}

	var adminMessage sql.NullString
	if app.AdminMessage != "" {
		adminMessage = sql.NullString{String: app.AdminMessage, Valid: true}
	}

	query := `INSERT INTO applications (` + applicationColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = db.connection.ExecContext(ctx, query,
		app.ID,
		app.Email,
		app.PersonalDetails.FullName,
		app.PersonalDetails.Email,
		app.PersonalDetails.WhatsApp,
		app.PersonalDetails.Contact,
		app.PersonalDetails.Country,
		app.JobDetails.CompanyNames,
		app.JobDetails.CompanyLocation,
		app.JobDetails.Position,
		app.JobDetails.JobType,
		string(app.Status),
		adminMessage,
		messages,
		app.CreatedAt,
		app.UpdatedAt,
	)
	if err != nil {
		return persistenceError(err, "inserting application for %q", app.Email)
	}
	return nil
}

// FindApplicationByEmail returns the oldest application submitted under email.
func (db *DB) FindApplicationByEmail(ctx context.Context, email string) (*Application, error) {
	var row applicationRow
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE email = $1 ORDER BY created_at ASC LIMIT 1`
	err := db.connection.GetContext(ctx, &row, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf("application for %q", email)
	}
	if err != nil {
		return nil, persistenceError(err, "finding application for %q", email)
	}
	return row.toApplication()
}

// SearchApplications returns applications whose email contains filter,
// ignoring case. An empty filter returns every application.
func (db *DB) SearchApplications(ctx context.Context, filter string) ([]*Application, error) {
	base := `SELECT ` + applicationColumns + ` FROM applications`
	var args []interface{}
	if filter != "" {
		base += ` WHERE email ILIKE $1`
		args = append(args, "%"+escapeLike(filter)+"%")
	}
	base += ` ORDER BY created_at ASC`

	var rows []applicationRow
	if err := db.connection.SelectContext(ctx, &rows, base, args...); err != nil {
		return nil, persistenceError(err, "searching applications")
	}
	return rowsToApplications(rows)
}

// UpdateApplicationStatus overwrites the status of application id.
// A nil adminMessage leaves the stored message untouched.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id string, status Status, adminMessage *string) (*Application, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.NotValidf("application id %q", id)
	}

	var msg sql.NullString
	if adminMessage != nil {
		msg = sql.NullString{String: *adminMessage, Valid: true}
	}

	var row applicationRow
	query := `UPDATE applications
	          SET status = $2, admin_message = COALESCE($3, admin_message), updated_at = $4
	          WHERE id = $1
	          RETURNING ` + applicationColumns
	err := db.connection.GetContext(ctx, &row, query, id, string(status), msg, time.Now().UTC())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf("application %s", id)
	}
	if err != nil {
		return nil, persistenceError(err, "updating application %s", id)
	}
	return row.toApplication()
}

// ApplicationsOutsideStatuses lists up to limit applications whose status
// is not one of statuses.
func (db *DB) ApplicationsOutsideStatuses(ctx context.Context, statuses []Status, limit int) ([]*Application, error) {
	query, args, err := sqlx.In(
		`SELECT `+applicationColumns+` FROM applications WHERE status NOT IN (?) ORDER BY created_at ASC LIMIT ?`,
		statusStrings(statuses), limit,
	)
	if err != nil {
		return nil, errors.Trace(err)
	}
	query = db.connection.Rebind(query)

	var rows []applicationRow
	if err := db.connection.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, persistenceError(err, "listing applications with unknown status")
	}
	return rowsToApplications(rows)
}

func statusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// escapeLike escapes LIKE wildcards so filter matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
