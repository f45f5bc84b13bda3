package storage

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAppID = "3f1c6a3e-5a47-4c43-9a5e-2f4f0c1f6b11"

var appColumns = []string{
	"id", "email", "full_name", "personal_email", "whatsapp", "contact", "country",
	"company_names", "company_location", "position", "job_type",
	"status", "admin_message", "messages", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return Wrap(conn), mock
}

func appRow(id, email, status, location string, adminMessage driver.Value) []driver.Value {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, email, "Ada Lovelace", email, "+100", "555", "UK",
		"Acme", location, "Engineer", "Full-time",
		status, adminMessage, []byte(`[]`), now, now,
	}
}

func TestMigrateAppliesEveryStatement(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS applications").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS applications_email_idx").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, db.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateFailureIsPersistenceError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(errors.New("permission denied for schema public"))

	err := db.Migrate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPersistence))
}

func TestInsertUser(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("a@x.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO users").
		WithArgs("a@x.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, err := db.InsertUser(context.Background(), &User{Email: "a@x.com"})
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = db.InsertUser(context.Background(), &User{Email: "a@x.com"})
	require.NoError(t, err)
	assert.False(t, inserted, "second insert of the same email must be a no-op")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT email, created_at FROM users").
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"email", "created_at"}).AddRow("a@x.com", created))
	mock.ExpectQuery("SELECT email, created_at FROM users").
		WithArgs("b@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"email", "created_at"}))

	u, err := db.FindUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Equal(t, created, u.CreatedAt)

	_, err = db.FindUserByEmail(context.Background(), "b@x.com")
	assert.True(t, errors.Is(err, errors.NotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByEmailDriverFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT email, created_at FROM users").WillReturnError(errors.New("connection reset"))

	_, err := db.FindUserByEmail(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPersistence))
	assert.False(t, errors.Is(err, errors.NotFound))
}

func TestInsertApplicationAssignsIDAndDefaults(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO applications").WillReturnResult(sqlmock.NewResult(0, 1))

	app := &Application{Email: "a@x.com"}
	require.NoError(t, db.InsertApplication(context.Background(), app))

	assert.NotEmpty(t, app.ID)
	assert.Equal(t, StatusPending, app.Status)
	assert.NotNil(t, app.Messages)
	assert.False(t, app.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertApplicationKeepsGivenStatus(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO applications").
		WithArgs(
			sqlmock.AnyArg(), "a@x.com", "Ada", "ada@x.com", "", "", "",
			"", "Online", "", "",
			"Applied", nil, []byte(`[]`), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	app := &Application{
		Email:           "a@x.com",
		PersonalDetails: PersonalDetails{FullName: "Ada", Email: "ada@x.com"},
		JobDetails:      JobDetails{CompanyLocation: "Online"},
		Status:          StatusApplied,
	}
	require.NoError(t, db.InsertApplication(context.Background(), app))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindApplicationByEmail(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM applications WHERE email = \\$1 ORDER BY created_at ASC LIMIT 1").
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(appColumns).AddRow(appRow(testAppID, "a@x.com", "Applied", "Online", "welcome")...))
	mock.ExpectQuery("SELECT (.+) FROM applications WHERE email").
		WithArgs("nobody@x.com").
		WillReturnRows(sqlmock.NewRows(appColumns))

	app, err := db.FindApplicationByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, testAppID, app.ID)
	assert.Equal(t, StatusApplied, app.Status)
	assert.Equal(t, "Online", app.JobDetails.CompanyLocation)
	assert.Equal(t, "Ada Lovelace", app.PersonalDetails.FullName)
	assert.Equal(t, "welcome", app.AdminMessage)
	assert.Empty(t, app.Messages)

	_, err = db.FindApplicationByEmail(context.Background(), "nobody@x.com")
	assert.True(t, errors.Is(err, errors.NotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchApplications(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM applications ORDER BY created_at ASC").
		WithArgs().
		WillReturnRows(sqlmock.NewRows(appColumns).
			AddRow(appRow(testAppID, "a@x.com", "Applied", "Online", nil)...).
			AddRow(appRow("9b2e0c1e-1111-4c43-9a5e-2f4f0c1f6b11", "b@y.com", "Declined", "Paris", nil)...))
	mock.ExpectQuery("SELECT (.+) FROM applications WHERE email ILIKE \\$1").
		WithArgs(`%a\_b%`).
		WillReturnRows(sqlmock.NewRows(appColumns))

	all, err := db.SearchApplications(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b@y.com", all[1].Email)
	assert.Equal(t, StatusDeclined, all[1].Status)

	none, err := db.SearchApplications(context.Background(), "a_b")
	require.NoError(t, err)
	assert.Empty(t, none)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplicationStatus(t *testing.T) {
	db, mock := newMockDB(t)
	msg := "sorry"

	mock.ExpectQuery("UPDATE applications").
		WithArgs(testAppID, "Declined", "sorry", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(appColumns).AddRow(appRow(testAppID, "a@x.com", "Declined", "Online", "sorry")...))

	app, err := db.UpdateApplicationStatus(context.Background(), testAppID, StatusDeclined, &msg)
	require.NoError(t, err)
	assert.Equal(t, StatusDeclined, app.Status)
	assert.Equal(t, "sorry", app.AdminMessage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplicationStatusNilMessageKeepsStored(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("UPDATE applications").
		WithArgs(testAppID, "Applied", nil, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(appColumns).AddRow(appRow(testAppID, "a@x.com", "Applied", "Online", "kept")...))

	app, err := db.UpdateApplicationStatus(context.Background(), testAppID, StatusApplied, nil)
	require.NoError(t, err)
	assert.Equal(t, "kept", app.AdminMessage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplicationStatusUnknownAndMalformedID(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("UPDATE applications").
		WithArgs(testAppID, "Applied", nil, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(appColumns))

	_, err := db.UpdateApplicationStatus(context.Background(), testAppID, StatusApplied, nil)
	assert.True(t, errors.Is(err, errors.NotFound))

	_, err = db.UpdateApplicationStatus(context.Background(), "not-a-uuid", StatusApplied, nil)
	assert.True(t, errors.Is(err, errors.NotValid))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationsOutsideStatuses(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM applications WHERE status NOT IN").
		WithArgs("Pending", "Applied", "Declined", 50).
		WillReturnRows(sqlmock.NewRows(appColumns).AddRow(appRow(testAppID, "a@x.com", "Approved", "Online", nil)...))

	apps, err := db.ApplicationsOutsideStatuses(context.Background(),
		[]Status{StatusPending, StatusApplied, StatusDeclined}, 50)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, Status("Approved"), apps[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c\\d`, escapeLike(`c\d`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
