package storage

import "time"

// Status is the lifecycle state of an Application.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApplied  Status = "Applied"
	StatusDeclined Status = "Declined"
)

// User represents an applicant identified by email.
type User struct {
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PersonalDetails holds the applicant section of the job form.
type PersonalDetails struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
	Contact  string `json:"contact"`
	Country  string `json:"country"`
}

// JobDetails holds the job section of the job form.
type JobDetails struct {
	CompanyNames    string `json:"company_names"`
	CompanyLocation string `json:"company_location"`
	Position        string `json:"position"`
	JobType         string `json:"job_type"`
}

// Message is an entry of the per-application message log.
// Nothing writes to it yet; it is persisted so the stored shape stays stable.
type Message struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Application is a submitted job application.
type Application struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	PersonalDetails PersonalDetails `json:"personal_details"`
	JobDetails      JobDetails      `json:"job_details"`
	Status          Status          `json:"status"`
	AdminMessage    string          `json:"admin_message,omitempty"`
	Messages        []Message       `json:"messages"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Setting mirrors the admin-configurable content record. No handler reads it.
type Setting struct {
	Chat struct {
		WhatsApp string `json:"whatsapp"`
		Email    string `json:"email"`
	} `json:"chat"`
	InformationContent []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"information_content"`
}
