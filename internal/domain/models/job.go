package models

import "time"

type JobStatus string

const (
	JobActive  JobStatus = "active"
	JobExpired JobStatus = "expired"
	JobClosed  JobStatus = "closed"
	JobDraft   JobStatus = "draft"
)

// Job is a read-mostly projection of the job catalog. The core reads
// jobs and reacts to their activation; it does not create them.
type Job struct {
	ID               int64
	EmployerID       int64 `gorm:"index"`
	Title            string
	Description      string
	Location         string
	EmploymentTypeID *int64
	CategoryID       *int64
	MinSalary        *float64
	MaxSalary        *float64
	Status           JobStatus `gorm:"default:draft"`
	ExpirationDate   time.Time
	PostedAt         time.Time
}

// AcceptsApplications reports whether the job is open on the given day.
func (j Job) AcceptsApplications(today time.Time) bool {
	if j.Status != JobActive {
		return false
	}
	y, m, d := today.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	return !j.ExpirationDate.Before(day)
}
