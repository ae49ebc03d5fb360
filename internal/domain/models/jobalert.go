package models

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

type JobAlert struct {
	ID               int64
	UserID           int64 `gorm:"index"`
	AlertName        string
	JobTitle         string
	Location         string
	EmploymentTypeID *int64
	CategoryID       *int64
	MinSalary        *float64
	MaxSalary        *float64
	Keywords         string
	IsActive         bool `gorm:"default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (a *JobAlert) KeywordsAsArray() []string {
	if a.Keywords == "" {
		return []string{}
	}

	tokens := lo.Map(strings.Split(a.Keywords, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
	return lo.Filter(tokens, func(item string, _ int) bool {
		return item != ""
	})
}

// HasCriteria reports whether at least one criterion is populated.
func (a *JobAlert) HasCriteria() bool {
	return a.JobTitle != "" || a.Location != "" || a.EmploymentTypeID != nil ||
		a.CategoryID != nil || a.MinSalary != nil || a.MaxSalary != nil ||
		len(a.KeywordsAsArray()) > 0
}

// Matches evaluates the alert predicate against a single job. The jobs
// repository mirrors this predicate in SQL for the listing direction;
// the two must stay in sync.
func (a *JobAlert) Matches(job Job, today time.Time) bool {
	if !job.AcceptsApplications(today) {
		return false
	}
	if a.JobTitle != "" && !containsFold(job.Title, a.JobTitle) {
		return false
	}
	if a.Location != "" && !containsFold(job.Location, a.Location) {
		return false
	}
	if a.EmploymentTypeID != nil && (job.EmploymentTypeID == nil || *job.EmploymentTypeID != *a.EmploymentTypeID) {
		return false
	}
	if a.CategoryID != nil && (job.CategoryID == nil || *job.CategoryID != *a.CategoryID) {
		return false
	}
	if a.MinSalary != nil && job.MinSalary != nil && *job.MinSalary < *a.MinSalary {
		return false
	}
	if a.MaxSalary != nil && job.MaxSalary != nil && *job.MaxSalary > *a.MaxSalary {
		return false
	}

	keywords := a.KeywordsAsArray()
	if len(keywords) == 0 {
		return true
	}
	return lo.SomeBy(keywords, func(kw string) bool {
		return containsFold(job.Title, kw) || containsFold(job.Description, kw)
	})
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// AlertDispatch marks that an alert already notified its owner about a
// job. The composite primary key makes dispatch idempotent.
type AlertDispatch struct {
	AlertID   int64 `gorm:"primaryKey;autoIncrement:false"`
	JobID     int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}
