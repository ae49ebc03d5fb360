package models

import (
	"errors"
	"time"
)

type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusReviewed  ApplicationStatus = "reviewed"
	StatusInterview ApplicationStatus = "interview"
	StatusRejected  ApplicationStatus = "rejected"
	StatusHired     ApplicationStatus = "hired"
)

func ToApplicationStatus(s string) (ApplicationStatus, error) {
	switch ApplicationStatus(s) {
	case StatusPending, StatusReviewed, StatusInterview, StatusRejected, StatusHired:
		return ApplicationStatus(s), nil
	default:
		return "", errors.New("invalid application status")
	}
}

func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusHired
}

var statusRank = map[ApplicationStatus]int{
	StatusPending:   0,
	StatusReviewed:  1,
	StatusInterview: 2,
}

// CanTransitionTo implements the status state machine: forward-only
// among pending/reviewed/interview, any non-terminal status may enter
// rejected or hired, terminal statuses admit nothing.
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	if s == target || s.IsTerminal() {
		return false
	}
	if target == StatusRejected || target == StatusHired {
		return true
	}
	return statusRank[target] > statusRank[s]
}

// MaxNotesLength caps the applicant cover letter.
const MaxNotesLength = 5000

type Application struct {
	ID          int64
	ApplicantID int64 `gorm:"uniqueIndex:idx_applicant_job"`
	JobID       int64 `gorm:"uniqueIndex:idx_applicant_job"`
	SubmittedAt time.Time
	Status      ApplicationStatus `gorm:"default:pending"`
	StageID     *int64
	Notes       string
	Rating      *int
	HiredDate   *time.Time
}
