package models

import "time"

// SavedCandidate is an employer's bookmark on an application, with
// private notes.
type SavedCandidate struct {
	ID            int64
	EmployerID    int64 `gorm:"uniqueIndex:idx_employer_application"`
	ApplicationID int64 `gorm:"uniqueIndex:idx_employer_application"`
	Notes         string
	SavedAt       time.Time
}
