package models

import (
	"strings"
	"time"
)

const (
	// HiredStageName is the reserved system stage, created lazily per
	// job. A custom stage may carry the same name; the system one is
	// identified by IsSystem, never by name.
	HiredStageName  = "Hired"
	HiredStageOrder = 9999
)

type Stage struct {
	ID        int64
	JobID     int64  `gorm:"uniqueIndex:idx_job_stage_name"`
	Name      string `gorm:"uniqueIndex:idx_job_stage_name"`
	SortOrder int
	IsSystem  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MilestoneKind maps a stage name to the notification kind a move into
// it should emit. Offer is reported with the interview wording.
func MilestoneKind(stageName string) (NotificationKind, bool) {
	switch strings.ToLower(stageName) {
	case "shortlisted":
		return NotificationShortlist, true
	case "interview", "offer":
		return NotificationStatus, true
	default:
		return "", false
	}
}
