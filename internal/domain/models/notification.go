package models

import "time"

type NotificationKind string

const (
	NotificationReceived  NotificationKind = "application_received"
	NotificationStatus    NotificationKind = "application_status"
	NotificationShortlist NotificationKind = "application_shortlist"
	NotificationRejected  NotificationKind = "application_rejected"
	NotificationHired     NotificationKind = "application_hired"
	NotificationJobPosted NotificationKind = "job_posted"
	NotificationJobAlert  NotificationKind = "job_alert"
	NotificationSystem    NotificationKind = "system"
)

type Notification struct {
	ID                   int64
	UserID               int64 `gorm:"index"`
	Kind                 NotificationKind
	Title                string
	Message              string
	Link                 string
	IsRead               bool `gorm:"default:false"`
	CreatedAt            time.Time
	ReadAt               *time.Time
	RelatedJobID         *int64
	RelatedApplicationID *int64
}
