package events

var (
	ApplicationSubmittedTopic = "ApplicationSubmittedEvent"
	JobActivatedTopic         = "JobActivatedEvent"
	CandidateHiredTopic       = "CandidateHiredEvent"
)

type ApplicationSubmitted struct {
	ApplicationID int64
	JobID         int64
	ApplicantID   int64
}

type JobActivated struct {
	JobID int64
}

type CandidateHired struct {
	ApplicationID int64
	JobID         int64
	ApplicantID   int64
}
