package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_CanTransitionTo_ForwardOnly(t *testing.T) {

	assert.True(t, StatusPending.CanTransitionTo(StatusReviewed))
	assert.True(t, StatusPending.CanTransitionTo(StatusInterview))
	assert.True(t, StatusReviewed.CanTransitionTo(StatusInterview))

	assert.False(t, StatusReviewed.CanTransitionTo(StatusPending))
	assert.False(t, StatusInterview.CanTransitionTo(StatusPending))
	assert.False(t, StatusInterview.CanTransitionTo(StatusReviewed))
}

func Test_CanTransitionTo_TerminalFromAnyNonTerminal(t *testing.T) {

	for _, from := range []ApplicationStatus{StatusPending, StatusReviewed, StatusInterview} {
		assert.True(t, from.CanTransitionTo(StatusRejected), "from %s", from)
		assert.True(t, from.CanTransitionTo(StatusHired), "from %s", from)
	}
}

func Test_CanTransitionTo_TerminalAdmitsNothing(t *testing.T) {

	targets := []ApplicationStatus{StatusPending, StatusReviewed, StatusInterview, StatusRejected, StatusHired}

	for _, from := range []ApplicationStatus{StatusRejected, StatusHired} {
		for _, target := range targets {
			assert.False(t, from.CanTransitionTo(target), "from %s to %s", from, target)
		}
	}
}

func Test_CanTransitionTo_SelfIsNotATransition(t *testing.T) {

	for _, status := range []ApplicationStatus{StatusPending, StatusReviewed, StatusInterview, StatusRejected, StatusHired} {
		assert.False(t, status.CanTransitionTo(status), "status %s", status)
	}
}

func Test_ToApplicationStatus_RejectsUnknownValues(t *testing.T) {

	status, err := ToApplicationStatus("pending")
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, status)

	_, err = ToApplicationStatus("archived")
	assert.Error(t, err)
}
