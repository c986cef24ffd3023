package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvitationTransitions(t *testing.T) {
	cases := []struct {
		from, to InvitationStatus
		want     bool
	}{
		{StatusSent, StatusAccepted, true},
		{StatusSent, StatusDeclined, true},
		{StatusAccepted, StatusDeclined, true},
		{StatusDeclined, StatusAccepted, true}, // capacity re-checked by the service
		{StatusSent, StatusSent, false},
		{StatusAccepted, StatusAccepted, false},
		{StatusAccepted, StatusSent, false},
		{StatusDeclined, StatusDeclined, false},
		{StatusDeclined, StatusSent, false},
	}
	for _, tc := range cases {
		inv := Invitation{Status: tc.from}
		assert.Equal(t, tc.want, inv.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}
