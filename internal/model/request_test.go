package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	legal := [][2]string{
		{RequestPending, RequestApproved},
		{RequestPending, RequestRejected},
		{RequestApproved, RequestIssued},
	}
	for _, e := range legal {
		assert.True(t, CanTransition(e[0], e[1]), "%s -> %s should be legal", e[0], e[1])
	}

	statuses := []string{RequestPending, RequestApproved, RequestRejected, RequestIssued}
	legalSet := map[[2]string]bool{}
	for _, e := range legal {
		legalSet[e] = true
	}
	for _, from := range statuses {
		for _, to := range statuses {
			if legalSet[[2]string{from, to}] {
				continue
			}
			assert.False(t, CanTransition(from, to), "%s -> %s should be illegal", from, to)
		}
	}
}
