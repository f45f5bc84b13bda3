package lifecycle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"job-intake/internal/storage"
)

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		name     string
		status   storage.Status
		location string
		want     string
	}{
		{"pending ignores location", storage.StatusPending, "Online", pendingMessage},
		{"pending elsewhere", storage.StatusPending, "Dubai", pendingMessage},
		{"applied online", storage.StatusApplied, "Online", appliedOnlineMessage},
		{"applied on site", storage.StatusApplied, "Dubai", appliedMessage},
		{"applied location is case sensitive", storage.StatusApplied, "online", appliedMessage},
		{"applied empty location", storage.StatusApplied, "", appliedMessage},
		{"declined", storage.StatusDeclined, "Online", declinedMessage},
		{"unknown status", storage.Status("Hired"), "Online", ""},
		{"empty status", storage.Status(""), "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusMessage(tt.status, tt.location))
		})
	}
}

func TestStatusMessageBranches(t *testing.T) {
	assert.True(t, strings.Contains(StatusMessage(storage.StatusPending, ""), "10 minutes to 24 hours"))
	assert.True(t, strings.Contains(StatusMessage(storage.StatusApplied, "Online"), "'Task'"))
	assert.True(t, strings.Contains(StatusMessage(storage.StatusApplied, "Lagos"), "Travel Documents"))
	assert.True(t, strings.Contains(StatusMessage(storage.StatusDeclined, ""), "with different email"))
}
