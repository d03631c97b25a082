package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{DeletionPending, DeletionProcessing, true},
		{DeletionPending, DeletionRejected, true},
		{DeletionPending, DeletionCompleted, false},
		{DeletionProcessing, DeletionCompleted, true},
		{DeletionProcessing, DeletionRejected, true},
		{DeletionProcessing, DeletionPending, false},
		{DeletionCompleted, DeletionProcessing, false},
		{DeletionRejected, DeletionPending, false},
		{"bogus", DeletionProcessing, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}
