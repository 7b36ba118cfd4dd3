package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllowedTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{"reported", "dispatched", true},
		{"reported", "closed", true},
		{"reported", "rescued", false},
		{"dispatched", "rescued", true},
		{"dispatched", "closed", true},
		{"dispatched", "reported", false},
		{"rescued", "closed", true},
		{"rescued", "dispatched", false},
		{"closed", "reported", false},
		{"closed", "closed", false},
		{"bogus", "closed", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, allowedTransition(tt.from, tt.to), "%s to %s", tt.from, tt.to)
	}
}
