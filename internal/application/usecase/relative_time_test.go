package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/ctxtree/internal/application/usecase"
)

func TestGetRelativeTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"seconds", now.Add(-10 * time.Second), "just now"},
		{"minutes", now.Add(-5*time.Minute - time.Second), "5m ago"},
		{"hours", now.Add(-3*time.Hour - time.Minute), "3h ago"},
		{"days", now.Add(-2*24*time.Hour - time.Hour), "2d ago"},
		{"weeks", now.Add(-15*24*time.Hour - time.Hour), "2w ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.GetRelativeTime(tt.at))
		})
	}
}
