package poll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_Intervals(t *testing.T) {
	s := NewScheduler(2*time.Second, 10*time.Second)

	assert.Equal(t, 2*time.Second, s.Interval())

	s.SetVisibility(Visible)
	assert.Equal(t, 10*time.Second, s.Interval())

	s.SetVisibility(Hidden)
	assert.Equal(t, time.Duration(0), s.Interval())
	assert.False(t, s.ShouldPoll())

	s.SetVisibility(Focused)
	assert.Equal(t, 2*time.Second, s.Interval())
	assert.True(t, s.ShouldPoll())
}

func TestScheduler_RefetchOnBecomingVisible(t *testing.T) {
	s := NewScheduler(2*time.Second, 10*time.Second)

	// Losing visibility never triggers a refetch.
	assert.False(t, s.SetVisibility(Visible))
	assert.False(t, s.SetVisibility(Hidden))

	// Regaining it does.
	assert.True(t, s.SetVisibility(Visible))
	assert.True(t, s.SetVisibility(Focused))

	// No change, no refetch.
	assert.False(t, s.SetVisibility(Focused))
}

func TestScheduler_BlurredNeverFasterThanFocused(t *testing.T) {
	s := NewScheduler(10*time.Second, 2*time.Second)

	s.SetVisibility(Visible)
	assert.Equal(t, 10*time.Second, s.Interval())
}
