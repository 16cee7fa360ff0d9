package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dangerouswriter/internal/core/clock"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestNewTrackerStartsAtNow(t *testing.T) {
	manual := clock.NewManual(epoch)
	tracker := New(manual, true, time.Second)

	assert.Equal(t, epoch, tracker.LastActivity())
	assert.Equal(t, 5*time.Second, tracker.Remaining(5*time.Second))
}

func TestRecordKeystroke(t *testing.T) {
	tests := []struct {
		name          string
		grace         bool
		wantRemaining time.Duration
	}{
		{name: "grace enabled adds buffer", grace: true, wantRemaining: 6 * time.Second},
		{name: "grace disabled reads exactly timeout", grace: false, wantRemaining: 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manual := clock.NewManual(epoch)
			tracker := New(manual, tt.grace, time.Second)

			manual.Advance(3 * time.Second)
			tracker.RecordKeystroke()

			assert.Equal(t, tt.wantRemaining, tracker.Remaining(5*time.Second))
		})
	}
}

func TestGraceMovesActivityAheadOfClock(t *testing.T) {
	manual := clock.NewManual(epoch)
	tracker := New(manual, true, time.Second)

	tracker.RecordKeystroke()

	assert.True(t, tracker.LastActivity().After(manual.Now()))
	assert.Equal(t, time.Second, tracker.LastActivity().Sub(manual.Now()))
}

func TestRearmIgnoresGrace(t *testing.T) {
	manual := clock.NewManual(epoch)
	tracker := New(manual, true, time.Second)

	manual.Advance(10 * time.Second)
	tracker.Rearm()

	assert.Equal(t, manual.Now(), tracker.LastActivity())
	assert.Equal(t, 5*time.Second, tracker.Remaining(5*time.Second))
}

func TestRemainingGoesNegative(t *testing.T) {
	manual := clock.NewManual(epoch)
	tracker := New(manual, false, time.Second)

	manual.Advance(7 * time.Second)

	assert.Equal(t, -2*time.Second, tracker.Remaining(5*time.Second))
}

func TestSetGraceEnabledAppliesToNextKeystroke(t *testing.T) {
	manual := clock.NewManual(epoch)
	tracker := New(manual, true, time.Second)

	tracker.SetGraceEnabled(false)
	assert.False(t, tracker.GraceEnabled())
	tracker.RecordKeystroke()
	assert.Equal(t, epoch, tracker.LastActivity())

	tracker.SetGraceEnabled(true)
	tracker.RecordKeystroke()
	assert.Equal(t, epoch.Add(time.Second), tracker.LastActivity())
}

func TestNilClockFallsBackToSystem(t *testing.T) {
	tracker := New(nil, false, time.Second)

	remaining := tracker.Remaining(5 * time.Second)
	assert.InDelta(t, float64(5*time.Second), float64(remaining), float64(100*time.Millisecond))
}
