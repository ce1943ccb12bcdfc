package stream

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElapsedIntervals(t *testing.T) {
	tests := []struct {
		name               string
		from, to, interval uint64
		want               uint64
	}{
		{"zero span", 100, 100, 10, 0},
		{"to before from", 200, 100, 10, 0},
		{"exact intervals", 0, 100, 10, 10},
		{"partial interval floors", 0, 109, 10, 10},
		{"one second interval", 0, 77, 1, 77},
		{"interval larger than span", 0, 5, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ElapsedIntervals(tt.from, tt.to, tt.interval))
		})
	}
}

// testStream returns the reference stream used across accrual tests:
// starts at 0, ends at 1000, 5 per 10-second interval, no initial amount.
func testStream() *Stream {
	return &Stream{
		StartsAt:     0,
		EndsAt:       1000,
		FlowInterval: 10,
		FlowRate:     5,
	}
}

func TestAccruedAmount(t *testing.T) {
	tests := []struct {
		name string
		mod  func(s *Stream)
		at   uint64
		want uint64
	}{
		{"before start", func(s *Stream) { s.StartsAt = 50; s.EndsAt = 1050 }, 20, 0},
		{"at start", nil, 0, 0},
		{"mid stream", nil, 100, 50},
		{"partial interval floors", nil, 105, 50},
		{"at end", nil, 1000, 500},
		{"past end caps at lifetime", nil, 5000, 500},
		{"initial amount added", func(s *Stream) { s.InitialAmount = 7 }, 100, 57},
		{"open pause freezes clock", func(s *Stream) { s.PausedAt = 100 }, 300, 50},
		{"completed pause postpones", func(s *Stream) { s.TotalPausedSecs = 200 }, 300, 50},
		{"postponed accrual past ends_at", func(s *Stream) { s.TotalPausedSecs = 200 }, 1200, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testStream()
			if tt.mod != nil {
				tt.mod(s)
			}
			got, err := s.AccruedAmount(tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccruedAmount_Overflow(t *testing.T) {
	s := testStream()
	s.FlowInterval = 1
	s.FlowRate = math.MaxUint64

	_, err := s.AccruedAmount(100)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)

	s.FlowRate = 1
	s.InitialAmount = math.MaxUint64
	_, err = s.AccruedAmount(100)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)
}

func TestLifetimeAmount(t *testing.T) {
	s := testStream()
	got, err := s.LifetimeAmount()
	require.NoError(t, err)
	assert.Equal(t, uint64(500), got)

	s.InitialAmount = 100
	got, err = s.LifetimeAmount()
	require.NoError(t, err)
	assert.Equal(t, uint64(600), got)
}

// Pause freeze property: accrued at T after a pause of duration D equals
// accrued at T-D with no pause.
func TestPauseFreezeProperty(t *testing.T) {
	for _, d := range []uint64{10, 35, 200, 990} {
		paused := testStream()
		paused.TotalPausedSecs = d
		plain := testStream()

		for _, at := range []uint64{d, d + 100, d + 555, d + 1000} {
			withPause, err := paused.AccruedAmount(at)
			require.NoError(t, err)
			noPause, err := plain.AccruedAmount(at - d)
			require.NoError(t, err)
			assert.Equal(t, noPause, withPause, "pause=%d at=%d", d, at)
		}
	}
}
