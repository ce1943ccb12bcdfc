package stream

import "math/bits"

// ElapsedIntervals returns the number of full intervals between from and to,
// clamped to zero when to <= from. interval must be > 0.
func ElapsedIntervals(from, to, interval uint64) uint64 {
	if to <= from {
		return 0
	}
	return (to - from) / interval
}

// checkedMul multiplies two amounts, failing with ErrArithmeticOverflow if
// the product does not fit in 64 bits.
func checkedMul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrArithmeticOverflow
	}
	return lo, nil
}

// checkedAdd adds two amounts, failing with ErrArithmeticOverflow on carry.
func checkedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrArithmeticOverflow
	}
	return sum, nil
}

// saturatingSub returns a - b, clamped to zero.
func saturatingSub(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}

// streamingSeconds returns the number of accrual-eligible seconds from the
// stream start through at. Paused spans are excluded (an open pause freezes
// the clock at PausedAt), and the result is capped at the scheduled duration,
// so pauses postpone accrual past EndsAt rather than forfeiting it.
func (s *Stream) streamingSeconds(at uint64) uint64 {
	if at <= s.StartsAt {
		return 0
	}
	elapsed := at - s.StartsAt
	paused := s.TotalPausedSecs
	if s.IsPaused() && at > s.PausedAt {
		paused += at - s.PausedAt
	}
	secs := saturatingSub(elapsed, paused)
	if d := s.Duration(); secs > d {
		secs = d
	}
	return secs
}

// AccruedAmount returns the recipient's total entitlement from the stream
// start through at: the initial amount plus the flow over every full interval
// of accrual-eligible time. Before the stream starts the entitlement is zero.
func (s *Stream) AccruedAmount(at uint64) (uint64, error) {
	if at <= s.StartsAt {
		return 0, nil
	}
	flow, err := checkedMul(ElapsedIntervals(0, s.streamingSeconds(at), s.FlowInterval), s.FlowRate)
	if err != nil {
		return 0, err
	}
	return checkedAdd(s.InitialAmount, flow)
}

// LifetimeAmount returns the total amount the stream can ever owe the
// recipient: the initial amount plus the flow over the full scheduled
// duration. This is also the maximum useful deposit.
func (s *Stream) LifetimeAmount() (uint64, error) {
	flow, err := checkedMul(ElapsedIntervals(s.StartsAt, s.EndsAt, s.FlowInterval), s.FlowRate)
	if err != nil {
		return 0, err
	}
	return checkedAdd(s.InitialAmount, flow)
}

// minDeposit returns the smallest acceptable creation deposit for a
// non-prepaid stream: the accrual over periodSecs (or the full duration,
// whichever is shorter) plus the initial amount.
func (s *Stream) minDeposit(periodSecs uint64) (uint64, error) {
	window := s.Duration()
	if periodSecs < window {
		window = periodSecs
	}
	flow, err := checkedMul(ElapsedIntervals(0, window, s.FlowInterval), s.FlowRate)
	if err != nil {
		return 0, err
	}
	return checkedAdd(s.InitialAmount, flow)
}
