package session

import "github.com/rustyeddy/apollo/market"

// OutcomeSource supplies the result of each bet. The runner treats it as an
// external collaborator: the staking policy and the step loop never depend
// on where outcomes come from, so a live or replayed feed can be swapped in
// without touching either.
type OutcomeSource interface {
	NextOutcome(step int, instrument market.Instrument, stake float64) market.Outcome
}

// OutcomeFunc adapts a plain function to an OutcomeSource.
type OutcomeFunc func(step int, instrument market.Instrument, stake float64) market.Outcome

func (f OutcomeFunc) NextOutcome(step int, instrument market.Instrument, stake float64) market.Outcome {
	return f(step, instrument, stake)
}

// AlwaysLose reports a loss for every bet. It is the reference source for
// probing how deep a loss run goes before the stop loss fires.
type AlwaysLose struct{}

func (AlwaysLose) NextOutcome(step int, instrument market.Instrument, stake float64) market.Outcome {
	_ = step
	_ = instrument
	_ = stake
	return market.Loss
}

// Sequence replays a fixed outcome list in order; once exhausted it keeps
// reporting losses.
type Sequence struct {
	outcomes []market.Outcome
	next     int
}

func NewSequence(outcomes ...market.Outcome) *Sequence {
	return &Sequence{outcomes: outcomes}
}

func (s *Sequence) NextOutcome(step int, instrument market.Instrument, stake float64) market.Outcome {
	_ = step
	_ = instrument
	_ = stake
	if s.next >= len(s.outcomes) {
		return market.Loss
	}
	o := s.outcomes[s.next]
	s.next++
	return o
}
