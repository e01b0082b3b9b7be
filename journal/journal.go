// journal/journal.go
package journal

import (
	"time"

	"github.com/rustyeddy/apollo/market"
)

// BetRecord is one row of a session ledger as the journal stores it.
type BetRecord struct {
	RunID                string
	Step                 int
	Instrument           market.Instrument
	Stake                float64
	Outcome              market.Outcome
	BalanceAfter         float64
	AccumulatedLossAfter float64
}

// SessionRecord summarizes a finished run.
type SessionRecord struct {
	RunID         string
	Mode          string
	StopLoss      float64
	BaseStake     float64
	Status        string
	FinalBalance  float64
	TotalInvested float64
	Steps         int
	StartTime     time.Time
	EndTime       time.Time
}

type Journal interface {
	RecordBet(BetRecord) error
	RecordSession(SessionRecord) error
	Close() error
}
