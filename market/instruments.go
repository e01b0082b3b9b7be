// market/instruments.go
package market

import "fmt"

// Instrument identifies the contract type a stake is placed on. The two
// contracts pay at very different rates, which is what makes the recovery
// switch worthwhile in the first place.
type Instrument string

const (
	// Normal is the low-payout contract used while not in recovery.
	Normal Instrument = "NORMAL"
	// Recovery is the high-payout contract used to claw back a loss run.
	Recovery Instrument = "RECOVERY"
)

type InstrumentMeta struct {
	Name       string
	PayoutRate float64 // profit per unit staked on a winning bet
	MinStake   float64 // minimum tradable unit
}

var Instruments = map[Instrument]InstrumentMeta{
	Normal: {
		Name:       "NORMAL",
		PayoutRate: 0.19,
		MinStake:   0.35,
	},
	Recovery: {
		Name:       "RECOVERY",
		PayoutRate: 1.20,
		MinStake:   0.35,
	},
}

func ParseInstrument(s string) (Instrument, error) {
	switch s {
	case "NORMAL":
		return Normal, nil
	case "RECOVERY":
		return Recovery, nil
	default:
		return "", fmt.Errorf("unknown instrument: %q", s)
	}
}
