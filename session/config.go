package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rustyeddy/apollo/market"
)

// ErrInvalidConfig wraps every configuration rejection so callers can test
// for the class without matching message text.
var ErrInvalidConfig = errors.New("invalid configuration")

// Mode selects the recovery profit margin.
type Mode string

const (
	Conservative Mode = "conservative"
	Aggressive   Mode = "aggressive"
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "conservative":
		return Conservative, nil
	case "aggressive":
		return Aggressive, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
	}
}

// ProfitMargin returns the recovery margin for the mode. Only meaningful
// for a mode that passed Validate.
func (m Mode) ProfitMargin() float64 {
	if m == Aggressive {
		return 0.15
	}
	return 0.02
}

// Config holds the immutable parameters of one session. It is supplied at
// construction and never mutated by the runner.
type Config struct {
	StopLoss       float64 // absolute cumulative-loss threshold
	Mode           Mode
	BaseStake      float64
	PayoutNormal   float64 // profit per unit staked, normal contract
	PayoutRecovery float64 // profit per unit staked, recovery contract
	MaxSteps       int     // hard cap on the step loop
}

// DefaultConfig mirrors the reference session parameters.
func DefaultConfig() Config {
	return Config{
		StopLoss:       50.0,
		Mode:           Conservative,
		BaseStake:      1.0,
		PayoutNormal:   market.Instruments[market.Normal].PayoutRate,
		PayoutRecovery: market.Instruments[market.Recovery].PayoutRate,
		MaxSteps:       20,
	}
}

// Validate rejects a bad config up front; the step loop assumes a valid
// one and performs no mid-run checks.
func (c Config) Validate() error {
	if c.StopLoss <= 0 {
		return fmt.Errorf("%w: stop loss must be positive, got %v", ErrInvalidConfig, c.StopLoss)
	}
	if c.Mode != Conservative && c.Mode != Aggressive {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	if c.BaseStake <= 0 {
		return fmt.Errorf("%w: base stake must be positive, got %v", ErrInvalidConfig, c.BaseStake)
	}
	if c.PayoutNormal <= 0 {
		return fmt.Errorf("%w: normal payout rate must be positive, got %v", ErrInvalidConfig, c.PayoutNormal)
	}
	if c.PayoutRecovery <= 0 {
		return fmt.Errorf("%w: recovery payout rate must be positive, got %v", ErrInvalidConfig, c.PayoutRecovery)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("%w: max steps must be positive, got %d", ErrInvalidConfig, c.MaxSteps)
	}
	return nil
}

// PayoutRate returns the profit-per-unit-stake for the given instrument.
func (c Config) PayoutRate(inst market.Instrument) float64 {
	if inst == market.Recovery {
		return c.PayoutRecovery
	}
	return c.PayoutNormal
}
