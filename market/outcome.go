package market

import "fmt"

// Outcome: +1 win, -1 loss
type Outcome int8

const (
	Win  Outcome = +1
	Loss Outcome = -1
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "WIN"
	case Loss:
		return "LOSS"
	}
	return fmt.Sprintf("Outcome(%d)", int8(o))
}

func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "WIN":
		return Win, nil
	case "LOSS":
		return Loss, nil
	default:
		return 0, fmt.Errorf("unknown outcome: %q", s)
	}
}
