package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/apollo/journal"
	"github.com/rustyeddy/apollo/market"
	"github.com/rustyeddy/apollo/report"
	"github.com/rustyeddy/apollo/session"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a session from command-line flags",
	Long: `Run a single wagering session and print its ledger.

By default every bet loses, which probes how deep a loss run goes before
the stop loss fires. Pass --outcomes to replay a fixed win/loss sequence
instead (e.g. "LLWLL"; steps past the end of the string lose).

Examples:
  apollo simulate
  apollo simulate --mode aggressive --stop-loss 100
  apollo simulate --outcomes LLW --max-steps 10
  apollo simulate --db ./apollo.sqlite`,
	RunE: runSimulate,
}

var (
	simStopLoss  float64
	simMode      string
	simBaseStake float64
	simMaxSteps  int
	simOutcomes  string
	simDBPath    string
)

func init() {
	rootCmd.AddCommand(simulateCmd)

	def := session.DefaultConfig()
	simulateCmd.Flags().Float64Var(&simStopLoss, "stop-loss", def.StopLoss, "absolute cumulative-loss threshold")
	simulateCmd.Flags().StringVar(&simMode, "mode", string(def.Mode), "recovery mode (conservative or aggressive)")
	simulateCmd.Flags().Float64Var(&simBaseStake, "base-stake", def.BaseStake, "stake used while not in recovery")
	simulateCmd.Flags().IntVar(&simMaxSteps, "max-steps", def.MaxSteps, "hard cap on the number of bets")
	simulateCmd.Flags().StringVar(&simOutcomes, "outcomes", "", "fixed outcome sequence of W/L characters (default: always lose)")
	simulateCmd.Flags().StringVar(&simDBPath, "db", "", "optional SQLite journal path")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	mode, err := session.ParseMode(simMode)
	if err != nil {
		return err
	}

	cfg := session.DefaultConfig()
	cfg.StopLoss = simStopLoss
	cfg.Mode = mode
	cfg.BaseStake = simBaseStake
	cfg.MaxSteps = simMaxSteps

	source, err := outcomeSource(simOutcomes)
	if err != nil {
		return err
	}

	var j journal.Journal
	if simDBPath != "" {
		sj, err := journal.NewSQLite(simDBPath)
		if err != nil {
			return fmt.Errorf("create journal: %w", err)
		}
		defer sj.Close()
		j = sj
	}

	runner, err := session.NewRunner(cfg, source, j)
	if err != nil {
		return err
	}

	res, err := runner.Run()
	if err != nil {
		return err
	}

	report.NewConsole().Render(cfg, runner.Ledger(), res)
	return nil
}

// outcomeSource builds the session's outcome source from a W/L string; an
// empty string means the reference always-lose source.
func outcomeSource(seq string) (session.OutcomeSource, error) {
	if seq == "" {
		return session.AlwaysLose{}, nil
	}

	outcomes := make([]market.Outcome, 0, len(seq))
	for _, r := range strings.ToUpper(seq) {
		switch r {
		case 'W':
			outcomes = append(outcomes, market.Win)
		case 'L':
			outcomes = append(outcomes, market.Loss)
		default:
			return nil, fmt.Errorf("invalid outcome character %q (want W or L)", r)
		}
	}
	return session.NewSequence(outcomes...), nil
}
