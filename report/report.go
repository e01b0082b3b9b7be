// Package report renders a finished session for the console. It is a
// read-only consumer of the runner's ledger and result; nothing in here
// feeds back into the core.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/rustyeddy/apollo/session"
)

type Console struct {
	out io.Writer
}

// NewConsole writes to stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter writes to w; used by tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// Render prints the config banner, the full ledger table and the
// termination summary for one run.
func (c *Console) Render(cfg session.Config, recs []session.BetRecord, res session.Result) {
	c.Banner(cfg)
	c.Ledger(recs)
	c.Summary(res)
}

func (c *Console) Banner(cfg session.Config) {
	fmt.Fprintln(c.out, "--- APOLLO SESSION SIMULATION ---")
	fmt.Fprintf(c.out, "Configs: Stop Loss=$%.2f, Mode=%s, Base Stake=$%.2f\n",
		cfg.StopLoss, cfg.Mode, cfg.BaseStake)
	fmt.Fprintf(c.out, "Recovery engages on the 2nd consecutive loss (margin %.0f%%, payout %.2f).\n",
		cfg.Mode.ProfitMargin()*100, cfg.PayoutRecovery)
	fmt.Fprintln(c.out)
}

func (c *Console) Ledger(recs []session.BetRecord) {
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Instrument", "Stake ($)", "Result", "Balance", "Acc. Loss")

	for _, r := range recs {
		table.Append(
			fmt.Sprintf("%d", r.Step),
			string(r.Instrument),
			fmt.Sprintf("%.2f", r.Stake),
			r.Outcome.String(),
			fmt.Sprintf("%.2f", r.BalanceAfter),
			fmt.Sprintf("%.2f", r.AccumulatedLossAfter),
		)
	}

	table.Render()
}

func (c *Console) Summary(res session.Result) {
	fmt.Fprintln(c.out)
	switch res.Status {
	case session.StoppedOut:
		fmt.Fprintf(c.out, "STOP LOSS HIT ON BET %d\n", res.Steps)
	case session.MaxStepsReached:
		fmt.Fprintf(c.out, "STEP CAP REACHED AFTER %d BETS\n", res.Steps)
	}
	fmt.Fprintf(c.out, "Final Balance: $%.2f\n", res.FinalBalance)
	fmt.Fprintf(c.out, "Total Invested: $%.2f\n", res.TotalInvested)
	fmt.Fprintf(c.out, "Run ID: %s\n", res.RunID)
}
