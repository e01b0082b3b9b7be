package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/apollo/journal"
	"github.com/rustyeddy/apollo/report"
	"github.com/rustyeddy/apollo/session"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect a SQLite session journal",
	Long: `Query sessions and ledgers recorded in a SQLite journal.

Subcommands:
  sessions - List all recorded sessions
  show     - Print the ledger of one run

Examples:
  apollo journal sessions --db ./apollo.sqlite
  apollo journal show 01JC... --db ./apollo.sqlite`,
}

var journalSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List all recorded sessions",
	RunE:  runJournalSessions,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print the ledger of one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalSessionsCmd)
	journalCmd.AddCommand(journalShowCmd)

	journalCmd.PersistentFlags().StringVar(&journalDBPath, "db", "", "path to SQLite journal (required)")
	journalCmd.MarkPersistentFlagRequired("db")
}

func runJournalSessions(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	sessions, err := j.ListSessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no sessions recorded")
		return nil
	}

	for _, s := range sessions {
		fmt.Printf("%s  %-12s  mode=%-12s  stop=%.2f  steps=%d  balance=%.2f  invested=%.2f\n",
			s.RunID, s.Status, s.Mode, s.StopLoss, s.Steps, s.FinalBalance, s.TotalInvested)
	}
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	runID := args[0]

	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	rec, err := j.GetSession(runID)
	if err != nil {
		return err
	}
	bets, err := j.ListBetsByRun(runID)
	if err != nil {
		return err
	}

	ledger := make([]session.BetRecord, 0, len(bets))
	for _, b := range bets {
		ledger = append(ledger, session.BetRecord{
			Step:                 b.Step,
			Instrument:           b.Instrument,
			Stake:                b.Stake,
			Outcome:              b.Outcome,
			BalanceAfter:         b.BalanceAfter,
			AccumulatedLossAfter: b.AccumulatedLossAfter,
		})
	}

	console := report.NewConsole()
	console.Ledger(ledger)
	fmt.Printf("\n%s  status=%s  balance=%.2f  invested=%.2f  steps=%d\n",
		rec.RunID, rec.Status, rec.FinalBalance, rec.TotalInvested, rec.Steps)
	return nil
}
