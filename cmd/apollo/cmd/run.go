package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/apollo/config"
	"github.com/rustyeddy/apollo/journal"
	"github.com/rustyeddy/apollo/report"
	"github.com/rustyeddy/apollo/session"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a session from a config file",
	Long: `Run a wagering session using settings from a configuration file.

The config file specifies the session parameters (stop loss, mode, base
stake, payout rates, step cap) and where to record the ledger.

Example:
  apollo run --config session.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sc, err := cfg.ToSession()
	if err != nil {
		return err
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	if j != nil {
		defer j.Close()
	}

	runner, err := session.NewRunner(sc, session.AlwaysLose{}, j)
	if err != nil {
		return err
	}

	res, err := runner.Run()
	if err != nil {
		return err
	}

	report.NewConsole().Render(sc, runner.Ledger(), res)
	return nil
}

// openJournal builds the journal backend named by the config; type "none"
// returns nil, which disables recording.
func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "csv":
		return journal.NewCSV(jc.BetsFile, jc.SessionsFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return nil, nil
	}
}
