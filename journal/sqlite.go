package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordBet(b BetRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO bets
		(run_id, step, instrument, stake, outcome, balance_after, accumulated_loss_after)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.RunID, b.Step, string(b.Instrument), b.Stake,
		b.Outcome.String(), b.BalanceAfter, b.AccumulatedLossAfter,
	)
	return err
}

func (j *SQLiteJournal) RecordSession(s SessionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO sessions
		(run_id, mode, stop_loss, base_stake, status, final_balance, total_invested, steps, start_time, end_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.RunID, s.Mode, s.StopLoss, s.BaseStake, s.Status,
		s.FinalBalance, s.TotalInvested, s.Steps, s.StartTime, s.EndTime,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
