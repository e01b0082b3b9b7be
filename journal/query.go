package journal

import (
	"database/sql"
	"fmt"

	"github.com/rustyeddy/apollo/market"
)

// GetSession returns a single session record by run ID.
func (j *SQLiteJournal) GetSession(runID string) (SessionRecord, error) {
	var rec SessionRecord

	row := j.db.QueryRow(`
		SELECT run_id, mode, stop_loss, base_stake, status, final_balance, total_invested, steps, start_time, end_time
		FROM sessions
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&rec.RunID,
		&rec.Mode,
		&rec.StopLoss,
		&rec.BaseStake,
		&rec.Status,
		&rec.FinalBalance,
		&rec.TotalInvested,
		&rec.Steps,
		&rec.StartTime,
		&rec.EndTime,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return SessionRecord{}, fmt.Errorf("session %q not found", runID)
		}
		return SessionRecord{}, err
	}
	return rec, nil
}

// ListSessions returns all recorded sessions, most recent first (run IDs
// are ULIDs, so lexicographic order is generation order).
func (j *SQLiteJournal) ListSessions() ([]SessionRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, mode, stop_loss, base_stake, status, final_balance, total_invested, steps, start_time, end_time
		FROM sessions
		ORDER BY run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.Mode,
			&rec.StopLoss,
			&rec.BaseStake,
			&rec.Status,
			&rec.FinalBalance,
			&rec.TotalInvested,
			&rec.Steps,
			&rec.StartTime,
			&rec.EndTime,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListBetsByRun returns the ledger of one run in step order.
func (j *SQLiteJournal) ListBetsByRun(runID string) ([]BetRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, step, instrument, stake, outcome, balance_after, accumulated_loss_after
		FROM bets
		WHERE run_id = ?
		ORDER BY step ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BetRecord
	for rows.Next() {
		var rec BetRecord
		var instrument, outcome string
		if err := rows.Scan(
			&rec.RunID,
			&rec.Step,
			&instrument,
			&rec.Stake,
			&outcome,
			&rec.BalanceAfter,
			&rec.AccumulatedLossAfter,
		); err != nil {
			return nil, err
		}
		if rec.Instrument, err = market.ParseInstrument(instrument); err != nil {
			return nil, err
		}
		if rec.Outcome, err = market.ParseOutcome(outcome); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
