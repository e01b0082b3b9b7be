// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	bets     *csv.Writer
	sessions *csv.Writer
	bf, sf   *os.File
}

func NewCSV(betsPath, sessionsPath string) (*CSVJournal, error) {
	bf, err := os.Create(betsPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(sessionsPath)
	if err != nil {
		return nil, err
	}

	bw := csv.NewWriter(bf)
	sw := csv.NewWriter(sf)

	if err := bw.Write([]string{"run_id", "step", "instrument", "stake", "outcome", "balance_after", "accumulated_loss_after"}); err != nil {
		return nil, err
	}
	if err := sw.Write([]string{"run_id", "mode", "stop_loss", "base_stake", "status", "final_balance", "total_invested", "steps", "start_time", "end_time"}); err != nil {
		return nil, err
	}

	bw.Flush()
	if err := bw.Error(); err != nil {
		return nil, err
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{bw, sw, bf, sf}, nil
}

func (j *CSVJournal) RecordBet(b BetRecord) error {
	err := j.bets.Write([]string{
		b.RunID,
		strconv.Itoa(b.Step),
		string(b.Instrument),
		f(b.Stake),
		b.Outcome.String(),
		f(b.BalanceAfter),
		f(b.AccumulatedLossAfter),
	})
	if err != nil {
		return err
	}

	j.bets.Flush()
	return j.bets.Error()
}

func (j *CSVJournal) RecordSession(s SessionRecord) error {
	err := j.sessions.Write([]string{
		s.RunID,
		s.Mode,
		f(s.StopLoss),
		f(s.BaseStake),
		s.Status,
		f(s.FinalBalance),
		f(s.TotalInvested),
		strconv.Itoa(s.Steps),
		s.StartTime.Format(time.RFC3339),
		s.EndTime.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	j.sessions.Flush()
	return j.sessions.Error()
}

func (j *CSVJournal) Close() error {
	j.bets.Flush()
	if err := j.bets.Error(); err != nil {
		return err
	}
	j.sessions.Flush()
	if err := j.sessions.Error(); err != nil {
		return err
	}

	if err := j.bf.Close(); err != nil {
		return err
	}
	if err := j.sf.Close(); err != nil {
		return err
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
