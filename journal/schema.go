// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS bets (
	run_id TEXT NOT NULL,
	step INTEGER NOT NULL,
	instrument TEXT NOT NULL,
	stake REAL NOT NULL,
	outcome TEXT NOT NULL,
	balance_after REAL NOT NULL,
	accumulated_loss_after REAL NOT NULL,
	PRIMARY KEY (run_id, step)
);

CREATE TABLE IF NOT EXISTS sessions (
	run_id TEXT PRIMARY KEY,
	mode TEXT NOT NULL,
	stop_loss REAL NOT NULL,
	base_stake REAL NOT NULL,
	status TEXT NOT NULL,
	final_balance REAL NOT NULL,
	total_invested REAL NOT NULL,
	steps INTEGER NOT NULL,
	start_time DATETIME NOT NULL,
	end_time DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bets_run ON bets(run_id);
`
