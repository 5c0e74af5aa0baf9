package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"TwseScreener/internal/model"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc readers don't block the daily write.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS run_history (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp           INTEGER NOT NULL,
			report_date         TEXT NOT NULL,
			total_analyzed      INTEGER,
			technical_count     INTEGER,
			fundamental_count   INTEGER,
			hybrid_count        INTEGER,
			high_dividend_count INTEGER,
			growth_count        INTEGER,
			value_count         INTEGER,
			data_source         TEXT,
			json_path           TEXT,
			html_path           TEXT,
			notified            INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_date ON run_history(report_date)`,

		`CREATE TABLE IF NOT EXISTS strategy_picks (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			report_date    TEXT NOT NULL,
			strategy       TEXT NOT NULL,
			rank           INTEGER,
			symbol         TEXT,
			name           TEXT,
			price          REAL,
			change_percent REAL,
			score          REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_picks_date ON strategy_picks(report_date)`,
		`CREATE INDEX IF NOT EXISTS idx_picks_symbol ON strategy_picks(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts the run summary plus one row per ranked pick.
func (r *SQLiteRecorder) RecordRun(run *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	res := run.Result

	notified := 0
	if run.Notified {
		notified = 1
	}
	_, err := r.db.Exec(`INSERT INTO run_history
		(timestamp, report_date, total_analyzed,
		 technical_count, fundamental_count, hybrid_count,
		 high_dividend_count, growth_count, value_count,
		 data_source, json_path, html_path, notified)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		now, res.Date, res.TotalAnalyzed,
		len(res.Technical), len(res.Fundamental), len(res.Hybrid),
		len(res.Thematic.HighDividend), len(res.Thematic.Growth), len(res.Thematic.Value),
		res.DataSource, run.JSONPath, run.HTMLPath, notified,
	)
	if err != nil {
		return err
	}

	lists := map[string][]model.ScoredStock{
		"technical":     res.Technical,
		"fundamental":   res.Fundamental,
		"hybrid":        res.Hybrid,
		"high_dividend": res.Thematic.HighDividend,
		"growth":        res.Thematic.Growth,
		"value":         res.Thematic.Value,
	}
	for strategyName, picks := range lists {
		for i, pick := range picks {
			if _, err := r.db.Exec(`INSERT INTO strategy_picks
				(timestamp, report_date, strategy, rank, symbol, name, price, change_percent, score)
				VALUES (?,?,?,?,?,?,?,?,?)`,
				now, res.Date, strategyName, i+1,
				pick.Symbol, pick.Name, pick.Price, pick.ChangePercent, pick.StrategyScore,
			); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
