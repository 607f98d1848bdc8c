package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// TimeRange represents different time window options
type TimeRange int

const (
	Range30Min TimeRange = iota
	Range1Hour
	Range6Hour
	Range1Day
	Range1Week
)

func (t TimeRange) String() string {
	switch t {
	case Range30Min:
		return "30min"
	case Range1Hour:
		return "1hour"
	case Range6Hour:
		return "6hours"
	case Range1Day:
		return "1day"
	case Range1Week:
		return "1week"
	default:
		return "unknown"
	}
}

// Duration returns the time duration for the range
func (t TimeRange) Duration() time.Duration {
	switch t {
	case Range30Min:
		return 30 * time.Minute
	case Range1Hour:
		return 1 * time.Hour
	case Range6Hour:
		return 6 * time.Hour
	case Range1Day:
		return 24 * time.Hour
	case Range1Week:
		return 7 * 24 * time.Hour
	default:
		return 30 * time.Minute
	}
}

// bucketSeconds is the aggregation step for a range, 0 for raw rows
func (t TimeRange) bucketSeconds() int64 {
	switch t {
	case Range1Hour:
		return 30
	case Range6Hour:
		return 300
	case Range1Day:
		return 600
	case Range1Week:
		return 3600
	default:
		return 0
	}
}

// Retention is how long history rows are kept
const Retention = 7 * 24 * time.Hour

// DataPoint is the accident counter at a point in time
type DataPoint struct {
	Timestamp     time.Time
	AccidentCount int
}

// StatsEntry is one polled counter value waiting to be written
type StatsEntry struct {
	Timestamp     time.Time
	AccidentCount int
}

// AlertEntry is one positive accident status poll
type AlertEntry struct {
	Timestamp time.Time
	Severity  string
}

// Storage keeps a local history of polled stats and alerts
type Storage struct {
	db        *sql.DB
	log       *zap.Logger
	writeChan chan *StatsEntry
	flushChan chan chan struct{}
	closeChan chan struct{}
	done      chan struct{}
}

// NewStorage opens (or creates) the history database at dbPath
func NewStorage(dbPath string, logger *zap.Logger) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// modernc sqlite and concurrent writers don't mix well
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Storage{
		db:        db,
		log:       logger.Named("storage"),
		writeChan: make(chan *StatsEntry, 1000),
		flushChan: make(chan chan struct{}),
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
	}

	go s.writer()
	go s.cleanup()

	return s, nil
}

// createTables creates the database schema
func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS stats_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp INTEGER NOT NULL,
		accident_count INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_stats_time
	ON stats_history(timestamp);

	CREATE TABLE IF NOT EXISTS alert_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp INTEGER NOT NULL,
		severity TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_alert_time
	ON alert_history(timestamp);
	`

	_, err := db.Exec(schema)
	return err
}

// Write queues a stats entry for writing
func (s *Storage) Write(entry *StatsEntry) {
	select {
	case s.writeChan <- entry:
	default:
		// Channel full, drop rather than block the UI
		s.log.Warn("stats write queue full, dropping entry")
	}
}

// RecordAlert stores a positive accident poll right away
func (s *Storage) RecordAlert(entry AlertEntry) error {
	_, err := s.db.Exec(
		"INSERT INTO alert_history (timestamp, severity) VALUES (?, ?)",
		entry.Timestamp.Unix(), entry.Severity,
	)
	if err != nil {
		return fmt.Errorf("failed to record alert: %w", err)
	}
	return nil
}

// CountAlerts returns how many alerts were recorded inside the range
func (s *Storage) CountAlerts(timeRange TimeRange) (int, error) {
	cutoff := time.Now().Add(-timeRange.Duration()).Unix()

	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM alert_history WHERE timestamp > ?", cutoff,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count alerts: %w", err)
	}
	return n, nil
}

// writer runs in background and batch writes to database
func (s *Storage) writer() {
	defer close(s.done)

	buffer := make([]*StatsEntry, 0, 100)
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case entry := <-s.writeChan:
			buffer = append(buffer, entry)
			if len(buffer) >= 50 {
				s.batchWrite(buffer)
				buffer = buffer[:0]
			}

		case <-ticker.C:
			if len(buffer) > 0 {
				s.batchWrite(buffer)
				buffer = buffer[:0]
			}

		case ack := <-s.flushChan:
			buffer = s.drain(buffer)
			if len(buffer) > 0 {
				s.batchWrite(buffer)
				buffer = buffer[:0]
			}
			close(ack)

		case <-s.closeChan:
			buffer = s.drain(buffer)
			if len(buffer) > 0 {
				s.batchWrite(buffer)
			}
			return
		}
	}
}

// drain moves every queued entry into buffer without blocking
func (s *Storage) drain(buffer []*StatsEntry) []*StatsEntry {
	for {
		select {
		case entry := <-s.writeChan:
			buffer = append(buffer, entry)
		default:
			return buffer
		}
	}
}

// Flush blocks until everything queued so far is written
func (s *Storage) Flush() {
	ack := make(chan struct{})
	select {
	case s.flushChan <- ack:
		<-ack
	case <-s.done:
	}
}

// batchWrite writes a batch of entries in one transaction
func (s *Storage) batchWrite(entries []*StatsEntry) {
	tx, err := s.db.Begin()
	if err != nil {
		s.log.Error("begin batch write", zap.Error(err))
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO stats_history (timestamp, accident_count)
		VALUES (?, ?)
	`)
	if err != nil {
		s.log.Error("prepare batch write", zap.Error(err))
		return
	}
	defer stmt.Close()

	for _, entry := range entries {
		if _, err := stmt.Exec(entry.Timestamp.Unix(), entry.AccidentCount); err != nil {
			s.log.Warn("insert stats row", zap.Error(err))
		}
	}

	if err := tx.Commit(); err != nil {
		s.log.Error("commit batch write", zap.Error(err))
	}
}

// Query retrieves counter history for a time range. Longer ranges are
// bucketed, keeping the highest count seen in each bucket.
func (s *Storage) Query(timeRange TimeRange) ([]DataPoint, error) {
	cutoff := time.Now().Add(-timeRange.Duration()).Unix()

	var (
		rows *sql.Rows
		err  error
	)
	if bucket := timeRange.bucketSeconds(); bucket == 0 {
		rows, err = s.db.Query(`
			SELECT timestamp, accident_count
			FROM stats_history
			WHERE timestamp > ?
			ORDER BY timestamp ASC
		`, cutoff)
	} else {
		rows, err = s.db.Query(`
			SELECT
				(timestamp / ?) * ? AS bucket,
				MAX(accident_count)
			FROM stats_history
			WHERE timestamp > ?
			GROUP BY bucket
			ORDER BY bucket ASC
		`, bucket, bucket, cutoff)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query stats history: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// scanRows scans database rows into DataPoints
func scanRows(rows *sql.Rows) ([]DataPoint, error) {
	var points []DataPoint

	for rows.Next() {
		var timestamp int64
		var count int

		if err := rows.Scan(&timestamp, &count); err != nil {
			continue
		}

		points = append(points, DataPoint{
			Timestamp:     time.Unix(timestamp, 0),
			AccidentCount: count,
		})
	}

	return points, rows.Err()
}

// cleanup removes old data periodically
func (s *Storage) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Prune(time.Now().Add(-Retention))
		case <-s.closeChan:
			return
		}
	}
}

// Prune deletes history older than cutoff, in batches so the UI's reads
// never wait long on the lock
func (s *Storage) Prune(cutoff time.Time) {
	const batchSize = 1000
	for _, table := range []string{"stats_history", "alert_history"} {
		for {
			result, err := s.db.Exec(
				"DELETE FROM "+table+" WHERE id IN (SELECT id FROM "+table+" WHERE timestamp < ? LIMIT ?)",
				cutoff.Unix(), batchSize,
			)
			if err != nil {
				s.log.Error("prune history", zap.String("table", table), zap.Error(err))
				break
			}

			affected, err := result.RowsAffected()
			if err != nil || affected == 0 {
				break
			}
		}
	}
}

// Close flushes pending writes and closes the database
func (s *Storage) Close() error {
	close(s.closeChan)
	<-s.done
	return s.db.Close()
}
