// Package history persists served forecasts in a SQLite database so
// predictions can later be compared against observed usage.
package history

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/homevolt/homevolt/core/model"
)

// Store keeps one row per (appliance, date); re-forecasting a day
// overwrites the previous prediction.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the database at path and ensures schema.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS forecasts (
        appliance TEXT,
        date TEXT,
        predicted_kwh REAL,
        ci_lower REAL,
        ci_upper REAL,
        clamped INTEGER,
        created_at INTEGER,
        PRIMARY KEY(appliance, date)
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Add inserts or replaces the forecast for the result's appliance/date.
func (s *Store) Add(r model.ForecastResult) error {
	clamped := 0
	if r.Clamped {
		clamped = 1
	}
	_, err := s.db.Exec(`INSERT INTO forecasts (appliance, date, predicted_kwh, ci_lower, ci_upper, clamped, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(appliance, date) DO UPDATE SET
            predicted_kwh = excluded.predicted_kwh,
            ci_lower = excluded.ci_lower,
            ci_upper = excluded.ci_upper,
            clamped = excluded.clamped,
            created_at = excluded.created_at`,
		r.Appliance, r.Date, r.PredictedKWh, r.CILower, r.CIUpper, clamped, time.Now().Unix())
	return err
}

// Query returns the appliance's forecasts with dates in [start, end],
// ordered by date. Dates are canonical YYYY-MM-DD strings, so string
// comparison is date comparison.
func (s *Store) Query(appliance, start, end string) ([]model.ForecastResult, error) {
	rows, err := s.db.Query(`SELECT appliance, date, predicted_kwh, ci_lower, ci_upper, clamped
        FROM forecasts WHERE appliance = ? AND date >= ? AND date <= ? ORDER BY date`,
		appliance, start, end)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []model.ForecastResult
	for rows.Next() {
		var r model.ForecastResult
		var clamped int
		if err := rows.Scan(&r.Appliance, &r.Date, &r.PredictedKWh, &r.CILower, &r.CIUpper, &clamped); err != nil {
			return nil, err
		}
		r.Clamped = clamped != 0
		res = append(res, r)
	}
	return res, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
