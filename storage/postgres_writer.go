package storage

import (
	"database/sql"
	"fmt"
	"time"

	"flight-agent/models"
	"flight-agent/utils"

	_ "github.com/lib/pq"
)

// PostgresWriter records search history in PostgreSQL
type PostgresWriter struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresWriter creates a new PostgresWriter and pings the DB
func NewPostgresWriter(connStr string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.Info("Connected to PostgreSQL successfully")
	return &PostgresWriter{db: db, logger: logger}, nil
}

// CreateTables creates the history tables if they don't exist
func (w *PostgresWriter) CreateTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS flight_searches (
		id             SERIAL PRIMARY KEY,
		query          TEXT         NOT NULL,
		origin         TEXT,
		destination    TEXT,
		departure_date TEXT,
		return_date    TEXT,
		status         VARCHAR(20)  NOT NULL,
		reason         TEXT,
		price          NUMERIC(10,2),
		currency       VARCHAR(8),
		detail         TEXT,
		searched_at    TIMESTAMP    NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS flight_offers (
		id        SERIAL PRIMARY KEY,
		search_id INT NOT NULL REFERENCES flight_searches(id),
		position  INT NOT NULL,
		price     NUMERIC(10,2) NOT NULL,
		currency  VARCHAR(8),
		detail    TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_searches_status ON flight_searches (status);
	CREATE INDEX IF NOT EXISTS idx_searches_route  ON flight_searches (origin, destination);
	CREATE INDEX IF NOT EXISTS idx_offers_search   ON flight_offers (search_id);
	CREATE INDEX IF NOT EXISTS idx_offers_price    ON flight_offers (price);
	`
	_, err := w.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	w.logger.Info("Search history tables are ready")
	return nil
}

// RecordSearch inserts one completed search plus every normalized offer
// observed during it, in a single transaction
func (w *PostgresWriter) RecordSearch(query string, result models.PipelineResult) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var origin, destination, departureDate, returnDate sql.NullString
	if result.Trip != nil {
		origin = nullable(result.Trip.Origin)
		destination = nullable(result.Trip.Destination)
		departureDate = nullable(result.Trip.DepartureDate)
		returnDate = nullable(result.Trip.ReturnDate)
	}

	var price sql.NullFloat64
	var currency, detail sql.NullString
	if result.Selected != nil {
		price = sql.NullFloat64{Float64: result.Selected.Offer.PriceValue, Valid: true}
		currency = nullable(result.Selected.Offer.CurrencySymbol)
		detail = nullable(result.Selected.Offer.DetailText)
	}

	reason := nullable(result.Reason)
	if result.Err != nil {
		reason = nullable(result.Err.Error())
	}

	var searchID int64
	err = tx.QueryRow(`
		INSERT INTO flight_searches
			(query, origin, destination, departure_date, return_date, status, reason, price, currency, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, query, origin, destination, departureDate, returnDate, string(result.Status), reason, price, currency, detail).Scan(&searchID)
	if err != nil {
		return fmt.Errorf("failed to insert search: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO flight_offers (search_id, position, price, currency, detail)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i, offer := range result.Offers {
		if _, execErr := stmt.Exec(searchID, i+1, offer.PriceValue, offer.CurrencySymbol, offer.DetailText); execErr != nil {
			w.logger.Warn("Skipping offer insert at position %d: %v", i+1, execErr)
			continue
		}
		inserted++
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	w.logger.Info("Recorded search %d with %d/%d offers", searchID, inserted, len(result.Offers))
	return nil
}

// Close closes the database connection
func (w *PostgresWriter) Close() error {
	if w.db != nil {
		return w.db.Close()
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
