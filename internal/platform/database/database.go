package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
)

// Connect opens a MySQL handle and pings it with exponential backoff until
// the database is reachable. DSNs must include parseTime=true so DATETIME
// columns scan into time.Time.
func Connect(dsn string, logger zerolog.Logger) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second

	err = backoff.Retry(func() error {
		if pingErr := db.Ping(); pingErr != nil {
			logger.Warn().Err(pingErr).Msg("Database not reachable yet, retrying")
			return pingErr
		}
		return nil
	}, bo)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	logger.Info().Msg("Connected to database")
	return db, nil
}
