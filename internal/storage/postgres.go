package storage

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

const (
	connectAttempts = 5
	connectBackoff  = 5 * time.Second
)

// NewPostgresDB opens a connection pool to postgres and verifies it with a
// bounded number of ping attempts. Only this startup connection is retried;
// business operations are never retried.
func NewPostgresDB(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	var pingErr error
	for attempt := connectAttempts; attempt > 0; attempt-- {
		pingErr = db.Ping()
		if pingErr == nil {
			log.Println("postgres connected")
			return db, nil
		}

		log.Printf(
			"db connection failed (%d left): %v\n",
			attempt-1,
			pingErr,
		)
		time.Sleep(connectBackoff)
	}

	return nil, fmt.Errorf(
		"failed to connect to postgres after %d attempts: %w",
		connectAttempts,
		pingErr,
	)
}
