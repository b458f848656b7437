package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"playex_v2/internal/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

var DB *sql.DB

// Connect opens the pool and pings with a retry loop so the service can
// start before the database container is ready.
func Connect() {
	var err error
	DB, err = sql.Open("pgx", config.AppConfig.DBConnStr)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	attempts := config.AppConfig.DBConnectAttempts
	if attempts < 1 {
		attempts = 1
	}
	for i := 1; ; i++ {
		if err = DB.Ping(); err == nil {
			break
		}
		if i >= attempts {
			log.Fatalf("Error connecting to database after %d attempts: %v", attempts, err)
		}
		log.Printf("Database not ready (attempt %d/%d): %v", i, attempts, err)
		time.Sleep(config.AppConfig.DBConnectBackoff)
	}

	fmt.Println("Successfully connected to PostgreSQL database!")
}

func Close() {
	if DB != nil {
		DB.Close()
		fmt.Println("Database connection closed.")
	}
}
