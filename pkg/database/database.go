package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the application database. The default is an
// embedded SQLite file (FABRISYS_DB, default fabrisys.db) so the
// system runs fully local and offline; setting DATABASE_URL switches
// to Postgres for shared deployments.
func ConnectDB() *gorm.DB {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	config := &gorm.Config{Logger: newLogger}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), config)
		if err != nil {
			log.Fatal("Failed to connect to database. \n", err)
		}

		sqlDB, _ := db.DB()
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)

		log.Println("Database connection established (postgres)")
		return db
	}

	path := os.Getenv("FABRISYS_DB")
	if path == "" {
		path = "fabrisys.db"
	}

	db, err := gorm.Open(sqlite.Open(path), config)
	if err != nil {
		log.Fatal("Failed to open database file. \n", err)
	}

	// SQLite allows one writer at a time; a single connection keeps
	// transactions from tripping over SQLITE_BUSY.
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	log.Println("Database connection established (sqlite:", path+")")
	return db
}
