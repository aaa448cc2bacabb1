package models

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Daskott/sosrelay/utils"
	sqliteEncrypt "github.com/Daskott/gorm-sqlite-cipher"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const DB_NAME = "sosrelay.db"

// OpenDB opens the encrypted sqlite db in 'dbRootDir'/db & auto-migrates the schema
func OpenDB(passPhrase string, dbRootDir string) (*gorm.DB, error) {
	dbDSNVal, err := dbDSN(passPhrase, dbRootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to set sqlite DSN: %v", err)
	}

	db, err := gorm.Open(sqliteEncrypt.Open(dbDSNVal), &gorm.Config{
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				LogLevel:                  gormLogger.Silent,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(&Contact{})
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %v", err)
	}

	return db, nil
}

// CloseDB closes the connection pool behind 'db'
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Checkpoint moves every committed WAL frame into the main db file & truncates the WAL
func Checkpoint(db *gorm.DB) error {
	err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error
	if err != nil {
		return fmt.Errorf("wal checkpoint: %v", err)
	}
	return nil
}

// DbFilePath returns the path of the sqlite db file, creating its directory if needed
func DbFilePath(dbRootDir string) (string, error) {
	dbDir := filepath.Join(dbRootDir, "db")

	err := utils.CreateDirIfNotExist(dbDir)
	if err != nil {
		return "", err
	}

	return filepath.Join(dbDir, DB_NAME), nil
}

func dbDSN(passPhrase string, dbRootDir string) (string, error) {
	dbFilePath, err := DbFilePath(dbRootDir)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"file:%v?_pragma_key=%s&_pragma_cipher_page_size=4096&_journal_mode=WAL",
		dbFilePath,
		passPhrase,
	), nil
}
