package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/Daskott/sosrelay/server/gstorage"
	"github.com/Daskott/sosrelay/server/models"
	"github.com/Daskott/sosrelay/shared"
	"github.com/Daskott/sosrelay/utils"
	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

const BACKUP_SQLITE_DB_JOB = "backupSqliteDb"

// objectStorage is the part of gstorage.GStorage used for sqlite backups
type objectStorage interface {
	UploadFile(ctx context.Context, bucket, object, filePath string) error
	DownloadFile(ctx context.Context, bucket, object, destFileName string) error
	Close() error
}

// checkpointer is implemented by stores that must flush pending writes
// into their db file before it is copied
type checkpointer interface {
	Checkpoint(ctx context.Context) error
}

type sqliteBackup struct {
	storage    objectStorage
	checkpoint func(context.Context) error
	bucket     string
	object     string
	dbFile     string
	logg       *zap.SugaredLogger
	schedule   string
}

func newSqliteBackup(ctx context.Context, config *shared.ServerConfig, dbRootDir string, logg *zap.SugaredLogger) (*sqliteBackup, error) {
	dbFile, err := models.DbFilePath(dbRootDir)
	if err != nil {
		return nil, err
	}

	gs, err := gstorage.NewGStorage(ctx, config.Google.ApplicationCredentials)
	if err != nil {
		return nil, err
	}

	return newSqliteBackupWithStorage(gs, config.Google.Storage, dbFile, logg), nil
}

func newSqliteBackupWithStorage(storage objectStorage, config shared.StorageConfig, dbFile string, logg *zap.SugaredLogger) *sqliteBackup {
	return &sqliteBackup{
		storage:  storage,
		bucket:   config.Bucket,
		object:   gstorage.ObjectName(config.Prefix, dbFile),
		dbFile:   dbFile,
		logg:     logg,
		schedule: config.SqliteBackupSchedule,
	}
}

// watch makes every backup checkpoint 'store' first, if it supports it
func (b *sqliteBackup) watch(store interface{}) {
	if cp, ok := store.(checkpointer); ok {
		b.checkpoint = cp.Checkpoint
	}
}

// restore pulls the db from google storage, if no local db exists yet
func (b *sqliteBackup) restore(ctx context.Context) error {
	if utils.FileExist(b.dbFile) {
		return nil
	}

	err := b.storage.DownloadFile(ctx, b.bucket, b.object, b.dbFile)
	if errors.Is(err, gstorage.ErrObjectNotExist) {
		b.logg.Infof("no sqlite backup found at gs://%v/%v", b.bucket, b.object)
		return nil
	}

	if err != nil {
		return fmt.Errorf("restore: %v", err)
	}

	b.logg.Infof("sqlite db restored from gs://%v/%v", b.bucket, b.object)
	return nil
}

func (b *sqliteBackup) backup() error {
	ctx := context.Background()

	if b.checkpoint != nil {
		if err := b.checkpoint(ctx); err != nil {
			return fmt.Errorf("backup: %v", err)
		}
	}

	err := b.storage.UploadFile(ctx, b.bucket, b.object, b.dbFile)
	if err != nil {
		return fmt.Errorf("backup: %v", err)
	}

	b.logg.Infof("sqlite db backed up to gs://%v/%v", b.bucket, b.object)
	return nil
}

// close takes a final backup & releases the storage client.
// The store must be closed first, which flushes the WAL itself.
func (b *sqliteBackup) close() error {
	defer b.storage.Close()

	b.checkpoint = nil
	return b.backup()
}

func registerJobs(scheduler *gocron.Scheduler, backup *sqliteBackup) error {
	if backup == nil {
		return nil
	}

	_, err := scheduler.Cron(backup.schedule).Tag(BACKUP_SQLITE_DB_JOB).Do(func() {
		if err := backup.backup(); err != nil {
			backup.logg.Error(err)
		}
	})

	return err
}
