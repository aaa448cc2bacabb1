package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Daskott/sosrelay/server/cron"
	"github.com/Daskott/sosrelay/server/gstorage"
	"github.com/Daskott/sosrelay/server/logger"
	"github.com/Daskott/sosrelay/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storageStub struct {
	downloadErr error
	uploadErr   error
	downloads   []string
	uploads     []string
	closed      bool
	calls       *[]string
}

func (s *storageStub) UploadFile(ctx context.Context, bucket, object, filePath string) error {
	s.uploads = append(s.uploads, bucket+"/"+object)
	if s.calls != nil {
		*s.calls = append(*s.calls, "upload")
	}
	return s.uploadErr
}

func (s *storageStub) DownloadFile(ctx context.Context, bucket, object, destFileName string) error {
	s.downloads = append(s.downloads, bucket+"/"+object)
	return s.downloadErr
}

func (s *storageStub) Close() error {
	s.closed = true
	return nil
}

type checkpointStoreStub struct {
	calls *[]string
}

func (c checkpointStoreStub) Checkpoint(ctx context.Context) error {
	*c.calls = append(*c.calls, "checkpoint")
	return nil
}

var testStorageConfig = shared.StorageConfig{
	Bucket:               "sosrelay",
	Prefix:               "backups",
	SqliteBackupSchedule: "*/30 * * * *",
	EnableSqliteBackup:   true,
}

func newTestBackup(t *testing.T, storage objectStorage) *sqliteBackup {
	dbFile := filepath.Join(t.TempDir(), "sosrelay.db")
	return newSqliteBackupWithStorage(storage, testStorageConfig, dbFile, logger.NewNopLogger())
}

func TestRestoreSkipsDownloadWhenLocalDbExists(t *testing.T) {
	storage := &storageStub{}
	backup := newTestBackup(t, storage)
	require.NoError(t, os.WriteFile(backup.dbFile, []byte("db"), 0600))

	assert.Nil(t, backup.restore(context.Background()))
	assert.Empty(t, storage.downloads)
}

func TestRestoreDownloadsMissingDb(t *testing.T) {
	testCases := []struct {
		description string
		downloadErr error
		expectErr   bool
	}{
		{"backup downloaded", nil, false},
		{"no backup in bucket", gstorage.ErrObjectNotExist, false},
		{"storage failure", fmt.Errorf("permission denied"), true},
	}

	for _, tcase := range testCases {
		t.Run(tcase.description, func(t *testing.T) {
			storage := &storageStub{downloadErr: tcase.downloadErr}
			backup := newTestBackup(t, storage)

			err := backup.restore(context.Background())
			assert.Equal(t, tcase.expectErr, err != nil, "restore error: %v", err)
			assert.Equal(t, []string{"sosrelay/backups/sosrelay.db"}, storage.downloads)
		})
	}
}

func TestBackupCheckpointsBeforeUpload(t *testing.T) {
	calls := []string{}
	storage := &storageStub{calls: &calls}
	backup := newTestBackup(t, storage)
	backup.watch(checkpointStoreStub{calls: &calls})

	require.NoError(t, backup.backup())
	assert.Equal(t, []string{"checkpoint", "upload"}, calls)
	assert.Equal(t, []string{"sosrelay/backups/sosrelay.db"}, storage.uploads)
}

func TestBackupUploadFailure(t *testing.T) {
	backup := newTestBackup(t, &storageStub{uploadErr: fmt.Errorf("quota exceeded")})
	assert.NotNil(t, backup.backup())
}

func TestCloseUploadsWithoutCheckpoint(t *testing.T) {
	calls := []string{}
	storage := &storageStub{calls: &calls}
	backup := newTestBackup(t, storage)
	backup.watch(checkpointStoreStub{calls: &calls})

	require.NoError(t, backup.close())
	assert.Equal(t, []string{"upload"}, calls, "store is already closed on shutdown")
	assert.True(t, storage.closed)
}

func TestRegisterJobs(t *testing.T) {
	scheduler := cron.NewCronScheduler("UTC")
	require.NoError(t, registerJobs(scheduler, nil))
	assert.Empty(t, scheduler.Jobs(), "no backup job without a backup")

	scheduler = cron.NewCronScheduler("UTC")
	require.NoError(t, registerJobs(scheduler, newTestBackup(t, &storageStub{})))

	jobs := scheduler.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, []string{BACKUP_SQLITE_DB_JOB}, jobs[0].Tags())
}
