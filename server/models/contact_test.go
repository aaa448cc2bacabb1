package models

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func initializeTestDb(t *testing.T) *gorm.DB {
	db, err := OpenDB("test-passphrase", t.TempDir())
	require.NoError(t, err)

	t.Cleanup(func() { CloseDB(db) })
	return db
}

func TestReplaceAllReplacesPreviousContacts(t *testing.T) {
	ctx := context.Background()
	store := NewContactStore(initializeTestDb(t))

	err := store.ReplaceAll(ctx, []string{"+15550000001", "+15550000002", "+15550000003"})
	require.NoError(t, err)

	err = store.ReplaceAll(ctx, []string{"+1555", "+1556"})
	require.NoError(t, err)

	contacts, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 2)

	phoneNumbers := []string{}
	for _, contact := range contacts {
		assert.Len(t, contact.ID, 36, "id should be a store assigned uuid")
		phoneNumbers = append(phoneNumbers, contact.PhoneNumber)
	}
	assert.ElementsMatch(t, []string{"+1555", "+1556"}, phoneNumbers)
}

func TestReplaceAllAllowsDuplicatePhoneNumbers(t *testing.T) {
	ctx := context.Background()
	store := NewContactStore(initializeTestDb(t))

	err := store.ReplaceAll(ctx, []string{"+1555", "+1555"})
	require.NoError(t, err)

	contacts, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.NotEqual(t, contacts[0].ID, contacts[1].ID)
}

func TestReplaceAllWithEmptyListClearsStore(t *testing.T) {
	ctx := context.Background()
	store := NewContactStore(initializeTestDb(t))

	require.NoError(t, store.ReplaceAll(ctx, []string{"+1555"}))
	require.NoError(t, store.ReplaceAll(ctx, []string{}))

	contacts, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestDbFilePath(t *testing.T) {
	root := t.TempDir()

	path, err := DbFilePath(root)
	require.NoError(t, err)
	assert.Equal(t, root+"/db/"+DB_NAME, path)
	assert.DirExists(t, root+"/db")
}

func copyFile(t *testing.T, src, dst string) {
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dst, data, 0600))
}

func TestCheckpointMakesDbFileSelfContained(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	db, err := OpenDB("test-passphrase", root)
	require.NoError(t, err)
	defer CloseDB(db)

	store := NewContactStore(db)
	require.NoError(t, store.ReplaceAll(ctx, []string{"+1555", "+1556"}))
	require.NoError(t, store.Checkpoint(ctx))

	// Copy only the main db file, while the source db is still open
	srcFile, err := DbFilePath(root)
	require.NoError(t, err)

	copyRoot := t.TempDir()
	dstFile, err := DbFilePath(copyRoot)
	require.NoError(t, err)
	copyFile(t, srcFile, dstFile)

	copyDb, err := OpenDB("test-passphrase", copyRoot)
	require.NoError(t, err)
	defer CloseDB(copyDb)

	contacts, err := NewContactStore(copyDb).ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 2)

	phoneNumbers := []string{contacts[0].PhoneNumber, contacts[1].PhoneNumber}
	assert.ElementsMatch(t, []string{"+1555", "+1556"}, phoneNumbers)
}
