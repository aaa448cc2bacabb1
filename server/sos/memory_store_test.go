package sos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreReplaceAll(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore([]string{"+15550001111"})

	err := store.ReplaceAll(ctx, []string{"+1555", "+1556"})
	require.NoError(t, err)

	contacts, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 2)

	phoneNumbers := []string{}
	for _, contact := range contacts {
		assert.NotEmpty(t, contact.ID)
		phoneNumbers = append(phoneNumbers, contact.PhoneNumber)
	}
	assert.ElementsMatch(t, []string{"+1555", "+1556"}, phoneNumbers)
	assert.NotEqual(t, contacts[0].ID, contacts[1].ID)
}

func TestMemoryStoreListAllReturnsCopy(t *testing.T) {
	store := NewMemoryStore([]string{"+15550001111"})

	contacts, _ := store.ListAll(context.Background())
	contacts[0].PhoneNumber = "changed"

	contacts, _ = store.ListAll(context.Background())
	assert.Equal(t, "+15550001111", contacts[0].PhoneNumber)
}
