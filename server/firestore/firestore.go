package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/Daskott/sosrelay/server/sos"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const (
	DEFAULT_COLLECTION = "contacts"

	// Firestore rejects batches with more writes than this
	maxBatchWrites = 500
)

type contactDoc struct {
	PhoneNumber string `firestore:"phoneNumber"`
}

// ContactStore is a sos.ContactStore backed by a firestore collection
type ContactStore struct {
	client     *firestore.Client
	collection string
}

func NewContactStore(ctx context.Context, projectID, collection, credentialsFilePath string) (*ContactStore, error) {
	var client *firestore.Client
	var err error

	if credentialsFilePath != "" {
		client, err = firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFilePath))
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}

	if err != nil {
		return nil, fmt.Errorf("NewContactStore: %v", err)
	}

	if collection == "" {
		collection = DEFAULT_COLLECTION
	}

	return &ContactStore{client: client, collection: collection}, nil
}

// ReplaceAll deletes every contact document then adds one per phone number.
// The deletes & inserts are committed separately, so a failure in between
// can leave the collection partially emptied.
func (store *ContactStore) ReplaceAll(ctx context.Context, phoneNumbers []string) error {
	coll := store.client.Collection(store.collection)

	refs, err := documentRefs(ctx, coll)
	if err != nil {
		return err
	}

	err = store.commitInBatches(ctx, len(refs), func(batch *firestore.WriteBatch, i int) {
		batch.Delete(refs[i])
	})
	if err != nil {
		return fmt.Errorf("delete contacts: %v", err)
	}

	err = store.commitInBatches(ctx, len(phoneNumbers), func(batch *firestore.WriteBatch, i int) {
		batch.Create(coll.NewDoc(), contactDoc{PhoneNumber: phoneNumbers[i]})
	})
	if err != nil {
		return fmt.Errorf("add contacts: %v", err)
	}

	return nil
}

func (store *ContactStore) ListAll(ctx context.Context) ([]sos.Contact, error) {
	contacts := []sos.Contact{}

	iter := store.client.Collection(store.collection).Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Documents.Next: %v", err)
		}

		doc := contactDoc{}
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("DataTo(%q): %v", snap.Ref.ID, err)
		}

		contacts = append(contacts, sos.Contact{ID: snap.Ref.ID, PhoneNumber: doc.PhoneNumber})
	}

	return contacts, nil
}

func (store *ContactStore) Close() error {
	return store.client.Close()
}

func documentRefs(ctx context.Context, coll *firestore.CollectionRef) ([]*firestore.DocumentRef, error) {
	refs := []*firestore.DocumentRef{}

	iter := coll.DocumentRefs(ctx)
	for {
		ref, err := iter.Next()
		if err == iterator.Done {
			return refs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("DocumentRefs.Next: %v", err)
		}
		refs = append(refs, ref)
	}
}

func (store *ContactStore) commitInBatches(ctx context.Context, n int, write func(*firestore.WriteBatch, int)) error {
	for start := 0; start < n; start += maxBatchWrites {
		end := start + maxBatchWrites
		if end > n {
			end = n
		}

		batch := store.client.Batch()
		for i := start; i < end; i++ {
			write(batch, i)
		}

		if _, err := batch.Commit(ctx); err != nil {
			return err
		}
	}

	return nil
}
