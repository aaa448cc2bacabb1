package models

import (
	"context"

	"github.com/Daskott/sosrelay/server/sos"
	"gorm.io/gorm"
)

type Contact struct {
	BaseModel
	PhoneNumber string `json:"phoneNumber" gorm:"not null"`
}

// ContactStore is a sos.ContactStore backed by the sqlite db
type ContactStore struct {
	db *gorm.DB
}

func NewContactStore(db *gorm.DB) *ContactStore {
	return &ContactStore{db: db}
}

// ReplaceAll deletes every contact then inserts one per phone number.
// Both steps run in a single transaction, so a failed insert leaves the
// previous contacts in place.
func (store *ContactStore) ReplaceAll(ctx context.Context, phoneNumbers []string) error {
	return store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// gorm refuses global deletes without a condition
		err := tx.Where("1 = 1").Delete(&Contact{}).Error
		if err != nil {
			return err
		}

		if len(phoneNumbers) == 0 {
			return nil
		}

		contacts := make([]Contact, 0, len(phoneNumbers))
		for _, phoneNumber := range phoneNumbers {
			contacts = append(contacts, Contact{PhoneNumber: phoneNumber})
		}

		return tx.Create(&contacts).Error
	})
}

func (store *ContactStore) ListAll(ctx context.Context) ([]sos.Contact, error) {
	rows := []Contact{}

	err := store.db.WithContext(ctx).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	contacts := make([]sos.Contact, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, sos.Contact{ID: row.ID, PhoneNumber: row.PhoneNumber})
	}

	return contacts, nil
}

// Checkpoint flushes the WAL into the main db file, so copying that file alone
// captures every committed contact
func (store *ContactStore) Checkpoint(ctx context.Context) error {
	return Checkpoint(store.db.WithContext(ctx))
}
