package sos

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps contacts in process memory. It backs the static
// contact list read from config.
type MemoryStore struct {
	mu       sync.RWMutex
	contacts []Contact
}

func NewMemoryStore(phoneNumbers []string) *MemoryStore {
	return &MemoryStore{contacts: newContacts(phoneNumbers)}
}

func (s *MemoryStore) ReplaceAll(ctx context.Context, phoneNumbers []string) error {
	contacts := newContacts(phoneNumbers)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = contacts

	return nil
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contacts := make([]Contact, len(s.contacts))
	copy(contacts, s.contacts)

	return contacts, nil
}

func newContacts(phoneNumbers []string) []Contact {
	contacts := make([]Contact, 0, len(phoneNumbers))
	for _, phoneNumber := range phoneNumbers {
		contacts = append(contacts, Contact{ID: uuid.NewString(), PhoneNumber: phoneNumber})
	}
	return contacts
}
