package sos

import (
	"context"
	"errors"
)

var (
	// ErrValidation is returned when the latitude or longitude is missing, zero or NaN
	ErrValidation = errors.New("latitude and longitude are required")

	// ErrNoContacts is returned when the store holds no contacts to notify
	ErrNoContacts = errors.New("no emergency contacts found")

	// ErrSendFailure is returned when at least one send failed. Other contacts may still have been notified.
	ErrSendFailure = errors.New("failed to send SOS messages")

	// ErrStorage wraps any contact store read or write failure
	ErrStorage = errors.New("contact store failure")
)

type Coordinate struct {
	Latitude  float64 `json:"latitude" validate:"required"`
	Longitude float64 `json:"longitude" validate:"required"`
}

type Contact struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phoneNumber"`
}

type Message struct {
	Body string
	From string
	To   string
}

// ContactStore holds the current set of emergency contacts.
// ReplaceAll removes every existing contact before inserting the new ones.
type ContactStore interface {
	ReplaceAll(ctx context.Context, phoneNumbers []string) error
	ListAll(ctx context.Context) ([]Contact, error)
}

// Sender delivers a single SMS
type Sender interface {
	Send(msg Message) error
}
