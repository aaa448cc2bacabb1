package sos

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/Daskott/sosrelay/utils"
	"github.com/go-playground/validator"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const mapsBaseURL = "https://www.google.com/maps?q="

// Dispatcher fans an SOS out to every contact in a ContactStore through a Sender.
// It is safe for concurrent use.
type Dispatcher struct {
	store    ContactStore
	sender   Sender
	from     string
	validate *validator.Validate
	logg     *zap.SugaredLogger
}

// NewDispatcher returns a Dispatcher that sends from the 'from' phone number.
func NewDispatcher(store ContactStore, sender Sender, from string, logg *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{
		store:    store,
		sender:   sender,
		from:     from,
		validate: validator.New(),
		logg:     logg,
	}
}

// Dispatch sends one SOS message to every contact in the store.
// The dispatch fails with ErrSendFailure if any single send fails,
// even though other contacts may already have been notified.
func (d *Dispatcher) Dispatch(ctx context.Context, coordinate Coordinate) error {
	if err := d.validateCoordinate(coordinate); err != nil {
		return err
	}

	contacts, err := d.store.ListAll(ctx)
	if err != nil {
		return errors.Wrapf(ErrStorage, "ListAll: %v", err)
	}

	if len(contacts) == 0 {
		return ErrNoContacts
	}

	body := FormatMessage(coordinate)

	var (
		group   errgroup.Group
		mu      sync.Mutex
		sendErr error
	)

	// No context is shared between sends, so a failed send never aborts the others
	for _, contact := range contacts {
		contact := contact
		group.Go(func() error {
			err := d.sender.Send(Message{Body: body, From: d.from, To: contact.PhoneNumber})
			if err != nil {
				d.logg.Errorf("failed to send SOS to contact id=%v: %v", contact.ID, err)

				mu.Lock()
				sendErr = multierr.Append(sendErr, err)
				mu.Unlock()
			}
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return errors.Wrapf(ErrSendFailure, "%d of %d sends failed: %v",
			len(multierr.Errors(sendErr)), len(contacts), sendErr)
	}

	d.logg.Infof("SOS sent to %d contact(s)", len(contacts))
	return nil
}

func (d *Dispatcher) validateCoordinate(coordinate Coordinate) error {
	if math.IsNaN(coordinate.Latitude) || math.IsNaN(coordinate.Longitude) {
		return ErrValidation
	}

	if err := d.validate.Struct(coordinate); err != nil {
		return errors.Wrap(ErrValidation, err.Error())
	}

	return nil
}

// MapsURL returns a google maps link pointing at the coordinate
func MapsURL(coordinate Coordinate) string {
	return mapsBaseURL + utils.FormatFloat(coordinate.Latitude) + "," + utils.FormatFloat(coordinate.Longitude)
}

// FormatMessage returns the SMS body sent for an SOS, exactly
//
//	"Please help me!\n📍 Location: https://www.google.com/maps?q=<lat>,<lon>"
//
// where <lat> and <lon> use the shortest decimal form that round-trips, e.g. 12.9 or -0.5.
func FormatMessage(coordinate Coordinate) string {
	return fmt.Sprintf("Please help me!\n📍 Location: %s", MapsURL(coordinate))
}
