package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Daskott/sosrelay/server/sos"
	"github.com/go-playground/validator"
	"go.uber.org/zap"
)

const isoTimestampFormat = "2006-01-02T15:04:05.000Z07:00"

type ResponsePayload struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type ContactsPayload struct {
	Success  bool          `json:"success"`
	Contacts []sos.Contact `json:"contacts"`
}

type CheckPayload struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type AddContactsRequest struct {
	Contacts []string `json:"contacts" validate:"required,dive,required"`
}

type handler struct {
	dispatcher *sos.Dispatcher
	store      sos.ContactStore
	validate   *validator.Validate
	logg       *zap.SugaredLogger
}

func newHandler(dispatcher *sos.Dispatcher, store sos.ContactStore, logg *zap.SugaredLogger) *handler {
	return &handler{
		dispatcher: dispatcher,
		store:      store,
		validate:   validator.New(),
		logg:       logg,
	}
}

func (h *handler) sendSOS(rw http.ResponseWriter, r *http.Request) {
	coordinate := sos.Coordinate{}

	err := json.NewDecoder(r.Body).Decode(&coordinate)
	if err != nil {
		h.logg.Infof("sendSOS: invalid body: %v", err)
		h.writeResponse(rw, ResponsePayload{Error: "Latitude and longitude are required."}, http.StatusBadRequest)
		return
	}

	err = h.dispatcher.Dispatch(r.Context(), coordinate)
	if errors.Is(err, sos.ErrValidation) {
		h.writeResponse(rw, ResponsePayload{Error: "Latitude and longitude are required."}, http.StatusBadRequest)
		return
	}

	if errors.Is(err, sos.ErrNoContacts) {
		h.writeResponse(rw, ResponsePayload{Error: "No emergency contacts found."}, http.StatusBadRequest)
		return
	}

	if err != nil {
		h.logg.Errorf("sendSOS: %v", err)
		h.writeResponse(rw, ResponsePayload{Error: "Failed to send SOS messages."}, http.StatusInternalServerError)
		return
	}

	h.writeResponse(rw, ResponsePayload{Success: true, Message: "SOS messages sent successfully!"}, http.StatusOK)
}

func (h *handler) check(rw http.ResponseWriter, r *http.Request) {
	h.writeJSON(rw, CheckPayload{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(isoTimestampFormat),
	}, http.StatusOK)
}

func (h *handler) addContacts(rw http.ResponseWriter, r *http.Request) {
	data := AddContactsRequest{}

	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		h.logg.Infof("addContacts: invalid body: %v", err)
		h.writeResponse(rw, ResponsePayload{Error: "Contacts must be an array of phone numbers."}, http.StatusBadRequest)
		return
	}

	err = h.validate.Struct(data)
	if err != nil {
		h.logg.Infof("addContacts: %v", err)
		h.writeResponse(rw, ResponsePayload{Error: "Contacts must be an array of phone numbers."}, http.StatusBadRequest)
		return
	}

	err = h.store.ReplaceAll(r.Context(), data.Contacts)
	if err != nil {
		h.logg.Errorf("addContacts: %v", err)
		h.writeResponse(rw, ResponsePayload{Error: "Failed to save contacts."}, http.StatusInternalServerError)
		return
	}

	h.writeResponse(rw, ResponsePayload{Success: true, Message: "Contacts saved successfully!"}, http.StatusOK)
}

func (h *handler) getContacts(rw http.ResponseWriter, r *http.Request) {
	contacts, err := h.store.ListAll(r.Context())
	if err != nil {
		h.logg.Errorf("getContacts: %v", err)
		h.writeResponse(rw, ResponsePayload{Error: "Failed to retrieve contacts."}, http.StatusInternalServerError)
		return
	}

	if contacts == nil {
		contacts = []sos.Contact{}
	}

	h.writeJSON(rw, ContactsPayload{Success: true, Contacts: contacts}, http.StatusOK)
}
