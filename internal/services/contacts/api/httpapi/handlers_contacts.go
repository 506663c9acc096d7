package httpapi

import (
	"errors"
	"net/http"

	apperrors "github.com/louisbranch/contactbook/internal/platform/errors"
	"github.com/louisbranch/contactbook/internal/platform/httpx"
	"github.com/louisbranch/contactbook/internal/services/contacts/contact"
	"github.com/louisbranch/contactbook/internal/services/contacts/storage"
)

const (
	defaultPageLimit = 10
	minPageLimit     = 10
	maxPageLimit     = 500
	maxBirthdayDays  = 365
)

var (
	errContactNotFound = apperrors.New(apperrors.CodeNotFound, "Contact not found")
	errContactExists   = apperrors.New(apperrors.CodeAlreadyExists, "Contact with this email or phone number already exists")
)

func (h *handler) handleListContacts(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultPageLimit, minPageLimit, maxPageLimit)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0, 0, noUpperBound)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	contacts, err := h.store.ListContacts(r.Context(), currentUser(r).ID, limit, offset)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, newContactResponses(contacts))
}

func (h *handler) handleUpcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", contact.DefaultBirthdayWindow, 1, maxBirthdayDays)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	contacts, err := h.store.ListAllContacts(r.Context(), currentUser(r).ID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	upcoming := contact.UpcomingBirthdays(contacts, h.now(), days)
	resp := make([]UpcomingBirthdayResponse, 0, len(upcoming))
	for _, u := range upcoming {
		resp = append(resp, UpcomingBirthdayResponse{
			ContactResponse: newContactResponse(u.Contact),
			NextBirthday:    u.NextBirthday.Format(contact.BirthdayLayout),
		})
	}
	_ = httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *handler) handleGetContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contact_id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	c, err := h.store.GetContact(r.Context(), currentUser(r).ID, id)
	if err != nil {
		httpx.WriteError(w, r, contactError(err))
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, newContactResponse(c))
}

func (h *handler) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	input, err := contact.Normalize(req.input(), h.now())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	c, err := h.store.CreateContact(r.Context(), currentUser(r).ID, input)
	if err != nil {
		httpx.WriteError(w, r, contactError(err))
		return
	}
	_ = httpx.WriteJSON(w, http.StatusCreated, newContactResponse(c))
}

func (h *handler) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contact_id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	input, err := contact.Normalize(req.input(), h.now())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	c, err := h.store.UpdateContact(r.Context(), currentUser(r).ID, id, input)
	if err != nil {
		httpx.WriteError(w, r, contactError(err))
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, newContactResponse(c))
}

func (h *handler) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contact_id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if _, err := h.store.DeleteContact(r.Context(), currentUser(r).ID, id); err != nil {
		httpx.WriteError(w, r, contactError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// contactError swaps generic storage errors for contact-specific messages.
func contactError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return errContactNotFound
	case errors.Is(err, storage.ErrAlreadyExists):
		return errContactExists
	default:
		return err
	}
}
