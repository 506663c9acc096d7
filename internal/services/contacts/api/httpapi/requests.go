package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/contactbook/internal/platform/errors"
	"github.com/louisbranch/contactbook/internal/services/contacts/contact"
)

const maxJSONBodyBytes = 1 << 20

var errInvalidBody = apperrors.New(apperrors.CodeInvalidArgument, "Invalid request body")

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type contactRequest struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	PhoneNumber    string  `json:"phone_number"`
	Birthday       string  `json:"birthday"`
	AdditionalData *string `json:"additional_data"`
	// Completed is accepted on update for client compatibility and ignored.
	Completed *bool `json:"completed,omitempty"`
}

func (c contactRequest) input() contact.Input {
	input := contact.Input{
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Birthday:    c.Birthday,
	}
	if c.AdditionalData != nil {
		input.AdditionalData = *c.AdditionalData
	}
	return input
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Wrap(errInvalidBody.Code, "Request body is required", err)
		}
		return apperrors.Wrap(errInvalidBody.Code, errInvalidBody.Message, err)
	}
	return nil
}

// noUpperBound disables the upper limit of queryInt.
const noUpperBound = -1

// queryInt reads an integer query parameter bounded to [lo, hi].
func queryInt(r *http.Request, name string, fallback int, lo int, hi int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < lo || (hi != noUpperBound && value > hi) {
		message := name + " must be between " + strconv.Itoa(lo) + " and " + strconv.Itoa(hi)
		if hi == noUpperBound {
			message = name + " must be greater than or equal to " + strconv.Itoa(lo)
		}
		return 0, apperrors.WithMetadata(apperrors.CodeContactInvalidPageRange,
			message, map[string]string{"Param": name})
	}
	return value, nil
}

// pathID reads a positive integer path value.
func pathID(r *http.Request, name string) (int64, error) {
	value, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || value < 1 {
		return 0, apperrors.WithMetadata(apperrors.CodeInvalidArgument,
			name+" must be an integer greater than or equal to 1", map[string]string{"Param": name})
	}
	return value, nil
}

// baseURL is the public root of the API as seen by the caller, ending in "/".
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); forwarded == "http" || forwarded == "https" {
		scheme = forwarded
	}
	return scheme + "://" + r.Host + "/"
}
